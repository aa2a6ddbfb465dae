package config

import (
	"fmt"
	"time"
)

type Config struct {
	Gemini      GeminiConfig      `yaml:"gemini"`
	Narration   NarrationConfig   `yaml:"narration"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Deck        DeckConfig        `yaml:"deck"`
	Paths       PathsConfig       `yaml:"paths"`
	Performance PerformanceConfig `yaml:"performance"`
	Timeouts    TimeoutsConfig    `yaml:"timeouts"`
	Failure     FailureConfig     `yaml:"failure"`
	Logging     LoggingConfig     `yaml:"logging"`
	Server      ServerConfig      `yaml:"server"`
	Redis       RedisConfig       `yaml:"redis"`
	Storage     StorageConfig     `yaml:"storage"`
	Output      OutputConfig      `yaml:"output"`
}

type GeminiConfig struct {
	APIKeys       []string `yaml:"api_keys"`
	BaseURL       string   `yaml:"base_url"`
	AnalysisModel string   `yaml:"analysis_model"`
	TTSModel      string   `yaml:"tts_model"`
	DefaultVoice  string   `yaml:"default_voice"`
}

const (
	NarrationBatch   = "batch"
	NarrationRolling = "rolling"
)

type NarrationConfig struct {
	Mode             string `yaml:"mode"`
	ContextWindow    int    `yaml:"context_window"`
	Instruction      string `yaml:"instruction"`
	PlaceholderText  string `yaml:"placeholder_text"`
	PlaceholderStyle string `yaml:"placeholder_style"`
	DefaultStyle     string `yaml:"default_style"`
}

type FFmpegConfig struct {
	Binary       string `yaml:"binary"`
	ProbeBinary  string `yaml:"probe_binary"`
	FrameRate    int    `yaml:"frame_rate"`
	VideoCodec   string `yaml:"video_codec"`
	AudioCodec   string `yaml:"audio_codec"`
	PixelFormat  string `yaml:"pixel_format"`
	Preset       string `yaml:"preset"`
	AudioFormat  string `yaml:"audio_format"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type DeckConfig struct {
	PDFRasterizer string `yaml:"pdf_rasterizer"`
	DPI           int    `yaml:"dpi"`
	MaxWidth      int    `yaml:"max_width"`
}

type PathsConfig struct {
	Work     string `yaml:"work"`
	Uploads  string `yaml:"uploads"`
	Inbox    string `yaml:"inbox"`
	Archived string `yaml:"archived"`
}

type PerformanceConfig struct {
	MaxConcurrent    int `yaml:"max_concurrent"`
	SlideConcurrency int `yaml:"slide_concurrency"`
}

type TimeoutsConfig struct {
	Analysis time.Duration `yaml:"analysis"`
	Speech   time.Duration `yaml:"speech"`
	Encode   time.Duration `yaml:"encode"`
	Assembly time.Duration `yaml:"assembly"`
}

const (
	PolicyAbort   = "abort"
	PolicyDegrade = "degrade"
)

type FailureConfig struct {
	Policy        string  `yaml:"policy"`
	ToneFrequency int     `yaml:"tone_frequency"`
	ToneSeconds   float64 `yaml:"tone_seconds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	Env          string `yaml:"env"`
	MaxUploadMB  int    `yaml:"max_upload_mb"`
	PublicPrefix string `yaml:"public_prefix"`
	Async        bool   `yaml:"async"`
}

// Production reports whether error details must be hidden from clients
func (s ServerConfig) Production() bool {
	return s.Env == "production"
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled reports whether a Redis address is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type StorageConfig struct {
	Bucket          string `yaml:"bucket"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PublicURL       string `yaml:"public_url"`
	Prefix          string `yaml:"prefix"`
}

// Enabled reports whether final videos should be published to a bucket
func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

type OutputConfig struct {
	ScriptDocx bool `yaml:"script_docx"`
}

func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	if c.Paths.Work == "" {
		return fmt.Errorf("paths.work is required")
	}

	switch c.Narration.Mode {
	case "":
		c.Narration.Mode = NarrationBatch
	case NarrationBatch, NarrationRolling:
	default:
		return fmt.Errorf("narration.mode must be %q or %q, got %q", NarrationBatch, NarrationRolling, c.Narration.Mode)
	}

	switch c.Failure.Policy {
	case "":
		c.Failure.Policy = PolicyAbort
	case PolicyAbort, PolicyDegrade:
	default:
		return fmt.Errorf("failure.policy must be %q or %q, got %q", PolicyAbort, PolicyDegrade, c.Failure.Policy)
	}

	if c.Gemini.AnalysisModel == "" {
		c.Gemini.AnalysisModel = "gemini-3-flash-preview"
	}
	if c.Gemini.TTSModel == "" {
		c.Gemini.TTSModel = "gemini-2.5-pro-preview-tts"
	}
	if c.Gemini.DefaultVoice == "" {
		c.Gemini.DefaultVoice = "Aoede"
	}
	if c.Narration.ContextWindow == 0 {
		c.Narration.ContextWindow = 2
	}
	if c.Narration.PlaceholderText == "" {
		c.Narration.PlaceholderText = "Let's continue."
	}
	if c.Narration.PlaceholderStyle == "" {
		c.Narration.PlaceholderStyle = "Read in a calm, neutral tone."
	}
	if c.Narration.DefaultStyle == "" {
		c.Narration.DefaultStyle = "Speak clearly and warmly at a moderate pace."
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.FrameRate == 0 {
		c.FFmpeg.FrameRate = 25
	}
	if c.FFmpeg.VideoCodec == "" {
		c.FFmpeg.VideoCodec = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.PixelFormat == "" {
		c.FFmpeg.PixelFormat = "yuv420p"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.AudioFormat == "" {
		c.FFmpeg.AudioFormat = "mp3"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "128k"
	}
	if c.Deck.PDFRasterizer == "" {
		c.Deck.PDFRasterizer = "pdftoppm"
	}
	if c.Deck.DPI == 0 {
		c.Deck.DPI = 150
	}
	if c.Deck.MaxWidth == 0 {
		c.Deck.MaxWidth = 1920
	}
	if c.Paths.Uploads == "" {
		c.Paths.Uploads = "uploads"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.SlideConcurrency == 0 {
		c.Performance.SlideConcurrency = 4
	}
	if c.Timeouts.Analysis == 0 {
		c.Timeouts.Analysis = 3 * time.Minute
	}
	if c.Timeouts.Speech == 0 {
		c.Timeouts.Speech = 90 * time.Second
	}
	if c.Timeouts.Encode == 0 {
		c.Timeouts.Encode = 2 * time.Minute
	}
	if c.Timeouts.Assembly == 0 {
		c.Timeouts.Assembly = 10 * time.Minute
	}
	if c.Failure.ToneFrequency == 0 {
		c.Failure.ToneFrequency = 440
	}
	if c.Failure.ToneSeconds == 0 {
		c.Failure.ToneSeconds = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = 200
	}
	if c.Server.PublicPrefix == "" {
		c.Server.PublicPrefix = "/uploads"
	}
	if c.Storage.Enabled() && c.Storage.Region == "" {
		c.Storage.Region = "auto"
	}

	return nil
}
