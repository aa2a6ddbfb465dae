package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configFlag string

// rootCmd is the main Cobra command for the slidecast CLI.
var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "Turn slide decks into narrated videos",
	Long: `Slidecast extracts the slides of a PPTX or PDF deck, asks Gemini to write a
narration for every slide in one pass, synthesizes each narration to speech,
renders one clip per slide with ffmpeg and joins the clips into a single video.

Examples:
  slidecast convert lecture.pptx --voice Kore
  slidecast watch                 # convert decks dropped into paths.inbox
  slidecast serve --with-worker   # HTTP API plus an in-process queue worker
  slidecast worker                # consume queued conversions from Redis`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Path to the configuration file")
	rootCmd.AddCommand(convertCmd, watchCmd, serveCmd, workerCmd, voicesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
