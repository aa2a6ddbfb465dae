package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/spf13/cobra"
)

var (
	voiceFlag string
	outFlag   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <deck>",
	Short: "Convert one PPTX or PDF deck to a narrated video",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&voiceFlag, "voice", "v", "", "Prebuilt voice (default: gemini.default_voice)")
	convertCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Copy the final video to this path")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.service.Convert(ctx, converter.Input{Source: args[0], Voice: voiceFlag, Keep: true})
	if err != nil {
		if rec != nil && rec.Error != nil {
			a.log.Error(ctx, "%s", rec.Error.Message)
		}
		return err
	}

	result := rec.Result
	video := result.VideoPath
	if outFlag != "" {
		if err := copyOut(video, outFlag); err != nil {
			return fmt.Errorf("copy video: %w", err)
		}
		video = outFlag
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Job:      %s\n", rec.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Video:    %s\n", video)
	fmt.Fprintf(cmd.OutOrStdout(), "Slides:   %d\n", len(result.Slides))
	fmt.Fprintf(cmd.OutOrStdout(), "Duration: %.1fs\n", float64(result.DurationMs)/1000)
	if result.ScriptPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Script:   %s\n", result.ScriptPath)
	}
	if result.Degraded {
		fmt.Fprintln(cmd.OutOrStdout(), "Warning:  some slides use placeholder audio")
	}
	return nil
}

func copyOut(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
