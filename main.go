package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/captions"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/config"
	ffmpegexec "github.com/janschmiedgen/n8n-video-editing-pipeline/internal/ffmpeg"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/layout"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/logging"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/pipeline"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/transcribe"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "video-pipeline",
		Short: "Batch video processing pipeline for social media formats",
		Long: `video-pipeline transcribes a source video to burned-in captions and
renders one output per target format (portrait, landscape, square) with
blurred-background letterboxing and brand overlays.

The job result is printed as clean JSON on stdout; all logging goes to
stderr so the output stays machine-readable.

Example:
  video-pipeline process -i input.mp4 -f portrait,landscape \
    --captions --style karaoke --brand codify \
    --logo codify-logo.png --icon codify-icon.png --handle codify-sm-handle.png`,
	}

	processCmd = &cobra.Command{
		Use:   "process",
		Short: "Process one video into the requested output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			formatList, _ := cmd.Flags().GetString("formats")
			enableCaptions, _ := cmd.Flags().GetBool("captions")
			style, _ := cmd.Flags().GetString("style")
			brand, _ := cmd.Flags().GetString("brand")
			logo, _ := cmd.Flags().GetString("logo")
			icon, _ := cmd.Flags().GetString("icon")
			handle, _ := cmd.Flags().GetString("handle")
			verbose, _ := cmd.Flags().GetBool("verbose")

			return runProcess(input, formatList, enableCaptions, style, brand, logo, icon, handle, verbose)
		},
	}

	formatsCmd = &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range layout.Supported() {
				spec, err := layout.Get(f)
				if err != nil {
					continue
				}
				fmt.Printf("- %s (%dx%d)\n", f, spec.Width, spec.Height)
			}
		},
	}
)

// resultEnvelope is the JSON shape consumed by the workflow tool: one
// output path key per format, empty for unrequested or failed formats.
type resultEnvelope struct {
	Success        bool   `json:"success"`
	PortraitVideo  string `json:"portrait_video"`
	LandscapeVideo string `json:"landscape_video"`
	SquareVideo    string `json:"square_video"`
	Processed      int    `json:"processed"`
	Failed         int    `json:"failed"`
	Error          string `json:"error,omitempty"`
}

func runProcess(input, formatList string, enableCaptions bool, style, brand, logo, icon, handle string, verbose bool) error {
	log := logging.New()
	cfg := config.Load()

	if cfg.LayoutFile != "" {
		if err := layout.LoadOverrides(cfg.LayoutFile); err != nil {
			return err
		}
	}
	if err := layout.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputRoot, 0o755); err != nil {
		return err
	}

	var formats []types.OutputFormat
	for _, part := range strings.Split(formatList, ",") {
		if part = strings.TrimSpace(part); part != "" {
			formats = append(formats, types.OutputFormat(part))
		}
	}

	inputPath := input
	if _, err := os.Stat(inputPath); err != nil && !filepath.IsAbs(inputPath) {
		inputPath = filepath.Join(cfg.InputRoot, input)
	}

	overlays := map[types.OverlayKind]string{}
	if logo != "" {
		overlays[types.OverlayKindLogo] = logo
	}
	if icon != "" {
		overlays[types.OverlayKindIcon] = icon
	}
	if handle != "" {
		overlays[types.OverlayKindHandle] = handle
	}

	store := captions.NewTemplateStore(cfg.TemplateRoot, log)
	orchestrator := pipeline.New(
		pipeline.Config{
			OutputRoot:  cfg.OutputRoot,
			OverlayRoot: cfg.OverlayRoot,
		},
		pipeline.Deps{
			Transcriber: transcribe.NewWhisper(cfg.WhisperBin, cfg.WhisperModel, log),
			Renderer:    ffmpegexec.NewExecutor(log, verbose),
			Captions:    captions.NewBuilder(store, log),
		},
		log,
	)

	result, err := orchestrator.Process(context.Background(), pipeline.Job{
		InputPath:      inputPath,
		Formats:        formats,
		Overlays:       overlays,
		EnableCaptions: enableCaptions,
		Style:          types.CaptionStyle(style),
		Brand:          brand,
	})
	if err != nil {
		printResult(resultEnvelope{Error: err.Error()})
		return err
	}

	printResult(resultEnvelope{
		Success:        result.Success,
		PortraitVideo:  result.Output(types.OutputFormatPortrait),
		LandscapeVideo: result.Output(types.OutputFormatLandscape),
		SquareVideo:    result.Output(types.OutputFormatSquare),
		Processed:      result.Processed,
		Failed:         result.Failed,
	})
	return nil
}

func printResult(env resultEnvelope) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(env)
}

func init() {
	processCmd.Flags().StringP("input", "i", "", "Input video file")
	processCmd.Flags().StringP("formats", "f", "", "Comma-separated target formats (portrait,landscape,square)")
	processCmd.Flags().BoolP("captions", "c", false, "Transcribe audio and burn in captions")
	processCmd.Flags().StringP("style", "s", "clean", "Caption style (clean, social, karaoke, highlight)")
	processCmd.Flags().StringP("brand", "b", "codify", "Brand template for captions")
	processCmd.Flags().String("logo", "", "Logo overlay file (from the overlay root)")
	processCmd.Flags().String("icon", "", "Icon overlay file (from the overlay root)")
	processCmd.Flags().String("handle", "", "Social media handle overlay file (from the overlay root)")
	processCmd.Flags().BoolP("verbose", "v", false, "Enable verbose ffmpeg logging")

	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("formats")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(formatsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
