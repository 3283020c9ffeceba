package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/geometry"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/plan"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Executor runs composition plans through ffmpeg. It implements the
// pipeline's Renderer capability: probing raw geometry and applying an
// ordered stage chain to produce the output file.
type Executor struct {
	log     zerolog.Logger
	verbose bool
}

func NewExecutor(log zerolog.Logger, verbose bool) *Executor {
	return &Executor{log: log, verbose: verbose}
}

// Probe surfaces the raw dimensions and rotation metadata of a media file.
func (e *Executor) Probe(_ context.Context, mediaPath string) (geometry.Raw, error) {
	meta, err := GetMetadata(mediaPath)
	if err != nil {
		return geometry.Raw{}, err
	}
	return meta.Raw(), nil
}

// Render translates the plan into an ffmpeg filter graph and executes it.
// The plan is validated before anything runs; audio is carried over from
// the source unchanged.
func (e *Executor) Render(ctx context.Context, inputPath string, p *plan.Plan, outputPath string) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "invalid composition plan")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	streams := make(map[string]*ffmpeg.Stream)
	resolve := func(label string) (*ffmpeg.Stream, error) {
		// The primary input may feed several stages (background and
		// foreground of a letterbox fill), so each consumer gets its own
		// input stream.
		if label == plan.PrimaryInput {
			return ffmpeg.Input(inputPath), nil
		}
		s, ok := streams[label]
		if !ok {
			return nil, errors.Errorf("stage input %q not produced", label)
		}
		return s, nil
	}

	for _, stage := range p.Stages {
		out, err := e.translate(stage, resolve)
		if err != nil {
			return errors.Wrapf(err, "stage %s -> %s", stage.Kind, stage.Output)
		}
		streams[stage.Output] = out
	}

	final := streams[plan.FinalOutput]
	audio := ffmpeg.Input(inputPath).Audio()
	cmd := ffmpeg.Output([]*ffmpeg.Stream{final, audio}, outputPath, outputKwargs()).
		OverWriteOutput()

	if e.verbose {
		e.log.Debug().Str("command", cmd.String()).Msg("running ffmpeg")
		cmd = cmd.ErrorToStdOut()
	}
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "ffmpeg render failed")
	}
	return nil
}

func (e *Executor) translate(stage plan.Stage, resolve func(string) (*ffmpeg.Stream, error)) (*ffmpeg.Stream, error) {
	switch stage.Kind {
	case plan.StageBackgroundFill:
		in, err := resolve(stage.Inputs[0])
		if err != nil {
			return nil, err
		}
		return in.
			Filter("scale", ffmpeg.Args{
				fmt.Sprintf("%d:%d:force_original_aspect_ratio=increase", stage.Width, stage.Height),
			}).
			Filter("crop", ffmpeg.Args{
				fmt.Sprintf("%d:%d", stage.Width, stage.Height),
			}).
			Filter("boxblur", ffmpeg.Args{
				fmt.Sprintf("%d:%d", stage.BlurRadius, stage.BlurPower),
			}).
			Filter("eq", ffmpeg.Args{
				fmt.Sprintf("brightness=%g", stage.Brightness),
			}), nil

	case plan.StageForegroundFit:
		in, err := resolve(stage.Inputs[0])
		if err != nil {
			return nil, err
		}
		return in.Filter("scale", ffmpeg.Args{
			fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", stage.Width, stage.Height),
		}), nil

	case plan.StageOverlayScale:
		in := ffmpeg.Input(stage.ImagePath)
		scaled := in.Filter("scale", ffmpeg.Args{
			fmt.Sprintf("%d:%d", stage.Width, stage.Height),
		})
		if stage.Opacity < 1.0 {
			scaled = scaled.
				Filter("format", ffmpeg.Args{"rgba"}).
				Filter("colorchannelmixer", ffmpeg.Args{
					fmt.Sprintf("aa=%g", stage.Opacity),
				})
		}
		return scaled, nil

	case plan.StageOverlayComposite:
		base, err := resolve(stage.Inputs[0])
		if err != nil {
			return nil, err
		}
		over, err := resolve(stage.Inputs[1])
		if err != nil {
			return nil, err
		}
		return ffmpeg.Filter([]*ffmpeg.Stream{base, over}, "overlay", ffmpeg.Args{
			fmt.Sprintf("x=%s", stage.X),
			fmt.Sprintf("y=%s", stage.Y),
		}), nil

	case plan.StageCaptionBurn:
		in, err := resolve(stage.Inputs[0])
		if err != nil {
			return nil, err
		}
		return in.Filter("ass", ffmpeg.Args{escapeFilterPath(stage.CaptionPath)}), nil

	case plan.StagePassThrough:
		return resolve(stage.Inputs[0])

	default:
		return nil, errors.Errorf("unknown stage kind %q", stage.Kind)
	}
}

// escapeFilterPath quotes a path for use inside a filter argument.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
