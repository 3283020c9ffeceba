package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/captions"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/geometry"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/layout"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/plan"
	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Transcriber is the speech-recognition collaborator: given a media file it
// returns timed caption tokens and a language code.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string) (captions.Transcript, error)
}

// Renderer is the render-execution collaborator. It also owns detection of
// raw input dimensions and rotation metadata.
type Renderer interface {
	Probe(ctx context.Context, mediaPath string) (geometry.Raw, error)
	Render(ctx context.Context, inputPath string, p *plan.Plan, outputPath string) error
}

// Config carries the path roots the orchestrator works with. Nothing is
// hardcoded; callers supply all directories at construction time.
type Config struct {
	OutputRoot  string
	OverlayRoot string
}

// Deps are the injected collaborators.
type Deps struct {
	Transcriber Transcriber
	Renderer    Renderer
	Captions    *captions.Builder
	Planner     *plan.Planner
}

// Orchestrator sequences validation, transcription, per-format planning and
// rendering, and result aggregation for one job at a time.
type Orchestrator struct {
	cfg  Config
	deps Deps
	log  zerolog.Logger
}

func New(cfg Config, deps Deps, log zerolog.Logger) *Orchestrator {
	if deps.Planner == nil {
		deps.Planner = plan.NewPlanner()
	}
	return &Orchestrator{cfg: cfg, deps: deps, log: log}
}

// Process runs a job to completion. It returns an error only for
// rejections; render failures are reported per format inside the JobResult.
func (o *Orchestrator) Process(ctx context.Context, job Job) (JobResult, error) {
	formats, overlays, err := o.validate(job)
	if err != nil {
		return JobResult{}, err
	}

	raw, probeErr := o.deps.Renderer.Probe(ctx, job.InputPath)
	if probeErr != nil {
		o.log.Error().Err(probeErr).Str("input", job.InputPath).Msg("probe failed")
	}

	trackPaths, genericPath := o.buildCaptions(ctx, job, formats, raw, probeErr == nil)

	var result JobResult
	for _, format := range formats {
		rr := o.renderFormat(ctx, job, format, raw, probeErr, overlays, trackPaths, genericPath)
		if rr.OK() {
			result.Processed++
		} else {
			result.Failed++
			o.log.Error().
				Str("format", string(format)).
				Str("error", rr.Error).
				Msg("format render failed")
		}
		result.Results = append(result.Results, rr)
	}

	result.Success = result.Processed > 0
	o.log.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Bool("success", result.Success).
		Msg("job completed")
	return result, nil
}

// validate checks the job descriptor. A missing input or empty format set
// rejects the job; a missing overlay file only drops that overlay.
func (o *Orchestrator) validate(job Job) ([]types.OutputFormat, map[types.OverlayKind]string, error) {
	if job.InputPath == "" {
		return nil, nil, &RejectionError{Reason: "no input file"}
	}
	if _, err := os.Stat(job.InputPath); err != nil {
		return nil, nil, &RejectionError{Reason: fmt.Sprintf("input file not readable: %s", job.InputPath)}
	}
	if len(job.Formats) == 0 {
		return nil, nil, &RejectionError{Reason: "no target formats requested"}
	}

	// Duplicates are collapsed; the first occurrence keeps its position.
	seen := make(map[types.OutputFormat]bool, len(job.Formats))
	var formats []types.OutputFormat
	for _, f := range job.Formats {
		if !f.Valid() {
			return nil, nil, &RejectionError{Reason: fmt.Sprintf("unknown format %q", f)}
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}

	overlays := make(map[types.OverlayKind]string)
	for kind, ref := range job.Overlays {
		if ref == "" {
			continue
		}
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(o.cfg.OverlayRoot, path)
		}
		if _, err := os.Stat(path); err != nil {
			o.log.Warn().
				Str("kind", string(kind)).
				Str("path", path).
				Msg("overlay file missing, rendering without it")
			continue
		}
		overlays[kind] = path
	}
	return formats, overlays, nil
}

// buildCaptions runs transcription and writes one ASS sidecar per format.
// Any failure here degrades to captions-off; it never fails the job. The
// returned generic path is the track matching the input's own aspect class,
// used when a format-specific track is missing.
func (o *Orchestrator) buildCaptions(ctx context.Context, job Job, formats []types.OutputFormat, raw geometry.Raw, probed bool) (map[types.OutputFormat]string, string) {
	if !job.EnableCaptions {
		return nil, ""
	}

	transcript, err := o.deps.Transcriber.Transcribe(ctx, job.InputPath)
	if err != nil {
		o.log.Warn().Err(err).Msg("transcription failed, continuing without captions")
		return nil, ""
	}

	tracks, err := o.deps.Captions.Build(transcript, job.Brand, job.Style, formats)
	if err != nil {
		o.log.Warn().Err(err).Msg("caption track build failed, continuing without captions")
		return nil, ""
	}

	stem := outputStem(job.InputPath)
	paths := make(map[types.OutputFormat]string, len(tracks))
	for format, track := range tracks {
		path := filepath.Join(o.cfg.OutputRoot, fmt.Sprintf("%s_captions_%s.ass", stem, format))
		if err := os.WriteFile(path, []byte(track.RenderASS()), 0o644); err != nil {
			o.log.Warn().Err(err).Str("format", string(format)).Msg("failed to write caption track")
			continue
		}
		paths[format] = path
	}

	genericPath := ""
	if probed {
		class := geometry.Classify(geometry.EffectiveDims(raw))
		genericPath = paths[class]
	}
	return paths, genericPath
}

// renderFormat runs resolve -> plan -> render for one format. Every failure
// is downgraded to that format's RenderResult; a panic in the render path
// must not take down the sibling formats.
func (o *Orchestrator) renderFormat(
	ctx context.Context,
	job Job,
	format types.OutputFormat,
	raw geometry.Raw,
	probeErr error,
	overlays map[types.OverlayKind]string,
	trackPaths map[types.OutputFormat]string,
	genericPath string,
) (rr RenderResult) {
	rr = RenderResult{Format: format}
	defer func() {
		if r := recover(); r != nil {
			rr.Error = fmt.Sprintf("render panicked: %v", r)
		}
	}()

	if probeErr != nil {
		rr.Error = errors.Wrap(probeErr, "probe input").Error()
		return rr
	}

	spec, err := layout.Get(format)
	if err != nil {
		rr.Error = err.Error()
		return rr
	}

	decision := geometry.Resolve(raw, spec.Width, spec.Height)
	p := o.deps.Planner.Plan(plan.Request{
		Geometry:            decision,
		Spec:                spec,
		Overlays:            overlays,
		CaptionsEnabled:     job.EnableCaptions,
		CaptionPath:         trackPaths[format],
		FallbackCaptionPath: genericPath,
	})
	if err := p.Validate(); err != nil {
		rr.Error = err.Error()
		return rr
	}

	outputPath := filepath.Join(o.cfg.OutputRoot,
		fmt.Sprintf("%s_%s_%s.mp4", outputStem(job.InputPath), format, format.RatioSuffix()))

	o.log.Info().
		Str("format", string(format)).
		Bool("letterbox", decision.FillRequired).
		Int("stages", len(p.Stages)).
		Str("output", outputPath).
		Msg("rendering format")

	if err := o.deps.Renderer.Render(ctx, job.InputPath, p, outputPath); err != nil {
		rr.Error = err.Error()
		return rr
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		rr.Error = errors.Wrap(err, "output file missing after render").Error()
		return rr
	}

	rr.OutputPath = outputPath
	rr.Bytes = info.Size()
	return rr
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)
var underscoreRuns = regexp.MustCompile(`_+`)

// outputStem derives a filesystem-safe stem from the input file name.
func outputStem(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = underscoreRuns.ReplaceAllString(base, "_")
	return strings.Trim(base, "_")
}
