package pipeline

import (
	"fmt"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
)

// Job describes one processing request: an input video, the output formats
// to render, optional brand overlays and the caption configuration.
type Job struct {
	InputPath string
	Formats   []types.OutputFormat
	// Overlays maps overlay kinds to image file references. Relative
	// references resolve under the configured overlay asset root.
	Overlays       map[types.OverlayKind]string
	EnableCaptions bool
	Style          types.CaptionStyle
	Brand          string
}

// RenderResult is the outcome of one format's render.
type RenderResult struct {
	Format     types.OutputFormat `json:"format"`
	OutputPath string             `json:"output_path,omitempty"`
	Bytes      int64              `json:"bytes,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func (r RenderResult) OK() bool { return r.Error == "" }

// JobResult aggregates one RenderResult per requested format, ordered by
// request order.
type JobResult struct {
	Results   []RenderResult `json:"results"`
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Success   bool           `json:"success"`
}

// Output returns the output path rendered for a format, or "" when the
// format was not requested or failed.
func (jr JobResult) Output(format types.OutputFormat) string {
	for _, r := range jr.Results {
		if r.Format == format && r.OK() {
			return r.OutputPath
		}
	}
	return ""
}

// RejectionError means the job descriptor itself is invalid and no work was
// attempted.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("job rejected: %s", e.Reason)
}
