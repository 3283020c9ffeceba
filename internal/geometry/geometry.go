package geometry

import "github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"

// AspectTolerance is the inclusive threshold below which two aspect ratios
// are treated as equal. Integer resolutions introduce rounding noise; this
// value absorbs it. Empirical, kept from the original pipeline.
const AspectTolerance = 0.01

// Raw holds the dimensions and rotation metadata reported by the probe,
// before rotation correction.
type Raw struct {
	Width    int
	Height   int
	Rotation int // degrees, one of 0, ±90, 180, 270
}

// Decision is the result of comparing a rotation-corrected input against a
// target resolution.
type Decision struct {
	// EffectiveWidth/EffectiveHeight are the display dimensions after
	// rotation correction.
	EffectiveWidth  int
	EffectiveHeight int
	InputAspect     float64
	OutputAspect    float64
	// FillRequired is true when the aspect ratios mismatch and the output
	// needs blurred-background letterboxing.
	FillRequired bool
}

// EffectiveDims returns the display dimensions after rotation correction.
func EffectiveDims(raw Raw) (width, height int) {
	if swapsDimensions(raw.Rotation) {
		return raw.Height, raw.Width
	}
	return raw.Width, raw.Height
}

// Resolve corrects the raw dimensions for device rotation metadata and
// decides whether letterbox fill is required for the given target.
// Dimensions are assumed valid; zero or negative values are a caller
// contract violation.
func Resolve(raw Raw, targetWidth, targetHeight int) Decision {
	effW, effH := EffectiveDims(raw)

	inAspect := float64(effW) / float64(effH)
	outAspect := float64(targetWidth) / float64(targetHeight)

	diff := inAspect - outAspect
	if diff < 0 {
		diff = -diff
	}

	return Decision{
		EffectiveWidth:  effW,
		EffectiveHeight: effH,
		InputAspect:     inAspect,
		OutputAspect:    outAspect,
		FillRequired:    diff > AspectTolerance,
	}
}

// swapsDimensions reports whether the rotation metadata means the stored
// pixels are displayed with width and height exchanged. Phones commonly
// store sensor-orientation frames and flag the display rotation.
func swapsDimensions(rotation int) bool {
	switch rotation {
	case 90, -90, 270, -270:
		return true
	}
	return false
}

// Classify buckets an effective aspect ratio into the closest output format
// class: wider than 4:3 is landscape, taller than 5:4 is portrait, the band
// in between is square.
func Classify(effectiveWidth, effectiveHeight int) types.OutputFormat {
	aspect := float64(effectiveWidth) / float64(effectiveHeight)
	switch {
	case aspect > 1.3:
		return types.OutputFormatLandscape
	case aspect < 0.8:
		return types.OutputFormatPortrait
	default:
		return types.OutputFormatSquare
	}
}
