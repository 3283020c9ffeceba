package geometry

import (
	"testing"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveDims_RotationSwap(t *testing.T) {
	tests := []struct {
		name       string
		rotation   int
		wantWidth  int
		wantHeight int
	}{
		{"no rotation", 0, 1920, 1080},
		{"180", 180, 1920, 1080},
		{"90", 90, 1080, 1920},
		{"minus 90", -90, 1080, 1920},
		{"270", 270, 1080, 1920},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := EffectiveDims(Raw{Width: 1920, Height: 1080, Rotation: tt.rotation})
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantHeight, h)
		})
	}
}

func TestResolve_FillDecision(t *testing.T) {
	tests := []struct {
		name     string
		raw      Raw
		targetW  int
		targetH  int
		wantFill bool
	}{
		{
			// 1080x1920 upright into landscape: aspects 0.5625 vs 1.778.
			name:     "portrait into landscape needs fill",
			raw:      Raw{Width: 1080, Height: 1920},
			targetW:  1920,
			targetH:  1080,
			wantFill: true,
		},
		{
			// Rotated landscape footage displays as portrait and matches.
			name:     "rotated landscape into portrait matches",
			raw:      Raw{Width: 1920, Height: 1080, Rotation: -90},
			targetW:  1080,
			targetH:  1920,
			wantFill: false,
		},
		{
			name:     "exact match",
			raw:      Raw{Width: 1920, Height: 1080},
			targetW:  1920,
			targetH:  1080,
			wantFill: false,
		},
		{
			name:     "square into square",
			raw:      Raw{Width: 720, Height: 720},
			targetW:  1080,
			targetH:  1080,
			wantFill: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := Resolve(tt.raw, tt.targetW, tt.targetH)
			assert.Equal(t, tt.wantFill, dec.FillRequired)
		})
	}
}

func TestResolve_ToleranceBand(t *testing.T) {
	// Inside the tolerance band no fill is needed.
	dec := Resolve(Raw{Width: 1005, Height: 1000}, 1000, 1000)
	assert.False(t, dec.FillRequired)

	// Past the tolerance the fill kicks in.
	dec = Resolve(Raw{Width: 1011, Height: 1000}, 1000, 1000)
	assert.True(t, dec.FillRequired)
}

func TestResolve_ScenarioValues(t *testing.T) {
	dec := Resolve(Raw{Width: 1080, Height: 1920}, 1920, 1080)
	assert.InDelta(t, 0.5625, dec.InputAspect, 0.0001)
	assert.InDelta(t, 1.7778, dec.OutputAspect, 0.0001)
	assert.Equal(t, 1080, dec.EffectiveWidth)
	assert.Equal(t, 1920, dec.EffectiveHeight)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		w, h int
		want types.OutputFormat
	}{
		{1920, 1080, types.OutputFormatLandscape},
		{1080, 1920, types.OutputFormatPortrait},
		{1080, 1080, types.OutputFormatSquare},
		{1350, 1080, types.OutputFormatSquare}, // 1.25, inside the square band
		{900, 1350, types.OutputFormatPortrait},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}
