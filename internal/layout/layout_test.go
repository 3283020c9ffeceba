package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AllFormatsComplete(t *testing.T) {
	require.NoError(t, Validate())

	for _, format := range types.AllFormats {
		spec, err := Get(format)
		require.NoError(t, err)
		assert.Equal(t, format, spec.Format)
		for _, kind := range types.OverlayOrder {
			_, ok := spec.Overlays[kind]
			assert.True(t, ok, "format %s missing overlay kind %s", format, kind)
		}
	}
}

func TestRegistry_TargetResolutions(t *testing.T) {
	tests := []struct {
		format types.OutputFormat
		w, h   int
	}{
		{types.OutputFormatPortrait, 1080, 1920},
		{types.OutputFormatLandscape, 1920, 1080},
		{types.OutputFormatSquare, 1080, 1080},
	}
	for _, tt := range tests {
		spec, err := Get(tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.w, spec.Width)
		assert.Equal(t, tt.h, spec.Height)
	}
}

func TestGet_UnknownFormat(t *testing.T) {
	_, err := Get(types.OutputFormat("vertical"))
	assert.Error(t, err)
}

func TestPlacement_Position(t *testing.T) {
	tests := []struct {
		corner Corner
		wantX  string
		wantY  string
	}{
		{CornerTopLeft, "40", "60"},
		{CornerTopRight, "W-w-40", "60"},
		{CornerBottomLeft, "40", "H-h-60"},
		{CornerBottomRight, "W-w-40", "H-h-60"},
	}
	for _, tt := range tests {
		t.Run(string(tt.corner), func(t *testing.T) {
			p := Placement{Corner: tt.corner, MarginX: 40, MarginY: 60}
			x, y := p.Position()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Run("invalid schema rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		// Opacity out of range.
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"format":"square","width":1080,"height":1080,"overlays":{
				"logo":{"corner":"top-left","margin_x":10,"margin_y":10,"size_frac":0.2,"opacity":2.0},
				"icon":{"corner":"top-right","margin_x":10,"margin_y":10,"size_frac":0.1,"opacity":1.0},
				"handle":{"corner":"bottom-right","margin_x":10,"margin_y":10,"size_frac":0.2,"opacity":1.0}
			}}
		]`), 0o644))
		assert.ErrorContains(t, LoadOverrides(path), "opacity")
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"format":"banner","width":100,"height":100}]`), 0o644))
		assert.ErrorContains(t, LoadOverrides(path), "unknown format")
	})

	t.Run("valid override applied", func(t *testing.T) {
		path := filepath.Join(dir, "ok.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"format":"square","width":720,"height":720,"overlays":{
				"logo":{"corner":"bottom-left","margin_x":12,"margin_y":12,"size_frac":0.25,"opacity":1.0},
				"icon":{"corner":"top-right","margin_x":12,"margin_y":12,"size_frac":0.1,"opacity":0.8},
				"handle":{"corner":"bottom-right","margin_x":12,"margin_y":12,"size_frac":0.2,"opacity":1.0}
			}}
		]`), 0o644))
		require.NoError(t, LoadOverrides(path))

		spec, err := Get(types.OutputFormatSquare)
		require.NoError(t, err)
		assert.Equal(t, 720, spec.Width)
		assert.Equal(t, CornerBottomLeft, spec.Overlays[types.OverlayKindLogo].Corner)

		// Restore the built-in spec for other tests.
		Register(defaultSquare())
		require.NoError(t, Validate())
	})
}
