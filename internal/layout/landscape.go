package layout

import "github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"

func init() {
	Register(defaultLandscape())
}

func defaultLandscape() *FormatSpec {
	return &FormatSpec{
		Format: types.OutputFormatLandscape,
		Width:  1920,
		Height: 1080,
		Overlays: map[types.OverlayKind]Placement{
			types.OverlayKindLogo: {
				Corner:   CornerTopLeft,
				MarginX:  60,
				MarginY:  40,
				SizeFrac: 0.15,
				Opacity:  1.0,
			},
			types.OverlayKindIcon: {
				Corner:   CornerTopRight,
				MarginX:  60,
				MarginY:  40,
				SizeFrac: 0.07,
				Opacity:  0.9,
			},
			types.OverlayKindHandle: {
				Corner:   CornerBottomRight,
				MarginX:  60,
				MarginY:  140,
				SizeFrac: 0.20,
				Opacity:  1.0,
			},
		},
	}
}
