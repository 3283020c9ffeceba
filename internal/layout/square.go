package layout

import "github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"

func init() {
	Register(defaultSquare())
}

func defaultSquare() *FormatSpec {
	return &FormatSpec{
		Format: types.OutputFormatSquare,
		Width:  1080,
		Height: 1080,
		Overlays: map[types.OverlayKind]Placement{
			types.OverlayKindLogo: {
				Corner:   CornerTopLeft,
				MarginX:  40,
				MarginY:  40,
				SizeFrac: 0.20,
				Opacity:  1.0,
			},
			types.OverlayKindIcon: {
				Corner:   CornerTopRight,
				MarginX:  40,
				MarginY:  40,
				SizeFrac: 0.09,
				Opacity:  0.9,
			},
			types.OverlayKindHandle: {
				Corner:   CornerBottomRight,
				MarginX:  40,
				MarginY:  160,
				SizeFrac: 0.26,
				Opacity:  1.0,
			},
		},
	}
}
