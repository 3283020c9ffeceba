package layout

import "github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"

func init() {
	Register(defaultPortrait())
}

func defaultPortrait() *FormatSpec {
	return &FormatSpec{
		Format: types.OutputFormatPortrait,
		Width:  1080,
		Height: 1920,
		Overlays: map[types.OverlayKind]Placement{
			types.OverlayKindLogo: {
				Corner:   CornerTopLeft,
				MarginX:  40,
				MarginY:  60,
				SizeFrac: 0.22,
				Opacity:  1.0,
			},
			types.OverlayKindIcon: {
				Corner:   CornerTopRight,
				MarginX:  40,
				MarginY:  60,
				SizeFrac: 0.10,
				Opacity:  0.9,
			},
			types.OverlayKindHandle: {
				// Raised above the caption band at the bottom of the frame.
				Corner:   CornerBottomRight,
				MarginX:  40,
				MarginY:  220,
				SizeFrac: 0.30,
				Opacity:  1.0,
			},
		},
	}
}
