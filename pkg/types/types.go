package types

// OutputFormat identifies one of the fixed output aspect-ratio classes.
type OutputFormat string

const (
	OutputFormatPortrait  OutputFormat = "portrait"
	OutputFormatLandscape OutputFormat = "landscape"
	OutputFormatSquare    OutputFormat = "square"
)

// AllFormats lists the supported formats in their canonical reporting order.
var AllFormats = []OutputFormat{
	OutputFormatPortrait,
	OutputFormatLandscape,
	OutputFormatSquare,
}

// RatioSuffix returns the aspect suffix used in output file names,
// e.g. input.mp4 -> input_portrait_9x16.mp4.
func (f OutputFormat) RatioSuffix() string {
	switch f {
	case OutputFormatPortrait:
		return "9x16"
	case OutputFormatSquare:
		return "1x1"
	default:
		return "16x9"
	}
}

func (f OutputFormat) Valid() bool {
	switch f {
	case OutputFormatPortrait, OutputFormatLandscape, OutputFormatSquare:
		return true
	}
	return false
}

// OverlayKind identifies a brand overlay slot. Compositing order is fixed:
// logo, then icon, then handle.
type OverlayKind string

const (
	OverlayKindLogo   OverlayKind = "logo"
	OverlayKindIcon   OverlayKind = "icon"
	OverlayKindHandle OverlayKind = "handle"
)

// OverlayOrder is the compositing order applied regardless of how a job
// lists its overlays.
var OverlayOrder = []OverlayKind{
	OverlayKindLogo,
	OverlayKindIcon,
	OverlayKindHandle,
}

// CaptionStyle selects the visual treatment of burned-in captions.
type CaptionStyle string

const (
	CaptionStyleClean     CaptionStyle = "clean"
	CaptionStyleSocial    CaptionStyle = "social"
	CaptionStyleKaraoke   CaptionStyle = "karaoke"
	CaptionStyleHighlight CaptionStyle = "highlight"
)
