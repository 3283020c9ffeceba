package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeBasic = `{
	"streams": [
		{"codec_type": "audio", "codec_name": "aac"},
		{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "duration": "12.480000"}
	],
	"format": {"duration": "12.520000"}
}`

const probeFormatDurationOnly = `{
	"streams": [
		{"codec_type": "video", "codec_name": "hevc", "width": 1080, "height": 1920}
	],
	"format": {"duration": "33.100000"}
}`

const probeFrameCountOnly = `{
	"streams": [
		{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 480,
		 "nb_frames": "300", "r_frame_rate": "30/1"}
	]
}`

const probeRotated = `{
	"streams": [
		{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080,
		 "duration": "5.0",
		 "side_data_list": [
			{"side_data_type": "Audio Service Type"},
			{"side_data_type": "Display Matrix", "rotation": -90}
		 ]}
	]
}`

const probeLegacyRotate = `{
	"streams": [
		{"codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720,
		 "duration": "5.0", "tags": {"rotate": "180"}}
	]
}`

func TestParseProbe(t *testing.T) {
	meta, err := parseProbe(probeBasic)
	require.NoError(t, err)
	assert.Equal(t, 1920, meta.Width)
	assert.Equal(t, 1080, meta.Height)
	assert.Equal(t, "h264", meta.Codec)
	assert.InDelta(t, 12.48, meta.Duration, 0.001, "stream duration wins over format duration")
	assert.Zero(t, meta.Rotation)
}

func TestParseProbe_DurationFallbacks(t *testing.T) {
	meta, err := parseProbe(probeFormatDurationOnly)
	require.NoError(t, err)
	assert.InDelta(t, 33.1, meta.Duration, 0.001)

	meta, err = parseProbe(probeFrameCountOnly)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, meta.Duration, 0.001)
}

func TestParseProbe_Rotation(t *testing.T) {
	meta, err := parseProbe(probeRotated)
	require.NoError(t, err)
	assert.Equal(t, -90, meta.Rotation)

	meta, err = parseProbe(probeLegacyRotate)
	require.NoError(t, err)
	assert.Equal(t, 180, meta.Rotation)
}

func TestParseProbe_Errors(t *testing.T) {
	_, err := parseProbe(`{"streams": []}`)
	assert.Error(t, err)

	_, err = parseProbe(`{"streams": [{"codec_type": "audio"}]}`)
	assert.Error(t, err)

	_, err = parseProbe(`{"streams": [{"codec_type": "video", "duration": "1.0"}]}`)
	assert.Error(t, err, "missing dimensions must be rejected")
}

func TestEscapeFilterPath(t *testing.T) {
	assert.Equal(t, `/out/clip_captions_portrait.ass`, escapeFilterPath("/out/clip_captions_portrait.ass"))
	assert.Equal(t, `C\:\\out\\a.ass`, escapeFilterPath(`C:\out\a.ass`))
}

func TestMetadataRaw(t *testing.T) {
	meta := &Metadata{Width: 1080, Height: 1920, Rotation: 90}
	raw := meta.Raw()
	assert.Equal(t, 1080, raw.Width)
	assert.Equal(t, 1920, raw.Height)
	assert.Equal(t, 90, raw.Rotation)
}
