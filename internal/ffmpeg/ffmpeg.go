package ffmpeg

import (
	"encoding/json"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/geometry"
	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Metadata describes the primary video stream of a media file.
type Metadata struct {
	Duration float64
	Width    int
	Height   int
	// Rotation is the display rotation in degrees from the stream's side
	// data, 0 when absent.
	Rotation int
	Codec    string
}

// Raw returns the probe geometry before rotation correction.
func (m *Metadata) Raw() geometry.Raw {
	return geometry.Raw{Width: m.Width, Height: m.Height, Rotation: m.Rotation}
}

// GetMetadata probes a media file and extracts the video stream's
// dimensions, duration, codec and rotation metadata.
func GetMetadata(inputPath string) (*Metadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "probe video")
	}
	return parseProbe(probe)
}

func parseProbe(probe string) (*Metadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s := stream.(map[string]interface{})
		if s["codec_type"].(string) == "video" {
			videoStream = s
			break
		}
	}
	if videoStream == nil {
		return nil, errors.New("no video stream found")
	}

	var duration float64

	// Stream duration first, format duration as fallback.
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}
	// Last resort: frame count over frame rate.
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				var frameRate float64
				if rFrameRate, ok := videoStream["r_frame_rate"].(string); ok {
					if nums := strings.Split(rFrameRate, "/"); len(nums) == 2 {
						num, err1 := strconv.ParseFloat(nums[0], 64)
						den, err2 := strconv.ParseFloat(nums[1], 64)
						if err1 == nil && err2 == nil && den != 0 {
							frameRate = num / den
						}
					}
				}
				if frameRate > 0 {
					duration = frames / frameRate
				}
			}
		}
	}

	width, wok := videoStream["width"].(float64)
	height, hok := videoStream["height"].(float64)
	if !wok || !hok || width == 0 || height == 0 {
		return nil, errors.New("could not determine video dimensions")
	}

	codec, _ := videoStream["codec_name"].(string)

	return &Metadata{
		Duration: duration,
		Width:    int(width),
		Height:   int(height),
		Rotation: parseRotation(videoStream),
		Codec:    codec,
	}, nil
}

// parseRotation reads the display rotation from the stream's side data
// (Display Matrix), falling back to the legacy rotate tag. Phones that
// record sensor-orientation video report the intended display rotation
// here.
func parseRotation(videoStream map[string]interface{}) int {
	if sideDataList, ok := videoStream["side_data_list"].([]interface{}); ok {
		for _, sd := range sideDataList {
			m, ok := sd.(map[string]interface{})
			if !ok {
				continue
			}
			if t, _ := m["side_data_type"].(string); t != "Display Matrix" {
				continue
			}
			switch rot := m["rotation"].(type) {
			case float64:
				return int(rot)
			case string:
				if v, err := strconv.Atoi(strings.TrimSpace(rot)); err == nil {
					return v
				}
			}
		}
	}
	if tags, ok := videoStream["tags"].(map[string]interface{}); ok {
		if rotStr, ok := tags["rotate"].(string); ok {
			if v, err := strconv.Atoi(strings.TrimSpace(rotStr)); err == nil {
				return v
			}
		}
	}
	return 0
}

// optimalThreadCount leaves a quarter of the cores free so a render does
// not starve the host.
func optimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	return int(math.Max(1, float64(cpuCount)*0.75))
}

// outputKwargs is the encoder preset applied to every rendered output.
func outputKwargs() ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"c:v":        "libx264",
		"preset":     "medium",
		"crf":        20,
		"profile:v":  "high",
		"level":      "4.1",
		"pix_fmt":    "yuv420p",
		"movflags":   "+faststart",
		"c:a":        "aac",
		"b:a":        "192k",
		"threads":    optimalThreadCount(),
		"g":          60,
		"keyint_min": 30,
	}
}
