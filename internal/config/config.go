package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. All paths are injected here instead
// of being compiled-in constants; a .env file in the working directory is
// honored when present.
//
// Environment variables:
//   - VIDPIPE_INPUT_ROOT: directory for input media (default: ./input)
//   - VIDPIPE_OUTPUT_ROOT: directory for rendered outputs (default: ./output)
//   - VIDPIPE_OVERLAY_ROOT: directory for overlay images (default: ./overlay-files)
//   - VIDPIPE_TEMPLATE_ROOT: directory for ASS caption templates (default: ./caption-templates)
//   - VIDPIPE_LAYOUT_FILE: optional JSON file overriding format layouts
//   - VIDPIPE_WHISPER_BIN: whisper.cpp binary (default: whisper-cli)
//   - VIDPIPE_WHISPER_MODEL: whisper model file path
//   - VIDPIPE_LOG_LEVEL: debug, info, warn, error (default: info)
type Config struct {
	InputRoot    string
	OutputRoot   string
	OverlayRoot  string
	TemplateRoot string
	LayoutFile   string

	WhisperBin   string
	WhisperModel string
}

// Load reads the configuration from the environment with defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		InputRoot:    envOr("VIDPIPE_INPUT_ROOT", "./input"),
		OutputRoot:   envOr("VIDPIPE_OUTPUT_ROOT", "./output"),
		OverlayRoot:  envOr("VIDPIPE_OVERLAY_ROOT", "./overlay-files"),
		TemplateRoot: envOr("VIDPIPE_TEMPLATE_ROOT", "./caption-templates"),
		LayoutFile:   os.Getenv("VIDPIPE_LAYOUT_FILE"),
		WhisperBin:   envOr("VIDPIPE_WHISPER_BIN", "whisper-cli"),
		WhisperModel: os.Getenv("VIDPIPE_WHISPER_MODEL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
