package transcribe

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/internal/captions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Whisper transcribes media through a whisper.cpp binary. The audio is
// extracted to mono 16 kHz WAV first, which is what the model expects.
type Whisper struct {
	bin   string
	model string
	log   zerolog.Logger
}

func NewWhisper(bin, model string, log zerolog.Logger) *Whisper {
	if bin == "" {
		bin = "whisper-cli"
	}
	return &Whisper{bin: bin, model: model, log: log}
}

// whisperOutput matches the JSON written by whisper.cpp with -oj.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Segments []struct {
		Start      float64         `json:"start"`
		End        float64         `json:"end"`
		Text       string          `json:"text"`
		Confidence float64         `json:"confidence"`
		Words      []captions.Word `json:"words"`
	} `json:"segments"`
}

// Transcribe runs the model against the media file's audio and returns the
// timed token sequence.
func (w *Whisper) Transcribe(ctx context.Context, mediaPath string) (captions.Transcript, error) {
	workDir, err := os.MkdirTemp("", "transcribe_")
	if err != nil {
		return captions.Transcript{}, errors.Wrap(err, "create transcription workdir")
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "audio.wav")
	if err := extractAudio(mediaPath, wavPath); err != nil {
		return captions.Transcript{}, err
	}

	outPrefix := filepath.Join(workDir, "whisper")
	cmd := exec.CommandContext(ctx, w.bin,
		"-m", w.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return captions.Transcript{}, errors.Wrapf(err, "whisper failed: %s", string(out))
	}

	raw, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return captions.Transcript{}, errors.Wrap(err, "read whisper output")
	}
	tr, err := parseOutput(raw)
	if err != nil {
		return captions.Transcript{}, err
	}

	w.log.Info().
		Str("language", tr.Language).
		Int("tokens", len(tr.Tokens)).
		Msg("transcription completed")
	return tr, nil
}

// parseOutput converts whisper.cpp JSON into the transcript token sequence,
// dropping empty segments and averaging segment confidence.
func parseOutput(raw []byte) (captions.Transcript, error) {
	var parsed whisperOutput
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return captions.Transcript{}, errors.Wrap(err, "parse whisper output")
	}

	tr := captions.Transcript{Language: parsed.Result.Language}
	var confSum float64
	for _, seg := range parsed.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		words := make([]captions.Word, 0, len(seg.Words))
		for _, wd := range seg.Words {
			wd.Text = strings.TrimSpace(wd.Text)
			if wd.Text != "" {
				words = append(words, wd)
			}
		}
		tr.Tokens = append(tr.Tokens, captions.Token{
			Text:       text,
			Start:      seg.Start,
			End:        seg.End,
			Confidence: seg.Confidence,
			Words:      words,
		})
		confSum += seg.Confidence
	}
	if len(tr.Tokens) == 0 {
		return captions.Transcript{}, errors.New("transcription produced no segments")
	}
	tr.Confidence = confSum / float64(len(tr.Tokens))
	return tr, nil
}

// extractAudio writes the media file's audio track as mono 16 kHz WAV. The
// WAV muxer only accepts audio, so no explicit stream selection is needed.
func extractAudio(mediaPath, wavPath string) error {
	err := ffmpeg.Input(mediaPath).
		Output(wavPath, ffmpeg.KwArgs{
			"ac": 1,
			"ar": 16000,
			"f":  "wav",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return errors.Wrap(err, "extract audio")
	}
	return nil
}
