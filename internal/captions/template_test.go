package captions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janschmiedgen/n8n-video-editing-pipeline/pkg/types"
)

const testTemplate = `[Script Info]
ScriptType: v4.00+
PlayResX: 100
PlayResY: 100

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: social, Roboto Medium, 48
Style: clean, Roboto Medium, 42

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func TestLookup_BrandFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "portrait_acme.ass"), []byte(testTemplate), 0o644))

	store := NewTemplateStore(dir, zerolog.Nop())
	tmpl, err := store.Lookup(types.OutputFormatPortrait, "acme", 1080, 1920)
	require.NoError(t, err)
	assert.Equal(t, "acme", tmpl.Brand)
	assert.Equal(t, []string{"social", "clean"}, tmpl.Styles())

	// Header is rewritten to the target resolution and the events section
	// is stripped.
	assert.Contains(t, tmpl.Header, "PlayResX: 1080")
	assert.Contains(t, tmpl.Header, "PlayResY: 1920")
	assert.NotContains(t, tmpl.Header, "[Events]")
}

func TestLookup_FallsBackToDefaultBrand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "square_codify.ass"), []byte(testTemplate), 0o644))

	store := NewTemplateStore(dir, zerolog.Nop())
	tmpl, err := store.Lookup(types.OutputFormatSquare, "acme", 1080, 1080)
	require.NoError(t, err)
	assert.Equal(t, DefaultBrand, tmpl.Brand)
}

func TestLookup_BuiltinBacksEverything(t *testing.T) {
	store := NewTemplateStore(t.TempDir(), zerolog.Nop())
	tmpl, err := store.Lookup(types.OutputFormatLandscape, "acme", 1920, 1080)
	require.NoError(t, err)
	assert.Equal(t, []string{"clean", "social", "karaoke", "highlight"}, tmpl.Styles())
	assert.Contains(t, tmpl.Header, "PlayResX: 1920")
}

func TestResolveStyle(t *testing.T) {
	tmpl := &Template{Format: types.OutputFormatSquare, Brand: "acme", Header: testTemplate}

	name, err := tmpl.ResolveStyle(types.CaptionStyleClean, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "clean", name)

	name, err = tmpl.ResolveStyle(types.CaptionStyle("neon"), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "social", name, "unknown style falls back to the first defined style")

	empty := &Template{Format: types.OutputFormatSquare, Brand: "acme", Header: "[Script Info]"}
	_, err = empty.ResolveStyle(types.CaptionStyleClean, zerolog.Nop())
	assert.Error(t, err)
}
