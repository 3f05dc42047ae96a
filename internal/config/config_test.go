package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
spec_dir = "test/spec"
ignore_methods = ["initialize", "call"]
base = "origin/main"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test/spec", cfg.SpecDir)
	assert.Equal(t, "origin/main", cfg.Base)
	assert.True(t, cfg.Ignored("call"))
	assert.False(t, cfg.Ignored("run"))
	assert.Equal(t, []string{"app/"}, cfg.StripPrefixes)
	assert.Equal(t, defaultMaxFileSize, cfg.MaxFileSize)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty spec dir", `spec_dir = ""`},
		{"negative size", `max_file_size = -1`},
		{"bad glob", `exclude = ["[unclosed"]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, "spec_dir = [\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestEncodeRoundTrips(t *testing.T) {
	t.Parallel()

	text, err := Default().Encode()
	require.NoError(t, err)
	assert.Contains(t, text, "spec_dir")
	assert.Contains(t, text, "initialize")

	cfg, err := Load(writeConfig(t, text))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
