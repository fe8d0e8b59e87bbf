package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

func TestParseSettings_Defaults(t *testing.T) {
	cfg, err := ParseSettings(nil)
	require.NoError(t, err)

	assert.Equal(t, "corpus.db", cfg.Database.Path)
	assert.Equal(t, SourceLocal, cfg.Source.Type)
	assert.Equal(t, "decisions", cfg.Source.Root)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "justices.yaml", cfg.Roster)
	assert.Zero(t, cfg.MaxCases)
	assert.False(t, cfg.Rebuild)
}

func TestParseSettings_YAML(t *testing.T) {
	raw := []byte(`
database:
  path: /var/lib/corpus.db
source:
  type: s3
  bucket: decisions
  prefix: sc/
  region: auto
log:
  level: debug
  format: console
max_cases: 25
rebuild: true
match_cache_ttl: 10m
`)
	cfg, err := ParseSettings(raw)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/corpus.db", cfg.Database.Path)
	assert.Equal(t, SourceS3, cfg.Source.Type)
	assert.Equal(t, "decisions", cfg.Source.Bucket)
	assert.Equal(t, "sc/", cfg.Source.Prefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 25, cfg.MaxCases)
	assert.True(t, cfg.Rebuild)
	assert.Equal(t, 10*time.Minute, cfg.MatchCacheTTL)
	assert.Equal(t, "justices.yaml", cfg.Roster, "unset keys keep defaults")
}

func TestParseSettings_EnvOverrides(t *testing.T) {
	t.Setenv("CORPUS_DATABASE_PATH", "/tmp/env.db")
	t.Setenv("CORPUS_SOURCE_ACCESS_KEY", "key-id")
	t.Setenv("CORPUS_MAX_CASES", "3")

	cfg, err := ParseSettings([]byte("database:\n  path: file.db\n"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
	assert.Equal(t, "key-id", cfg.Source.AccessKey)
	assert.Equal(t, 3, cfg.MaxCases)
}

func TestParseSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown source", "source:\n  type: ftp\n"},
		{"s3 without bucket", "source:\n  type: s3\n"},
		{"negative max cases", "max_cases: -1\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"malformed yaml", "database: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
		})
	}
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roster: /etc/corpus/justices.yaml\n"), 0o600))

	cfg, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/corpus/justices.yaml", cfg.Roster)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"CORPUS_DATABASE_PATH":     "database.path",
		"CORPUS_SOURCE_SECRET_KEY": "source.secret_key",
		"CORPUS_LOG_LEVEL":         "log.level",
		"CORPUS_MAX_CASES":         "max_cases",
		"CORPUS_ROSTER":            "roster",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}
