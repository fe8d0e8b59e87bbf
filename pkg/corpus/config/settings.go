package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/cognicore/corpus/pkg/corpus/internalerr"
)

// EnvPrefix marks environment overrides: CORPUS_DATABASE_PATH -> database.path
const EnvPrefix = "CORPUS_"

const maxSettingsFileSize = 1024 * 1024

// Source types
const (
	SourceLocal = "local"
	SourceS3    = "s3"
)

// Settings holds the runtime configuration of an ingestion run
type Settings struct {
	Database DatabaseSettings `koanf:"database"`
	Source   SourceSettings   `koanf:"source"`
	Log      LogSettings      `koanf:"log"`

	// Roster is the path of the justice roster YAML
	Roster string `koanf:"roster"`
	// Taxonomy optionally replaces the built-in subject vocabulary
	Taxonomy string `koanf:"taxonomy"`
	// MaxCases stops a run after that many cases; 0 is unlimited
	MaxCases int `koanf:"max_cases"`
	// Rebuild drops and recreates every table before the run
	Rebuild bool `koanf:"rebuild"`
	// MatchCacheTTL bounds attribution memoization; 0 keeps entries for the run
	MatchCacheTTL time.Duration `koanf:"match_cache_ttl"`
}

// DatabaseSettings locates the SQLite file
type DatabaseSettings struct {
	Path string `koanf:"path"`
}

// SourceSettings selects where case folders are read from
type SourceSettings struct {
	Type      string `koanf:"type"`
	Root      string `koanf:"root"`
	Bucket    string `koanf:"bucket"`
	Prefix    string `koanf:"prefix"`
	Region    string `koanf:"region"`
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
}

// LogSettings configures the logger
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// topLevel keys keep their underscores when mapped from the environment
var topLevel = map[string]bool{
	"roster":          true,
	"taxonomy":        true,
	"max_cases":       true,
	"rebuild":         true,
	"match_cache_ttl": true,
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		Database: DatabaseSettings{Path: "corpus.db"},
		Source:   SourceSettings{Type: SourceLocal, Root: "decisions"},
		Log:      LogSettings{Level: "info", Format: "json"},
		Roster:   "justices.yaml",
	}
}

// LoadSettings reads a YAML settings file, then applies CORPUS_ environment
// overrides. An empty path uses defaults and the environment only.
func LoadSettings(path string) (*Settings, error) {
	var raw []byte
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("settings %s: %w", path, internalerr.ErrInvalidConfig)
			}
			return nil, err
		}
		if info.Size() > maxSettingsFileSize {
			return nil, fmt.Errorf("settings %s too large: %w", path, internalerr.ErrInvalidConfig)
		}
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}
	return ParseSettings(raw)
}

// ParseSettings decodes YAML settings and applies environment overrides
func ParseSettings(raw []byte) (*Settings, error) {
	k := koanf.New(".")

	if len(raw) > 0 {
		if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("parse settings: %w: %v", internalerr.ErrInvalidConfig, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := DefaultSettings()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode settings: %w: %v", internalerr.ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps CORPUS_SOURCE_ACCESS_KEY to source.access_key
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if topLevel[key] {
		return key
	}
	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

func applyDefaults(cfg *Settings) {
	def := DefaultSettings()
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = def.Source.Type
	}
	if cfg.Source.Type == SourceLocal && cfg.Source.Root == "" {
		cfg.Source.Root = def.Source.Root
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Roster == "" {
		cfg.Roster = def.Roster
	}
}

// Validate checks the settings for consistency
func (s *Settings) Validate() error {
	switch s.Source.Type {
	case SourceLocal:
		if s.Source.Root == "" {
			return fmt.Errorf("local source without root: %w", internalerr.ErrInvalidConfig)
		}
	case SourceS3:
		if s.Source.Bucket == "" {
			return fmt.Errorf("s3 source without bucket: %w", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("source type %q: %w", s.Source.Type, internalerr.ErrInvalidConfig)
	}

	if s.MaxCases < 0 {
		return fmt.Errorf("max_cases %d: %w", s.MaxCases, internalerr.ErrInvalidConfig)
	}
	if s.MatchCacheTTL < 0 {
		return fmt.Errorf("match_cache_ttl %s: %w", s.MatchCacheTTL, internalerr.ErrInvalidConfig)
	}

	switch s.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format %q: %w", s.Log.Format, internalerr.ErrInvalidConfig)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: %w", s.Log.Level, internalerr.ErrInvalidConfig)
	}
	return nil
}
