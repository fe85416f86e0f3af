package config

import (
	"os"
	"path/filepath"

	"github.com/dshills/texteng/internal/config/loader"
	"github.com/dshills/texteng/internal/config/schema"
)

// EnvPrefix is the prefix for environment variable overrides (see
// loader.NewEnvLoader).
const EnvPrefix = "TEXTENG_"

// Settings holds the tuning parameters for the editing engine. Unlike the
// free-form key/value maps loader produces, Settings is the typed view
// applications actually read from.
type Settings struct {
	Engine   EngineSettings   `toml:"engine"`
	Document DocumentSettings `toml:"document"`
	Logging  LoggingSettings  `toml:"logging"`
}

// EngineSettings tunes the piece-tree core.
type EngineSettings struct {
	// ChunkTargetSize is a byte size loaded and validated from config.
	// No engine component reads it: chunk cursors yield one whole piece
	// slice per step regardless of this value.
	ChunkTargetSize int `toml:"chunkTargetSize"`
	// MmapCacheEntries sizes the byte-range cache in front of a
	// memory-mapped original pool; 0 disables it.
	MmapCacheEntries int `toml:"mmapCacheEntries"`
	// LineEndingScanKB is a kilobyte count loaded and validated from
	// config. No component in this module detects line endings, so
	// nothing reads it apart from ScanBudget.
	LineEndingScanKB int `toml:"lineEndingScanKB"`
}

// DocumentSettings are per-document defaults, overridable per file type by
// higher layers this package does not itself implement.
type DocumentSettings struct {
	TabWidth    int    `toml:"tabWidth"`
	LineEnding  string `toml:"lineEnding"`
}

// LoggingSettings configures the structured logger.
type LoggingSettings struct {
	Level string `toml:"level"`
}

// Default returns the built-in default settings, used as the base layer
// before any file or environment override is merged in.
func Default() Settings {
	return Settings{
		Engine: EngineSettings{
			ChunkTargetSize:  64 * 1024,
			MmapCacheEntries: 64,
			LineEndingScanKB: 64,
		},
		Document: DocumentSettings{
			TabWidth:   4,
			LineEnding: "lf",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Load loads settings from the default project config path
// (.texteng/config.toml in the current directory) and environment
// variables, layered over Default().
func Load() (Settings, error) {
	return LoadFrom(filepath.Join(".texteng", "config.toml"))
}

// LoadFrom loads settings from a specific TOML path plus environment
// variables, layered over Default(). A missing file is not an error.
func LoadFrom(path string) (Settings, error) {
	merged := map[string]any{}

	fileCfg, err := loader.NewTOMLLoader(path).Load()
	if err != nil {
		return Settings{}, err
	}
	merged = loader.DeepMerge(merged, fileCfg)

	envCfg, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return Settings{}, err
	}
	merged = loader.DeepMerge(merged, envCfg)

	if s, err := schema.LoadEmbedded(); err == nil && s != nil {
		if verr := schema.NewValidator(s).Validate(merged); verr != nil {
			return Settings{}, verr
		}
	}

	settings := Default()
	applyOverrides(&settings, merged)
	return settings, nil
}

// applyOverrides copies recognized paths out of a generic config map onto
// settings, leaving unrecognized keys untouched. LoadFrom validates in
// non-strict mode, so unrecognized keys are not reported as errors either.
func applyOverrides(s *Settings, m map[string]any) {
	if v, ok := intAt(m, "engine", "chunkTargetSize"); ok {
		s.Engine.ChunkTargetSize = v
	}
	if v, ok := intAt(m, "engine", "mmapCacheEntries"); ok {
		s.Engine.MmapCacheEntries = v
	}
	if v, ok := intAt(m, "engine", "lineEndingScanKB"); ok {
		s.Engine.LineEndingScanKB = v
	}
	if v, ok := intAt(m, "document", "tabWidth"); ok {
		s.Document.TabWidth = v
	}
	if v, ok := stringAt(m, "document", "lineEnding"); ok {
		s.Document.LineEnding = v
	}
	if v, ok := stringAt(m, "logging", "level"); ok {
		s.Logging.Level = v
	}
}

func sectionOf(m map[string]any, section string) (map[string]any, bool) {
	v, ok := m[section]
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]any)
	return sub, ok
}

func intAt(m map[string]any, section, key string) (int, bool) {
	sub, ok := sectionOf(m, section)
	if !ok {
		return 0, false
	}
	switch v := sub[key].(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func stringAt(m map[string]any, section, key string) (string, bool) {
	sub, ok := sectionOf(m, section)
	if !ok {
		return "", false
	}
	v, ok := sub[key].(string)
	return v, ok
}

// ScanBudget returns LineEndingScanKB converted to bytes.
func (s Settings) ScanBudget() int {
	return s.Engine.LineEndingScanKB * 1024
}

// UserConfigDir returns the platform user config directory for texteng,
// e.g. ~/.config/texteng on Linux.
func UserConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "texteng"), nil
}

