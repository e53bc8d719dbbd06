// Package config provides the QuantumCalc configuration loader.
// Config is loaded by merging defaults → ~/.quantumcalc/config.yaml →
// quantumcalc.yaml → QCALC_* env vars (a local .env file may supply them).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ProjectFile is the project config file name searched for from the CWD upwards.
const ProjectFile = "quantumcalc.yaml"

// ─────────────────────────────────────────────────────────────────────────────
// Config types
// ─────────────────────────────────────────────────────────────────────────────

// Config is the fully-decoded configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Report  ReportConfig  `mapstructure:"report"`
	Run     RunConfig     `mapstructure:"run"`
	History HistoryConfig `mapstructure:"history"`
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level  string `mapstructure:"level"` // debug | info | warn | error
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"` // json | text
}

// ReportConfig selects the report renderer.
type ReportConfig struct {
	Format string `mapstructure:"format"` // text | json
}

// RunConfig controls suite execution.
type RunConfig struct {
	Count  int    `mapstructure:"count"`  // number of full runs per invocation
	Filter string `mapstructure:"filter"` // regexp over case names; empty runs all
}

// HistoryConfig controls the run history store.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Keep    int  `mapstructure:"keep"` // 0 keeps everything
}

// FilterRegexp compiles Run.Filter. Returns nil when no filter is set.
func (c *Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Run.Filter == "" {
		return nil, nil
	}
	return regexp.Compile(c.Run.Filter)
}

// ─────────────────────────────────────────────────────────────────────────────
// Loader
// ─────────────────────────────────────────────────────────────────────────────

// Load discovers and loads the configuration. explicitPath, when set, must exist.
func Load(explicitPath string) (*Config, error) {
	// .env only feeds the environment; a missing file is normal.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v, Default())

	// Environment variable binding: QCALC_LOG_LEVEL → log.level
	v.SetEnvPrefix("QCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load global config (~/.quantumcalc/config.yaml) if it exists
	globalCfg := filepath.Join(Home(), "config.yaml")
	if _, err := os.Stat(globalCfg); err == nil {
		v.SetConfigFile(globalCfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read global config: %w", err)
		}
	}

	projectPath := explicitPath
	if projectPath == "" {
		if path, err := discoverProjectConfig(); err == nil {
			projectPath = path
		}
	}
	if projectPath != "" {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read project config %q: %w", projectPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Log.File = os.ExpandEnv(cfg.Log.File)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Default returns a Config holding only the factory defaults.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "text"},
		Report:  ReportConfig{Format: "text"},
		Run:     RunConfig{Count: 1},
		History: HistoryConfig{Enabled: true, Keep: 100},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

// setDefaults seeds every key from d so env vars bind even without a file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("run.count", d.Run.Count)
	v.SetDefault("run.filter", d.Run.Filter)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.keep", d.History.Keep)
}

// discoverProjectConfig walks up from the CWD looking for quantumcalc.yaml.
func discoverProjectConfig() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%s not found (searched up from %s)", ProjectFile, start)
}

// validate performs semantic validation on the loaded config.
func validate(cfg *Config) error {
	if cfg.Run.Count < 1 {
		return fmt.Errorf("run.count must be >= 1, got %d", cfg.Run.Count)
	}
	switch cfg.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("report.format must be text or json, got %q", cfg.Report.Format)
	}
	if _, err := cfg.FilterRegexp(); err != nil {
		return fmt.Errorf("run.filter: %w", err)
	}
	if cfg.History.Keep < 0 {
		return fmt.Errorf("history.keep must be >= 0, got %d", cfg.History.Keep)
	}
	return nil
}

// Home returns the QuantumCalc home directory: $QCALC_HOME, else ~/.quantumcalc.
func Home() string {
	if h := os.Getenv("QCALC_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quantumcalc"
	}
	return filepath.Join(home, ".quantumcalc")
}

// DefaultConfigTemplate is the content written by `quantumcalc init`.
const DefaultConfigTemplate = `# quantumcalc.yaml — harness settings
log:
  level: info        # debug | info | warn | error
  format: text       # text | json

report:
  format: text       # text | json

run:
  count: 1           # repeat the whole suite N times
  filter: ""         # regexp over case names, e.g. "^run"

history:
  enabled: true
  keep: 100          # 0 keeps every run
`
