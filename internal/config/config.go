package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"catalog/internal/classifier"
	"catalog/internal/tokenizer"
)

// CSVSourceConfig points at a delimited product file.
type CSVSourceConfig struct {
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter"`
}

// SQLSourceConfig holds connection details for a product table in a database.
type SQLSourceConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// SourceConfig selects and configures the ingestion backend.
type SourceConfig struct {
	Type string           `yaml:"type"`
	CSV  *CSVSourceConfig `yaml:"csv,omitempty"`
	SQL  *SQLSourceConfig `yaml:"sql,omitempty"`
}

// TokenizerConfig configures token normalization.
type TokenizerConfig struct {
	Stopwords []string `yaml:"stopwords"`
	MinLength int      `yaml:"min_length"`
}

// ClassifierConfig holds the ordered material rules.
type ClassifierConfig struct {
	Field        string            `yaml:"field"`
	Rules        []classifier.Rule `yaml:"rules"`
	DefaultLabel string            `yaml:"default_label"`
}

// DefaultMinBrandGroupSize is the count a brand hint must exceed to be reported.
const DefaultMinBrandGroupSize = 20

// ThresholdsConfig holds the minimum counts a row must exceed to be reported.
// Keys left out of the file keep their defaults; an explicit 0 reports every group.
type ThresholdsConfig struct {
	MinTokenFrequency int `yaml:"min_token_frequency"`
	MinBrandGroupSize int `yaml:"min_brand_group_size"`
}

// LimitsConfig bounds "top N" reports.
type LimitsConfig struct {
	LongestDescriptions int `yaml:"longest_descriptions"`
	Keywords            int `yaml:"keywords"`
	Search              int `yaml:"search"`
}

// SearchConfig selects the fields indexed for full-text search.
type SearchConfig struct {
	Fields []string `yaml:"fields"`
}

// DuplicatesConfig configures duplicate detection.
type DuplicatesConfig struct {
	Field      string `yaml:"field"`
	Normalizer string `yaml:"normalizer"`
}

// OutputConfig selects the render format.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source     SourceConfig     `yaml:"source"`
	Tokenizer  TokenizerConfig  `yaml:"tokenizer"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Limits     LimitsConfig     `yaml:"limits"`
	Search     SearchConfig     `yaml:"search"`
	Duplicates DuplicatesConfig `yaml:"duplicates"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	// thresholds are seeded before decoding so an explicit 0 survives
	cfg := AppConfig{Thresholds: defaultThresholds()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./catalog.yaml first, then ~/.config/catalog/config.yaml.
// If neither exists, it returns the defaults without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "catalog.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "catalog", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Source:     SourceConfig{Type: "csv", CSV: &CSVSourceConfig{Path: "products.csv"}},
		Thresholds: defaultThresholds(),
	}
	applyConfigDefaults(cfg)
	return cfg
}

func defaultThresholds() ThresholdsConfig {
	return ThresholdsConfig{
		MinTokenFrequency: tokenizer.DefaultMinFrequency,
		MinBrandGroupSize: DefaultMinBrandGroupSize,
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Source.Type == "" {
		cfg.Source.Type = "csv"
	}
	if cfg.Source.Type == "csv" && cfg.Source.CSV != nil && cfg.Source.CSV.Delimiter == "" {
		cfg.Source.CSV.Delimiter = ","
	}
	if cfg.Source.Type == "sql" && cfg.Source.SQL != nil {
		if cfg.Source.SQL.Driver == "" {
			cfg.Source.SQL.Driver = "sqlite3"
		}
		if cfg.Source.SQL.Table == "" {
			cfg.Source.SQL.Table = "products"
		}
	}
	if cfg.Tokenizer.Stopwords == nil {
		cfg.Tokenizer.Stopwords = tokenizer.DefaultStopwords()
	}
	if cfg.Tokenizer.MinLength == 0 {
		cfg.Tokenizer.MinLength = tokenizer.DefaultMinLength
	}
	if cfg.Classifier.Field == "" {
		cfg.Classifier.Field = "description"
	}
	if len(cfg.Classifier.Rules) == 0 {
		cfg.Classifier.Rules = classifier.DefaultMaterialRules()
	}
	if cfg.Classifier.DefaultLabel == "" {
		cfg.Classifier.DefaultLabel = classifier.DefaultLabel
	}
	if cfg.Limits.LongestDescriptions == 0 {
		cfg.Limits.LongestDescriptions = 20
	}
	if cfg.Limits.Keywords == 0 {
		cfg.Limits.Keywords = tokenizer.DefaultTopLimit
	}
	if cfg.Limits.Search == 0 {
		cfg.Limits.Search = 30
	}
	if len(cfg.Search.Fields) == 0 {
		cfg.Search.Fields = []string{"product_name", "description"}
	}
	if cfg.Duplicates.Field == "" {
		cfg.Duplicates.Field = "product_name"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}
