package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is the YAML file looked up next to the working
// directory when no explicit path is given.
const DefaultConfigFile = "obecli.yaml"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Grading GradingConfig `yaml:"grading" envconfig:"GRADING"`
}

// LoggingConfig contains logging configuration. Defaults live in
// applyDefaults, not in envconfig tags: a tag default would overwrite
// file-provided values whenever the env var is unset.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	PayloadsDir string `yaml:"payloads_dir" envconfig:"PAYLOADS_DIR"`
	ReportsDir  string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// GradingConfig carries the fixed overall-grade rubric for the course being
// processed. The weights are a per-course instructor decision, so they live
// in configuration rather than being inferred from the data.
type GradingConfig struct {
	// OverallWeights maps CLO label to its fractional weight in the overall
	// grade. CLOs absent from this map are excluded from both the numerator
	// and the denominator of the overall formula.
	OverallWeights map[string]float64 `yaml:"overall_weights" envconfig:"OVERALL_WEIGHTS"`
	// BonusLabel is the CLO label reserved for additive bonus points.
	BonusLabel string `yaml:"bonus_label" envconfig:"BONUS_LABEL"`
	// BonusModule is the raw score column holding bonus points.
	BonusModule string `yaml:"bonus_module" envconfig:"BONUS_MODULE"`
}

// DefaultOverallWeights returns the rubric of the source course: three
// weighted CLOs summing to 0.65, the remainder unassessed.
func DefaultOverallWeights() map[string]float64 {
	return map[string]float64{
		"CLO 1": 0.15,
		"CLO 4": 0.15,
		"CLO 5": 0.35,
	}
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom loads configuration, reading the YAML file at path when it
// exists. Environment variables (prefix OBE) take precedence over the file.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileCfg
	}

	if err := envconfig.Process("OBE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(c.LogsDirOrDefault(), "obecli.log")
	}
	if c.Paths.PayloadsDir == "" {
		c.Paths.PayloadsDir = filepath.Join("data", "payloads")
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = filepath.Join("data", "reports")
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}
	if len(c.Grading.OverallWeights) == 0 {
		c.Grading.OverallWeights = DefaultOverallWeights()
	}
	if c.Grading.BonusLabel == "" {
		c.Grading.BonusLabel = "CLO 0"
	}
	if c.Grading.BonusModule == "" {
		c.Grading.BonusModule = "Bonus"
	}
}

func (c *Config) validate() error {
	var totalWeight float64
	for label, weight := range c.Grading.OverallWeights {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("overall weight for %s out of range: %v", label, weight)
		}
		totalWeight += weight
	}
	if totalWeight > 1.0+1e-9 {
		return fmt.Errorf("overall weights sum to %v, must not exceed 1.0", totalWeight)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	return nil
}

// LogsDirOrDefault returns the configured logs directory or "logs".
func (c *Config) LogsDirOrDefault() string {
	if c.Paths.LogsDir != "" {
		return c.Paths.LogsDir
	}
	return "logs"
}

// EnsureDirectories creates the payload, report and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.PayloadsDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
