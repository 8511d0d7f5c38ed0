package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/XiaoConstantine/evo-go/pkg/errors"
)

// Config represents the complete configuration for the evaluation engine.
type Config struct {
	// Evaluation configuration
	Evaluation EvaluationConfig `yaml:"evaluation,omitempty" validate:"omitempty"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`
}

// Duration wraps time.Duration so YAML accepts both "30s" style strings
// and raw nanosecond integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrap(err, errors.InvalidInput, "invalid duration")
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return errors.Wrap(err, errors.InvalidInput, "invalid duration")
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// EvaluationConfig holds the knobs shared by every evaluation dispatch.
type EvaluationConfig struct {
	// Number of parallel evaluation workers
	NJobs int `yaml:"n_jobs" validate:"gte=1"`

	// Wall-clock budget per objective call; zero disables the budget
	Timeout Duration `yaml:"timeout" validate:"gte=0"`

	// Operator verbosity level (0 silent .. 5 full stack traces)
	Verbose int `yaml:"verbose" validate:"gte=0,lte=5"`

	// Staged evaluation defaults
	Staged StagedConfig `yaml:"staged,omitempty"`
}

// StagedConfig holds defaults for the multi-step evaluation path.
type StagedConfig struct {
	// Number of refinement steps per individual
	Steps int `yaml:"steps" validate:"gte=1"`

	// How accumulated step scores reduce to a final vector (mean or last)
	FinalScoreStrategy string `yaml:"final_score_strategy" validate:"oneof=mean last"`
}

// LoggingConfig configures the operator channel.
type LoggingConfig struct {
	// Minimum severity emitted (DEBUG, INFO, WARN, ERROR, FATAL)
	Level string `yaml:"level" validate:"oneof=DEBUG INFO WARN ERROR FATAL"`

	// Whether console output uses ANSI colors
	Color bool `yaml:"color"`

	// Optional log file path; empty means console only
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns the engine defaults, matching the zero-configuration
// behavior of the evaluation package.
func DefaultConfig() *Config {
	return &Config{
		Evaluation: EvaluationConfig{
			NJobs:   1,
			Timeout: 0,
			Verbose: 0,
			Staged: StagedConfig{
				Steps:              5,
				FinalScoreStrategy: "mean",
			},
		},
		Logging: LoggingConfig{
			Level: "INFO",
			Color: true,
		},
	}
}

// Load parses a YAML document over the defaults and validates the result.
func Load(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to read config file"),
			errors.Fields{"path": path})
	}
	return Load(data)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, errors.ValidationFailed, "invalid configuration")
	}
	return nil
}
