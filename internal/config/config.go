// Package config loads descent settings from defaults, an optional YAML
// file, DESCENT_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/optim"
)

// EnvPrefix is prepended to environment variable names.
const EnvPrefix = "DESCENT"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete descent configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Run    RunConfig    `mapstructure:"run"`
	Output OutputConfig `mapstructure:"output"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // zerolog level name
	Format string `mapstructure:"format"` // "console" or "json"
}

// RunConfig selects the objective, starting point and hyperparameters.
type RunConfig struct {
	Objective    string    `mapstructure:"objective"`
	Start        []float64 `mapstructure:"start"` // Empty: the objective's own start
	Optimizers   []string  `mapstructure:"optimizers"`
	LR           float64   `mapstructure:"lr"`
	Momentum     float64   `mapstructure:"momentum"`
	Smoothing    float64   `mapstructure:"smoothing"`
	Beta1        float64   `mapstructure:"beta1"`
	Beta2        float64   `mapstructure:"beta2"`
	Iterations   int       `mapstructure:"iterations"`
	GradientStep float64   `mapstructure:"gradient_step"`
	Workers      int       `mapstructure:"workers"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "table", "json" or "yaml"
	Steps  int    `mapstructure:"steps"`  // Surface grid resolution
}

// Hyperparameters returns the optimizer settings.
func (r RunConfig) Hyperparameters() optim.Hyperparameters {
	return optim.Hyperparameters{
		LR:        r.LR,
		Momentum:  r.Momentum,
		Smoothing: r.Smoothing,
		Beta1:     r.Beta1,
		Beta2:     r.Beta2,
	}
}

// Kinds parses the configured optimizer names. An empty list selects all.
func (r RunConfig) Kinds() ([]optim.Kind, error) {
	if len(r.Optimizers) == 0 {
		return optim.Kinds(), nil
	}
	out := make([]optim.Kind, 0, len(r.Optimizers))
	for _, name := range r.Optimizers {
		k, err := optim.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	hp := optim.DefaultHyperparameters()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("run.objective", objective.Default().Name)
	v.SetDefault("run.start", []float64{})
	v.SetDefault("run.optimizers", []string{})
	v.SetDefault("run.lr", hp.LR)
	v.SetDefault("run.momentum", hp.Momentum)
	v.SetDefault("run.smoothing", hp.Smoothing)
	v.SetDefault("run.beta1", hp.Beta1)
	v.SetDefault("run.beta2", hp.Beta2)
	v.SetDefault("run.iterations", 100)
	v.SetDefault("run.gradient_step", gradient.StepCoarse)
	v.SetDefault("run.workers", 0)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.steps", 50)
}

// Load builds a Config. path may be empty. flags, if non-nil, are bound by
// name: a flag "lr" overrides "run.lr" only when set on the command line.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"objective":     "run.objective",
	"start":         "run.start",
	"optimizers":    "run.optimizers",
	"lr":            "run.lr",
	"momentum":      "run.momentum",
	"smoothing":     "run.smoothing",
	"beta1":         "run.beta1",
	"beta2":         "run.beta2",
	"iterations":    "run.iterations",
	"gradient-step": "run.gradient_step",
	"workers":       "run.workers",
	"output":        "output.format",
	"steps":         "output.steps",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks the settings that would otherwise fail deep inside a run.
// Hyperparameter values are not checked.
func (c *Config) Validate() error {
	var errs []error
	if c.Run.Iterations < 1 {
		errs = append(errs, fmt.Errorf("run.iterations must be at least 1, got %d", c.Run.Iterations))
	}
	if !(c.Run.GradientStep > 0) {
		errs = append(errs, fmt.Errorf("run.gradient_step must be positive, got %g", c.Run.GradientStep))
	}
	if n := len(c.Run.Start); n != 0 && n != 2 {
		errs = append(errs, fmt.Errorf("run.start must have 2 components, got %d", n))
	}
	if _, err := c.Run.Kinds(); err != nil {
		errs = append(errs, err)
	}
	switch c.Output.Format {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format must be table, json or yaml, got %q", c.Output.Format))
	}
	if c.Output.Steps < 1 {
		errs = append(errs, fmt.Errorf("output.steps must be at least 1, got %d", c.Output.Steps))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
