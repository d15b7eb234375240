package config

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/katalvlaran/patrol/selector"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Map     MapConfig         `yaml:"map"`
	Zones   ZonesConfig       `yaml:"zones"`
	Planner PlannerConfig     `yaml:"planner"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Map.Validate(); err != nil {
		return fmt.Errorf("map: %w", err)
	}
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}

	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// MapConfig locates the occupancy map. An empty Path selects the built-in
// 5×5 inspection map.
type MapConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the map configuration.
func (c *MapConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.Watch, validation.Required.Error("is required when watch is enabled"))),
	)
}

// ZonesConfig locates the zone topology. An empty Path selects the built-in
// nine-zone layout.
type ZonesConfig struct {
	Path string `yaml:"path"`
}

// PlannerConfig tunes target selection and routing.
type PlannerConfig struct {
	Weights         selector.Weights `yaml:"weights"`
	StepBudget      int              `yaml:"step_budget"`
	SkipUnreachable bool             `yaml:"skip_unreachable"`
}

// Validate validates the planner configuration.
func (c *PlannerConfig) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.StepBudget, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Planner: PlannerConfig{
			Weights:    selector.DefaultWeights(),
			StepBudget: 0,
		},
	}
}
