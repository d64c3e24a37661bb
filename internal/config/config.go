package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the placedex service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Engine   EngineConfig   `yaml:"engine"`
	Suggest  SuggestConfig  `yaml:"suggest"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	APIKeys         []string `yaml:"api_keys"` // empty disables auth
}

// DatabaseConfig holds catalog store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	DeleteBatchSize  int      `yaml:"delete_batch_size"`
}

// EngineConfig holds the resolution and hygiene thresholds. Zero values fall
// back to the engine defaults, so a config file only names what it overrides.
type EngineConfig struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Display  DisplayConfig  `yaml:"display"`
	Dedupe   DedupeConfig   `yaml:"dedupe"`
}

// ResolverConfig holds match-resolver thresholds.
type ResolverConfig struct {
	MinNameSimilarity float64 `yaml:"min_name_similarity"` // default 0.70
	MaxDistanceMeters float64 `yaml:"max_distance_meters"` // default 500
	MinPerCategory    int     `yaml:"min_per_category"`    // default 2
	MinTotal          int     `yaml:"min_total"`           // default 5
}

// DisplayConfig holds allocator bounds.
type DisplayConfig struct {
	MaxPerBucket int `yaml:"max_per_bucket"` // default 5
	MinPerBucket int `yaml:"min_per_bucket"` // default 2
}

// DedupeConfig holds duplicate-detector thresholds, in planar delta-degrees.
type DedupeConfig struct {
	PreFilterDeg      float64 `yaml:"pre_filter_deg"`     // default 0.0005
	NearDeg           float64 `yaml:"near_deg"`           // default 0.0001
	NearNameSim       float64 `yaml:"near_name_sim"`      // default 0.8
	ExactNameDeg      float64 `yaml:"exact_name_deg"`     // default 0.0003
	CategoryDeg       float64 `yaml:"category_deg"`       // default 0.0002
	CategoryNameSim   float64 `yaml:"category_name_sim"`  // default 0.7
	IncludeSingletons bool    `yaml:"include_singletons"` // default false
}

// SuggestConfig holds the AI suggestion generator settings.
type SuggestConfig struct {
	APIKey        string  `yaml:"api_key"`
	BaseURL       string  `yaml:"base_url"`
	Model         string  `yaml:"model"`
	MaxCandidates int     `yaml:"max_candidates"`
	Temperature   float64 `yaml:"temperature"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values. Engine thresholds are
// left to the engine packages, which supply their own defaults for zero
// values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 20
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "placedex"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 30
	}
	if c.Database.DeleteBatchSize <= 0 {
		c.Database.DeleteBatchSize = 100
	}
	if c.Suggest.Model == "" {
		c.Suggest.Model = "gpt-4o-mini"
	}
	if c.Suggest.MaxCandidates <= 0 {
		c.Suggest.MaxCandidates = 10
	}
}

// Validate checks required fields and threshold sanity.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be in (0, 65535], got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if s := c.Engine.Resolver.MinNameSimilarity; s < 0 || s > 1 {
		return fmt.Errorf("engine.resolver.min_name_similarity must be in [0,1], got %g", s)
	}
	if d := c.Engine.Resolver.MaxDistanceMeters; d < 0 {
		return fmt.Errorf("engine.resolver.max_distance_meters must be >= 0, got %g", d)
	}
	if mx, mn := c.Engine.Display.MaxPerBucket, c.Engine.Display.MinPerBucket; mx > 0 && mn > mx {
		return fmt.Errorf("engine.display.min_per_bucket %d exceeds max_per_bucket %d", mn, mx)
	}
	for name, v := range map[string]float64{
		"engine.dedupe.near_name_sim":     c.Engine.Dedupe.NearNameSim,
		"engine.dedupe.category_name_sim": c.Engine.Dedupe.CategoryNameSim,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", name, v)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
