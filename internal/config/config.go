// Package config loads and represents the analyzer's configuration entity
// (spec §3, §6): region/format defaults, spending thresholds, usage
// assumption overrides, excluded resource types, and cache settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cdk-cost-analyzer/internal/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// configFileNames are tried in order at each directory level while walking
// up from the working directory; the first match wins (spec §6).
var configFileNames = []string{
	".cdk-cost-analyzer.yml",
	".cdk-cost-analyzer.yaml",
	".cdk-cost-analyzer.json",
}

// knownTopLevelKeys is used to warn (never fail) on unrecognized config keys.
var knownTopLevelKeys = map[string]bool{
	"region": true, "format": true, "thresholds": true,
	"usageAssumptions": true, "excludedResourceTypes": true, "cacheConfig": true,
	"logging": true,
}

// Config is the recognized set of configuration options (spec §3).
type Config struct {
	Region                string           `json:"region" yaml:"region"`
	Format                string           `json:"format" yaml:"format"`
	Thresholds            Thresholds       `json:"thresholds" yaml:"thresholds"`
	UsageAssumptions      UsageAssumptions `json:"usageAssumptions" yaml:"usageAssumptions"`
	ExcludedResourceTypes []string         `json:"excludedResourceTypes" yaml:"excludedResourceTypes"`
	Cache                 CacheConfig      `json:"cacheConfig" yaml:"cacheConfig"`
	Logging               logging.Config   `json:"logging" yaml:"logging"`
}

// EnvThreshold is a pair of optional USD/month thresholds.
type EnvThreshold struct {
	Warning *float64 `json:"warning,omitempty" yaml:"warning,omitempty"`
	Error   *float64 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Thresholds carries the global thresholds plus any environment-scoped
// overrides (spec §3, §4.8).
type Thresholds struct {
	Warning        *float64                `json:"warning,omitempty" yaml:"warning,omitempty"`
	Error          *float64                `json:"error,omitempty" yaml:"error,omitempty"`
	PerEnvironment map[string]EnvThreshold `json:"perEnvironment,omitempty" yaml:"perEnvironment,omitempty"`
}

// ForEnvironment resolves the thresholds that apply for an environment,
// preferring the environment-scoped entry over the global one.
func (t Thresholds) ForEnvironment(env string) EnvThreshold {
	if env != "" {
		if scoped, ok := t.PerEnvironment[env]; ok {
			return scoped
		}
	}
	return EnvThreshold{Warning: t.Warning, Error: t.Error}
}

// UsageAssumptions is a nested, enumerated-key mapping of per-service
// numeric overrides (e.g. usageAssumptions.lambda.invocationsPerMonth).
// Defaults live inside each calculator, not here (spec §9) — this only
// carries user overrides.
type UsageAssumptions map[string]map[string]float64

// Float looks up service.key, returning (value, true) if the user supplied
// an override, or (0, false) if the calculator should fall back to its own
// documented default.
func (u UsageAssumptions) Float(service, key string) (float64, bool) {
	if u == nil {
		return 0, false
	}
	v, ok := u[service][key]
	return v, ok
}

// CacheConfig controls the on-disk/in-memory pricing cache (spec §3, §4.4).
type CacheConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Directory string `json:"directory" yaml:"directory"`
	TTLHours  int    `json:"ttlHours" yaml:"ttlHours"`
}

// TTLDuration converts TTLHours to a time.Duration for the cache manager.
func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Default returns the documented defaults (spec §3): region eu-central-1,
// text format, caching enabled with a 24h TTL under the user's home dir.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	cacheDir := filepath.Join(homeDir, ".cdk-cost-analyzer", "cache")

	return &Config{
		Region: "eu-central-1",
		Format: "text",
		Thresholds: Thresholds{
			PerEnvironment: map[string]EnvThreshold{},
		},
		UsageAssumptions:      UsageAssumptions{},
		ExcludedResourceTypes: nil,
		Cache: CacheConfig{
			Enabled:   true,
			Directory: cacheDir,
			TTLHours:  24,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Discover walks up from startDir looking for a recognized config file
// name, returning "" if none is found by the time it reaches the
// filesystem root.
func Discover(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load reads and parses a config file (YAML or JSON, sniffed from the
// extension), merging it over Default(). A missing path is not an error —
// it simply returns the defaults (spec §6: config loading is best-effort).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	raw := map[string]interface{}{}
	isJSON := strings.HasSuffix(path, ".json")

	if isJSON {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	warnUnknownKeys(path, raw)
	return cfg, nil
}

func warnUnknownKeys(path string, raw map[string]interface{}) {
	for key := range raw {
		if !knownTopLevelKeys[key] {
			logging.Warn("unrecognized configuration key", zap.String("file", path), zap.String("key", key))
		}
	}
}
