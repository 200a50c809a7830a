package fuzzer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PentesterFlow/OpenFuzzer/internal/auth"
	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
)

// Config holds all scanner configuration.
type Config struct {
	// Target URL to scan
	Target string `json:"target" yaml:"target"`

	// Maximum crawl depth
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// Maximum number of pages to crawl
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// Probe timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Rate limiting
	RateLimit RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`

	// Browser configuration
	Browser browser.Config `json:"browser" yaml:"browser"`

	// Form login credentials, optional
	Auth auth.Credentials `json:"auth" yaml:"auth"`

	// Report output path; extension picks the format
	ReportPath string `json:"report_path" yaml:"report_path"`

	// Findings database path; empty disables archiving
	StorePath string `json:"store_path" yaml:"store_path"`

	// Show the live progress display
	Progress bool `json:"progress" yaml:"progress"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// RateLimitConfig paces probes against the target.
type RateLimitConfig struct {
	RequestsPerSecond float64       `json:"requests_per_second" yaml:"requests_per_second"`
	Burst             int           `json:"burst" yaml:"burst"`
	ProbeDelay        time.Duration `json:"probe_delay" yaml:"probe_delay"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: 3,
		MaxPages: 50,
		Timeout:  15 * time.Second,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Browser:  browser.DefaultConfig(),
		Progress: true,
	}
}

// LoadFromFile loads configuration from a file (JSON or YAML),
// layered over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("target URL is required")
	}
	if !strings.HasPrefix(c.Target, "http://") && !strings.HasPrefix(c.Target, "https://") {
		return fmt.Errorf("target URL must be http or https")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be at least 1")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1")
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, _ := json.Marshal(c)
	clone := &Config{}
	json.Unmarshal(data, clone)
	return clone
}
