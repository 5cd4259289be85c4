package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Output     OutputConfig     `yaml:"output"`
	Validation ValidationConfig `yaml:"validation"`
	Batch      BatchConfig      `yaml:"batch"`
	Elevation  ElevationConfig  `yaml:"elevation"`
	Events     EventsConfig     `yaml:"events"`
	History    HistoryConfig    `yaml:"history"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Watch      WatchConfig      `yaml:"watch"`
}

// SiteConfig describes the published site the artifacts are built for.
type SiteConfig struct {
	Name          string `yaml:"name"`
	BaseURL       string `yaml:"base_url"`
	Logo          string `yaml:"logo,omitempty"`
	DefaultImage  string `yaml:"default_image,omitempty"`
	TwitterHandle string `yaml:"twitter_handle,omitempty"`
	Locale        string `yaml:"locale,omitempty"`
}

// CatalogConfig selects descriptor sources.
type CatalogConfig struct {
	// Directories scanned recursively for *.yaml descriptor files.
	Directories []string `yaml:"directories,omitempty"`
	// Marathon enables the built-in marathon dataset adapter.
	Marathon bool `yaml:"marathon"`
	// MarathonData optionally replaces the embedded dataset with a YAML file.
	MarathonData string `yaml:"marathon_data,omitempty"`
	// GitLastmod derives sitemap lastmod from the last commit touching a descriptor file.
	GitLastmod bool `yaml:"git_lastmod"`
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory         string `yaml:"directory"`
	Clean             bool   `yaml:"clean"`
	MaxPerChunk       int    `yaml:"max_per_chunk"`
	ChunkByCategory   bool   `yaml:"chunk_by_category"`
	MaxURLsPerSitemap int    `yaml:"max_urls_per_sitemap"`
}

// ValidationConfig carries the content-health thresholds.
type ValidationConfig struct {
	TitleMin            int     `yaml:"title_min"`
	TitleMax            int     `yaml:"title_max"`
	DescriptionMin      int     `yaml:"description_min"`
	DescriptionMax      int     `yaml:"description_max"`
	MinBenefits         int     `yaml:"min_benefits"`
	MaxBenefits         int     `yaml:"max_benefits"`
	ShortIntro          int     `yaml:"short_intro"`
	ThinIntro           int     `yaml:"thin_intro"`
	ShortFAQAnswer      int     `yaml:"short_faq_answer"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MaxConflicts        int     `yaml:"max_conflicts"`
	// Partitioned limits near-duplicate comparison to same-category buckets.
	Partitioned bool `yaml:"partitioned"`
}

// BatchConfig bounds the asynchronous per-page processing fan-out.
type BatchConfig struct {
	Size int `yaml:"size"`
}

// ElevationConfig points at the external elevation analysis service.
type ElevationConfig struct {
	Enabled      bool   `yaml:"enabled"`
	URL          string `yaml:"url,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`
	MaxRetries   int    `yaml:"max_retries"`
	RetryBackoff string `yaml:"retry_backoff,omitempty"`
	RetryInitial string `yaml:"retry_initial,omitempty"`
	RetryMax     string `yaml:"retry_max,omitempty"`
}

// EventsConfig configures the NATS findings publisher.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
	Stream  string `yaml:"stream,omitempty"`
}

// HistoryConfig configures the SQLite run history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// MetricsConfig configures the metrics endpoint used in watch mode.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen,omitempty"`
}

// WatchConfig configures the rebuild loop.
type WatchConfig struct {
	Interval string `yaml:"interval,omitempty"`
	Debounce string `yaml:"debounce,omitempty"`
}

// ElevationTimeout parses the elevation timeout, falling back to 10s.
func (c *Config) ElevationTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Elevation.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// WatchInterval parses the periodic rebuild interval (0 disables it).
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Interval)
	if err != nil {
		return 0
	}
	return d
}

// WatchDebounce parses the change debounce window, falling back to 2s.
func (c *Config) WatchDebounce() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		return d
	}
	return 2 * time.Second
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, seoerrors.ConfigNotFound(configPath)
	}

	// #nosec G304 - config path is operator supplied
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expands environment variables, applies
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, seoerrors.Wrap(err, seoerrors.CategoryConfig, seoerrors.SeverityFatal, "failed to unmarshal config")
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied and no sources.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}
