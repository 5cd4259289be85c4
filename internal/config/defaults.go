package config

import "fmt"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles Site configuration defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Name == "" {
		cfg.Site.Name = "PacePro"
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = "https://example.com"
	}
	if cfg.Site.DefaultImage == "" {
		cfg.Site.DefaultImage = "/images/og-default.png"
	}
	if cfg.Site.Locale == "" {
		cfg.Site.Locale = "en_US"
	}
	return nil
}

// OutputDefaultApplier handles Output configuration defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "./dist"
	}
	if cfg.Output.MaxPerChunk <= 0 {
		cfg.Output.MaxPerChunk = 1000
	}
	if cfg.Output.MaxURLsPerSitemap <= 0 {
		cfg.Output.MaxURLsPerSitemap = 50000
	}
	return nil
}

// ValidationDefaultApplier handles the content-health thresholds.
type ValidationDefaultApplier struct{}

func (ValidationDefaultApplier) Domain() string { return "validation" }

func (ValidationDefaultApplier) ApplyDefaults(cfg *Config) error {
	v := &cfg.Validation
	setInt(&v.TitleMin, 30)
	setInt(&v.TitleMax, 60)
	setInt(&v.DescriptionMin, 120)
	setInt(&v.DescriptionMax, 160)
	setInt(&v.MinBenefits, 3)
	setInt(&v.MaxBenefits, 6)
	setInt(&v.ShortIntro, 50)
	setInt(&v.ThinIntro, 20)
	setInt(&v.ShortFAQAnswer, 40)
	setInt(&v.MaxConflicts, 20)
	if v.SimilarityThreshold <= 0 {
		v.SimilarityThreshold = 0.7
	}
	return nil
}

// RuntimeDefaultApplier handles batch, elevation, events, history, metrics and watch defaults.
type RuntimeDefaultApplier struct{}

func (RuntimeDefaultApplier) Domain() string { return "runtime" }

func (RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	setInt(&cfg.Batch.Size, 50)
	if cfg.Elevation.Timeout == "" {
		cfg.Elevation.Timeout = "10s"
	}
	if cfg.Elevation.RetryBackoff == "" {
		cfg.Elevation.RetryBackoff = "exponential"
	}
	if cfg.Events.Subject == "" {
		cfg.Events.Subject = "seobuilder.findings"
	}
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = "SEOBUILDER"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = ".seobuilder/history.db"
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9464"
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = "2s"
	}
	return nil
}

func setInt(dst *int, def int) {
	if *dst <= 0 {
		*dst = def
	}
}

func applyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		SiteDefaultApplier{},
		OutputDefaultApplier{},
		ValidationDefaultApplier{},
		RuntimeDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("apply %s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}
