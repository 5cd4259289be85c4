package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	seoerrors "git.home.luguber.info/inful/seobuilder/internal/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
	errs   []error
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	cv.validateSite()
	cv.validateCatalog()
	cv.validateThresholds()
	cv.validateRuntime()
	if len(cv.errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(cv.errs))
	for _, e := range cv.errs {
		msgs = append(msgs, e.Error())
	}
	return seoerrors.ValidationFailed("config", strings.Join(msgs, "; "))
}

func (cv *configurationValidator) fail(format string, args ...any) {
	cv.errs = append(cv.errs, fmt.Errorf(format, args...))
}

func (cv *configurationValidator) validateSite() {
	u, err := url.Parse(cv.config.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		cv.fail("site.base_url must be an absolute URL: %q", cv.config.Site.BaseURL)
	}
	if strings.HasSuffix(cv.config.Site.BaseURL, "/") {
		cv.fail("site.base_url must not end with a slash")
	}
}

func (cv *configurationValidator) validateCatalog() {
	if len(cv.config.Catalog.Directories) == 0 && !cv.config.Catalog.Marathon {
		cv.errs = append(cv.errs, errors.New("either catalog.directories or catalog.marathon must be configured"))
	}
}

func (cv *configurationValidator) validateThresholds() {
	v := cv.config.Validation
	if v.TitleMin > v.TitleMax {
		cv.fail("validation.title_min (%d) exceeds title_max (%d)", v.TitleMin, v.TitleMax)
	}
	if v.DescriptionMin > v.DescriptionMax {
		cv.fail("validation.description_min (%d) exceeds description_max (%d)", v.DescriptionMin, v.DescriptionMax)
	}
	if v.MinBenefits > v.MaxBenefits {
		cv.fail("validation.min_benefits (%d) exceeds max_benefits (%d)", v.MinBenefits, v.MaxBenefits)
	}
	if v.SimilarityThreshold > 1 {
		cv.fail("validation.similarity_threshold must be within (0,1]: %v", v.SimilarityThreshold)
	}
}

func (cv *configurationValidator) validateRuntime() {
	if cv.config.Elevation.Enabled && cv.config.Elevation.URL == "" {
		cv.fail("elevation.url is required when elevation is enabled")
	}
	if cv.config.Events.Enabled && cv.config.Events.NATSURL == "" {
		cv.fail("events.nats_url is required when events are enabled")
	}
	durations := []struct{ name, raw string }{
		{"elevation.timeout", cv.config.Elevation.Timeout},
		{"watch.interval", cv.config.Watch.Interval},
		{"watch.debounce", cv.config.Watch.Debounce},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		if _, err := time.ParseDuration(d.raw); err != nil {
			cv.fail("%s is not a valid duration: %q", d.name, d.raw)
		}
	}
	switch cv.config.Elevation.RetryBackoff {
	case "", "fixed", "linear", "exponential":
	default:
		cv.fail("elevation.retry_backoff must be fixed, linear or exponential: %q", cv.config.Elevation.RetryBackoff)
	}
}
