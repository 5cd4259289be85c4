package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Default()
	example.Site = SiteConfig{
		Name:          "PacePro",
		BaseURL:       "https://pacepro.example",
		Logo:          "https://pacepro.example/logo.png",
		DefaultImage:  "https://pacepro.example/images/og-default.png",
		TwitterHandle: "@pacepro",
		Locale:        "en_US",
	}
	example.Catalog = CatalogConfig{
		Directories: []string{"content/pages"},
		Marathon:    true,
		GitLastmod:  true,
	}
	example.Output.ChunkByCategory = true
	example.Elevation.URL = "${ELEVATION_SERVICE_URL}"

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	header := []byte("# seobuilder configuration\n# Environment variables (${VAR}) are expanded on load.\n")
	if err := os.WriteFile(configPath, append(header, data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
