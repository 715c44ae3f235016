// Package store provides functionality for storing and retrieving application data.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Finempire/Ecommerce-GST-App/internal/config"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RateStore manages loading and saving of HSN rate override data.
// Overrides let a seller pin a GST rate for product codes the built-in
// table gets wrong, keyed on the 4-digit HSN chapter prefix.
type RateStore struct {
	OverridesFile string
}

// NewRateStore creates a new store for rate override data
func NewRateStore(overridesFile string) *RateStore {
	return &RateStore{
		OverridesFile: overridesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *RateStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                            // Current directory
		filepath.Join("config", filename),   // ./config/ directory
		filepath.Join("database", filename), // ./database/ directory
	}

	// Try each location
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .config/gst-app/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configDir := filepath.Join(homeDir, ".config", "gst-app")
		configPath := filepath.Join(configDir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRateOverrides loads HSN rate overrides from YAML. A missing file is
// not an error, the built-in rate table applies unchanged.
func (s *RateStore) LoadRateOverrides() (map[string]decimal.Decimal, error) {
	filename := s.OverridesFile
	if filename == "" {
		filename = "rates.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Rate overrides file not found: %s", filename)
			return map[string]decimal.Decimal{}, nil
		}
		return nil, fmt.Errorf("error resolving rate overrides file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading rate overrides file: %w", err)
	}

	var raw map[string]float64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing rate overrides: %w", err)
	}

	overrides := make(map[string]decimal.Decimal, len(raw))
	for hsn, rate := range raw {
		key := strings.TrimSpace(hsn)
		if len(key) > 4 {
			key = key[:4]
		}
		overrides[key] = decimal.NewFromFloat(rate)
	}

	log.Debugf("Loaded %d rate overrides from %s", len(overrides), filePath)
	return overrides, nil
}

// SaveRateOverrides saves HSN rate overrides to YAML
func (s *RateStore) SaveRateOverrides(overrides map[string]decimal.Decimal) error {
	filename := s.OverridesFile
	if filename == "" {
		filename = "rates.yaml"
	}

	// Find the existing file or use standard locations
	filePath, err := s.FindConfigFile(filename)
	if err != nil && err != os.ErrNotExist {
		return fmt.Errorf("error resolving rate overrides file: %w", err)
	}

	// If file not found, use the database directory by default
	if err == os.ErrNotExist {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		} else {
			filePath = filename
		}
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	raw := make(map[string]float64, len(overrides))
	for hsn, rate := range overrides {
		rateF, _ := rate.Float64()
		raw[hsn] = rateF
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("error marshaling rate overrides: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("error writing rate overrides: %w", err)
	}

	log.Debugf("Saved %d rate overrides to %s", len(overrides), filePath)
	return nil
}
