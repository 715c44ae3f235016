// Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Seller struct {
		GSTIN       string `mapstructure:"gstin" yaml:"gstin"`
		StateCode   string `mapstructure:"state_code" yaml:"state_code"`
		StateName   string `mapstructure:"state_name" yaml:"state_name"`
		CompanyName string `mapstructure:"company_name" yaml:"company_name"`
	} `mapstructure:"seller" yaml:"seller"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	PDF struct {
		// ExtractTool is the external text-extraction command used for
		// scanned bank statements.
		ExtractTool string `mapstructure:"extract_tool" yaml:"extract_tool"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Rates struct {
		// OverridesFile points to an optional YAML file with user-supplied
		// HSN-to-rate overrides layered over the built-in table.
		OverridesFile string `mapstructure:"overrides_file" yaml:"overrides_file"`
	} `mapstructure:"rates" yaml:"rates"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then GST_-prefixed env variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.gst-app")
	v.AddConfigPath(".gst-app")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a configuration populated with defaults only.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Maharashtra is the registered seller state unless configured otherwise
	v.SetDefault("seller.gstin", "")
	v.SetDefault("seller.state_code", "27")
	v.SetDefault("seller.state_name", "Maharashtra")
	v.SetDefault("seller.company_name", "Your Company Name")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("pdf.extract_tool", "pdftotext")

	v.SetDefault("rates.overrides_file", "")
}

func validateConfig(config *Config) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.Log.Level] {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[config.Log.Format] {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	if len(config.Seller.StateCode) != 2 {
		return fmt.Errorf("seller state code must be 2 digits, got %q", config.Seller.StateCode)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	return nil
}
