// Package config holds runtime configuration for the register scraper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultRegisterURL = "https://www.murraybridge.sa.gov.au/development/current-development-applications"
	DefaultInfoURL     = "https://www.murraybridge.sa.gov.au/development/current-development-applications"
	DefaultCommentURL  = "mailto:council@murraybridge.sa.gov.au"
	DefaultDownloadDir = "downloads"
	DefaultGazetteer   = "gazetteer"
	DefaultOCRLanguage = "eng"
	DefaultLogLevel    = "info"
)

// Config holds all configuration for the scraper.
type Config struct {
	// Register configuration
	RegisterURL string
	InfoURL     string
	CommentURL  string

	// Local directories
	DownloadDir  string
	GazetteerDir string

	// Storage configuration
	DatabaseDSN string

	// OCR configuration
	OCRLanguage string

	// Application configuration
	LogLevel string
}

// Default returns a configuration with sensible defaults. The database DSN
// has no default and must come from a flag or environment.
func Default() *Config {
	return &Config{
		RegisterURL:  DefaultRegisterURL,
		InfoURL:      DefaultInfoURL,
		CommentURL:   DefaultCommentURL,
		DownloadDir:  DefaultDownloadDir,
		GazetteerDir: DefaultGazetteer,
		OCRLanguage:  DefaultOCRLanguage,
		LogLevel:     DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and environment variables and
// returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := Default()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.DownloadDir != "" {
		if expanded, err := filepath.Abs(cfg.DownloadDir); err == nil {
			cfg.DownloadDir = expanded
		}
	}
	if cfg.GazetteerDir != "" {
		if expanded, err := filepath.Abs(cfg.GazetteerDir); err == nil {
			cfg.GazetteerDir = expanded
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("MURRAY_BRIDGE")
	viper.AutomaticEnv()

	viper.SetDefault("register", cfg.RegisterURL)
	viper.SetDefault("infourl", cfg.InfoURL)
	viper.SetDefault("commenturl", cfg.CommentURL)
	viper.SetDefault("downloads", cfg.DownloadDir)
	viper.SetDefault("gazetteer", cfg.GazetteerDir)
	viper.SetDefault("dsn", cfg.DatabaseDSN)
	viper.SetDefault("language", cfg.OCRLanguage)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("register", cfg.RegisterURL, "URL of the development register listing page")
	pflag.String("infourl", cfg.InfoURL, "Information URL recorded on each application")
	pflag.String("commenturl", cfg.CommentURL, "Comment URL recorded on each application")
	pflag.String("downloads", cfg.DownloadDir, "Directory for downloaded register PDFs")
	pflag.String("gazetteer", cfg.GazetteerDir, "Directory containing gazetteer data files")
	pflag.String("dsn", cfg.DatabaseDSN, "MySQL DSN for the applications database")
	pflag.String("language", cfg.OCRLanguage, "OCR language")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("register", pflag.Lookup("register"))
	_ = viper.BindPFlag("infourl", pflag.Lookup("infourl"))
	_ = viper.BindPFlag("commenturl", pflag.Lookup("commenturl"))
	_ = viper.BindPFlag("downloads", pflag.Lookup("downloads"))
	_ = viper.BindPFlag("gazetteer", pflag.Lookup("gazetteer"))
	_ = viper.BindPFlag("dsn", pflag.Lookup("dsn"))
	_ = viper.BindPFlag("language", pflag.Lookup("language"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.RegisterURL = viper.GetString("register")
	cfg.InfoURL = viper.GetString("infourl")
	cfg.CommentURL = viper.GetString("commenturl")
	cfg.DownloadDir = viper.GetString("downloads")
	cfg.GazetteerDir = viper.GetString("gazetteer")
	cfg.DatabaseDSN = viper.GetString("dsn")
	cfg.OCRLanguage = viper.GetString("language")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RegisterURL == "" {
		return errors.New("register URL cannot be empty")
	}
	if c.CommentURL == "" {
		return errors.New("comment URL cannot be empty")
	}
	if c.DownloadDir == "" {
		return errors.New("download directory cannot be empty")
	}
	if c.GazetteerDir == "" {
		return errors.New("gazetteer directory cannot be empty")
	}
	if c.DatabaseDSN == "" {
		return errors.New("database DSN cannot be empty")
	}
	if c.OCRLanguage == "" {
		return errors.New("OCR language cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// String returns a string representation of the configuration with the DSN
// redacted.
func (c *Config) String() string {
	dsn := ""
	if c.DatabaseDSN != "" {
		dsn = "<set>"
	}
	return fmt.Sprintf("Config{RegisterURL: %s, DownloadDir: %s, GazetteerDir: %s, DSN: %s, Language: %s, LogLevel: %s}",
		c.RegisterURL, c.DownloadDir, c.GazetteerDir, dsn, c.OCRLanguage, c.LogLevel)
}
