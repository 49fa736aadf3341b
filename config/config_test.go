package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.DatabaseDSN = "scraper:secret@tcp(localhost:3306)/planning"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultRegisterURL, cfg.RegisterURL)
	assert.Equal(t, DefaultCommentURL, cfg.CommentURL)
	assert.Equal(t, DefaultOCRLanguage, cfg.OCRLanguage)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseDSN, "DSN must not have a default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing register", func(c *Config) { c.RegisterURL = "" }, "register URL"},
		{"missing comment url", func(c *Config) { c.CommentURL = "" }, "comment URL"},
		{"missing download dir", func(c *Config) { c.DownloadDir = "" }, "download directory"},
		{"missing gazetteer dir", func(c *Config) { c.GazetteerDir = "" }, "gazetteer directory"},
		{"missing dsn", func(c *Config) { c.DatabaseDSN = "" }, "database DSN"},
		{"missing language", func(c *Config) { c.OCRLanguage = "" }, "OCR language"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStringRedactsDSN(t *testing.T) {
	cfg := validConfig()

	s := cfg.String()
	assert.NotContains(t, s, "secret")
	assert.Contains(t, s, "<set>")
}
