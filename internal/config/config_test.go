package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:             tt.env,
				DBSSLMode:       tt.sslMode,
				DBPassword:      "secure-password",
				Port:            "8080",
				MediaRoot:       "/tmp/gallery-test/media",
				MaxUploadSizeMB: 10,
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:             "development",
			Port:            "8080",
			MediaRoot:       "/tmp/gallery-test/media",
			MaxUploadSizeMB: 10,
		}
	}

	c := base()
	assert.NoError(t, c.Validate())

	c = base()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = base()
	c.MediaRoot = ""
	assert.Error(t, c.Validate())

	c = base()
	c.MaxUploadSizeMB = 0
	assert.Error(t, c.Validate())
}

func TestConfig_ValidateProductionPassword(t *testing.T) {
	c := &Config{
		Env:             "production",
		Port:            "8080",
		MediaRoot:       "/var/lib/gallery/media",
		MaxUploadSizeMB: 10,
		DBPassword:      "password",
		DBSSLMode:       "require",
	}
	assert.Error(t, c.Validate())

	c.DBPassword = "something-much-stronger"
	assert.NoError(t, c.Validate())
}
