package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadInTestEnvironment(t *testing.T) {
	// GO_ENV=test is enforced by TestMain; DATABASE_URL is not required here
	// because tests inject an in-memory database via SetDB
	os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.True(t, cfg.IsTest())
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.Port, "Port should default to 8080")
}

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgresql://localhost:5432/dispatch_test"
	assert.NoError(t, cfg.Validate())
}

func TestGetSetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := &Config{Port: "9090"}
	SetConfig(cfg)
	assert.Equal(t, cfg, GetConfig())
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantLevel logrus.Level
	}{
		{"debug level", "debug", logrus.DebugLevel},
		{"warn level", "warn", logrus.WarnLevel},
		{"invalid level falls back to info", "loud", logrus.InfoLevel},
		{"empty level falls back to info", "", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := InitLogger(&Config{LogLevel: tt.logLevel, GoEnv: "test"})
			assert.Equal(t, tt.wantLevel, log.GetLevel())
		})
	}
}

func TestLoggerDefaultsWhenUninitialized(t *testing.T) {
	logger = nil
	assert.NotNil(t, Logger())
}
