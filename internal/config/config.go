// Package config provides gateway configuration loaded from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const logPrefix = "config:LoadConfig"

// Config holds method-gateway configuration.
type Config struct {
	// HTTP entry point
	HTTPAddr string `envconfig:"GATEWAY_HTTP_ADDR" default:"0.0.0.0:8080"`
	BasePath string `envconfig:"GATEWAY_BASE_PATH" default:"/methods"`

	// Dispatch policy
	BatchMaxSize   int           `envconfig:"GATEWAY_BATCH_MAX_SIZE" default:"25"`
	RequestTimeout time.Duration `envconfig:"GATEWAY_REQUEST_TIMEOUT" default:"25s"`

	// COMMS: optional broker transport; empty COMMS_URL disables it.
	COMMSURL     string `envconfig:"COMMS_URL"`
	COMMSName    string `envconfig:"SERVICE_NAME" default:"method-gateway"`
	COMMSSubject string `envconfig:"GATEWAY_COMMS_SUBJECT" default:"gateway.methods.v1"`

	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateForServe checks required config when running the gateway server.
func (c *Config) ValidateForServe() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("%s - GATEWAY_HTTP_ADDR is required", logPrefix)
	}
	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("%s - GATEWAY_BASE_PATH must start with /", logPrefix)
	}
	if c.BatchMaxSize <= 0 {
		return fmt.Errorf("%s - GATEWAY_BATCH_MAX_SIZE must be positive", logPrefix)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%s - GATEWAY_REQUEST_TIMEOUT must be positive", logPrefix)
	}
	if c.COMMSURL != "" && c.COMMSSubject == "" {
		return fmt.Errorf("%s - GATEWAY_COMMS_SUBJECT is required when COMMS_URL is set", logPrefix)
	}
	return nil
}
