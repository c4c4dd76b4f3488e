package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv() {
	envVars := []string{
		"GATEWAY_HTTP_ADDR", "GATEWAY_BASE_PATH",
		"GATEWAY_BATCH_MAX_SIZE", "GATEWAY_REQUEST_TIMEOUT",
		"COMMS_URL", "SERVICE_NAME", "GATEWAY_COMMS_SUBJECT",
		"LOG_LEVEL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}

	if cfg.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("config:config_test - HTTPAddr = %q, want %q", cfg.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.BasePath != "/methods" {
		t.Errorf("config:config_test - BasePath = %q, want %q", cfg.BasePath, "/methods")
	}
	if cfg.BatchMaxSize != 25 {
		t.Errorf("config:config_test - BatchMaxSize = %d, want 25", cfg.BatchMaxSize)
	}
	if cfg.RequestTimeout != 25*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 25s", cfg.RequestTimeout)
	}
	if cfg.COMMSURL != "" {
		t.Errorf("config:config_test - COMMSURL = %q, want empty", cfg.COMMSURL)
	}
	if cfg.COMMSName != "method-gateway" {
		t.Errorf("config:config_test - COMMSName = %q, want %q", cfg.COMMSName, "method-gateway")
	}
	if cfg.COMMSSubject != "gateway.methods.v1" {
		t.Errorf("config:config_test - COMMSSubject = %q, want %q", cfg.COMMSSubject, "gateway.methods.v1")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("config:config_test - LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv()
	os.Setenv("GATEWAY_BATCH_MAX_SIZE", "2")
	os.Setenv("GATEWAY_REQUEST_TIMEOUT", "3s")
	os.Setenv("COMMS_URL", "nats://127.0.0.1:4222")
	defer clearEnv()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("config:config_test - unexpected error: %v", err)
	}
	if cfg.BatchMaxSize != 2 {
		t.Errorf("config:config_test - BatchMaxSize = %d, want 2", cfg.BatchMaxSize)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("config:config_test - RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.COMMSURL != "nats://127.0.0.1:4222" {
		t.Errorf("config:config_test - COMMSURL = %q", cfg.COMMSURL)
	}
}

func TestValidateForServe(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Config) {}, wantErr: false},
		{name: "zero batch size", mutate: func(c *Config) { c.BatchMaxSize = 0 }, wantErr: true},
		{name: "negative batch size", mutate: func(c *Config) { c.BatchMaxSize = -1 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantErr: true},
		{name: "empty http addr", mutate: func(c *Config) { c.HTTPAddr = "" }, wantErr: true},
		{name: "relative base path", mutate: func(c *Config) { c.BasePath = "methods" }, wantErr: true},
		{
			name: "comms url without subject",
			mutate: func(c *Config) {
				c.COMMSURL = "nats://127.0.0.1:4222"
				c.COMMSSubject = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("config:config_test - unexpected error: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.ValidateForServe()
			if tt.wantErr && err == nil {
				t.Error("config:config_test - expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("config:config_test - unexpected error: %v", err)
			}
		})
	}
}
