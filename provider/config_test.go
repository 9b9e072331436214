package provider

import (
	"bytes"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{Provider: "openai", APIKey: "sk-test"},
			wantErr: false,
		},
		{
			name:    "missing provider",
			cfg:     Config{APIKey: "sk-test"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			cfg:     Config{Provider: "openai", Timeout: -time.Second},
			wantErr: true,
		},
		{
			name:    "no key is allowed",
			cfg:     Config{Provider: "ollama"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClient_DefaultTimeout(t *testing.T) {
	cfg := Config{Provider: "openai"}
	if got := cfg.Client().Timeout; got != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, got)
	}
}

func TestConfigClient_CustomTimeout(t *testing.T) {
	cfg := Config{Provider: "openai", Timeout: 5 * time.Second}
	if got := cfg.Client().Timeout; got != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", got)
	}
}

func TestConfigWith(t *testing.T) {
	var buf bytes.Buffer
	base := Config{Provider: "openai", Model: "gpt-4o"}

	withEcho := base.WithEcho(&buf)
	if withEcho.Echo != &buf {
		t.Error("WithEcho did not set the echo sink")
	}
	if base.Echo != nil {
		t.Error("WithEcho modified the original config")
	}

	withModel := base.WithModel("gpt-5")
	if withModel.Model != "gpt-5" {
		t.Errorf("WithModel: expected gpt-5, got %q", withModel.Model)
	}
	if base.Model != "gpt-4o" {
		t.Error("WithModel modified the original config")
	}
}
