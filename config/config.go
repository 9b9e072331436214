// Package config stores provider credentials under ~/.ola/.
//
// The store is a single document: an active provider name plus one
// credential entry per configured provider. The default on-disk form is
// config.json; config.yaml, config.yml, and config.toml are also
// recognized, selected by whichever exists (JSON wins ties). Files are
// written 0600 since they hold API keys.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const configDirName = ".ola"

// candidateFiles in lookup order.
var candidateFiles = []string{"config.json", "config.yaml", "config.yml", "config.toml"}

// ErrNoActiveProvider indicates no provider has been configured yet.
var ErrNoActiveProvider = errors.New("no provider configured; run 'ola configure' first")

// Credential holds one provider's connection details. Provider carries
// the display name ("OpenAI"); registry lookup is case-insensitive.
type Credential struct {
	Provider string `json:"provider" yaml:"provider" toml:"provider"`
	APIKey   string `json:"api_key" yaml:"api_key" toml:"api_key"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url,omitempty"`
}

// Config is the credential store document.
type Config struct {
	ActiveProvider string       `json:"active_provider" yaml:"active_provider" toml:"active_provider"`
	Providers      []Credential `json:"providers" yaml:"providers" toml:"providers"`

	// path the document was loaded from, kept so Save writes back in
	// the same format.
	path string
}

// Dir returns the config directory, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads the credential store. A missing store is not an error; an
// empty document bound to the default JSON path is returned.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	for _, name := range candidateFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading config: %w", err)
		}
		cfg := &Config{path: path}
		if err := unmarshalByExt(path, data, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return &Config{path: filepath.Join(dir, "config.json")}, nil
}

// Save writes the store back in the format its path implies, 0600.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := marshalByExt(c.path, c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func unmarshalByExt(path string, data []byte, cfg *Config) error {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	return nil
}

func marshalByExt(path string, cfg *Config) ([]byte, error) {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return data, nil
	case ".toml":
		var buf strings.Builder
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return []byte(buf.String()), nil
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding config: %w", err)
		}
		return append(data, '\n'), nil
	}
}

// SetProvider adds or replaces the credential for cred.Provider and
// makes it active.
func (c *Config) SetProvider(cred Credential) {
	for i, existing := range c.Providers {
		if strings.EqualFold(existing.Provider, cred.Provider) {
			c.Providers[i] = cred
			c.ActiveProvider = cred.Provider
			return
		}
	}
	c.Providers = append(c.Providers, cred)
	c.ActiveProvider = cred.Provider
}

// Lookup finds the credential for a provider name, case-insensitively.
func (c *Config) Lookup(name string) (*Credential, bool) {
	for i := range c.Providers {
		if strings.EqualFold(c.Providers[i].Provider, name) {
			return &c.Providers[i], true
		}
	}
	return nil, false
}

// Active returns the credential for the active provider.
// Returns ErrNoActiveProvider when nothing is configured.
func (c *Config) Active() (*Credential, error) {
	if c.ActiveProvider == "" {
		return nil, ErrNoActiveProvider
	}
	cred, ok := c.Lookup(c.ActiveProvider)
	if !ok {
		return nil, fmt.Errorf("%w: active provider %q has no credentials", ErrNoActiveProvider, c.ActiveProvider)
	}
	return cred, nil
}
