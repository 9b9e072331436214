// Package settings manages app settings at ~/.ola/settings.yaml.
// Unlike config, which holds provider credentials, settings hold
// presentation and default-behavior knobs.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	configDir    = ".ola"
	settingsFile = "settings.yaml"
)

// Settings is the full settings document.
type Settings struct {
	DefaultModel   string         `yaml:"default_model"`
	PromptTemplate PromptTemplate `yaml:"prompt_template"`
	Defaults       Defaults       `yaml:"defaults"`
	Behavior       Behavior       `yaml:"behavior"`
}

// PromptTemplate holds the section labels for prompt assembly.
type PromptTemplate struct {
	GoalsPrefix        string `yaml:"goals_prefix"`
	ReturnFormatPrefix string `yaml:"return_format_prefix"`
	WarningsPrefix     string `yaml:"warnings_prefix"`
}

// Defaults are applied when the matching flag is not given.
type Defaults struct {
	ReturnFormat string `yaml:"return_format"`
	Quiet        bool   `yaml:"quiet"`
	NoThinking   bool   `yaml:"no_thinking"`
	Clipboard    bool   `yaml:"clipboard"`
}

// Behavior configures logging and the thinking animation.
type Behavior struct {
	LogFile           string            `yaml:"log_file"`
	EnableLogging     bool              `yaml:"enable_logging"`
	ThinkingAnimation ThinkingAnimation `yaml:"thinking_animation"`
}

// ThinkingAnimation configures the suppressed-reasoning indicator.
type ThinkingAnimation struct {
	Emojis []string `yaml:"emojis"`
	Text   string   `yaml:"text"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		DefaultModel: "gpt-5",
		PromptTemplate: PromptTemplate{
			GoalsPrefix:        "🏆 Goals: ",
			ReturnFormatPrefix: "📝 Return Format: ",
			WarningsPrefix:     "⚠️ Warnings: ",
		},
		Defaults: Defaults{
			ReturnFormat: "text",
		},
		Behavior: Behavior{
			LogFile:       "sessions.jsonl",
			EnableLogging: true,
			ThinkingAnimation: ThinkingAnimation{
				Emojis: []string{"🌊", "🌊", "🌊", "🐋", "🌊", "🌊", "🌊"},
				Text:   "thinking...",
			},
		},
	}
}

// Path returns the settings file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDir, settingsFile), nil
}

// Load reads settings from disk. A missing file writes and returns the
// defaults. Absent keys keep their default value, so partial settings
// files work.
func Load() (Settings, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s := Default()
			if err := s.Save(); err != nil {
				return s, err
			}
			return s, nil
		}
		return Default(), fmt.Errorf("reading settings: %w", err)
	}

	// Unmarshal over the defaults so absent keys keep them.
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings: %w", err)
	}
	return s, nil
}

// Save writes settings to disk, creating the directory as needed.
func (s Settings) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// LogPath resolves the session log location. A bare filename lands in
// the settings directory; absolute paths are honored as-is.
func (s Settings) LogPath() (string, error) {
	name := s.Behavior.LogFile
	if name == "" {
		name = "sessions.jsonl"
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDir, name), nil
}
