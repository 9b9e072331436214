package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_WritesDefaultsWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultModel != "gpt-5" {
		t.Errorf("DefaultModel = %q, want %q", s.DefaultModel, "gpt-5")
	}
	if !s.Behavior.EnableLogging {
		t.Error("expected logging enabled by default")
	}

	// The defaults must now exist on disk.
	if _, err := os.Stat(filepath.Join(home, ".ola", "settings.yaml")); err != nil {
		t.Errorf("expected settings file to be created: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".ola")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	partial := "default_model: llama3.2\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DefaultModel != "llama3.2" {
		t.Errorf("DefaultModel = %q, want %q", s.DefaultModel, "llama3.2")
	}
	// Untouched keys keep defaults.
	if s.PromptTemplate.GoalsPrefix != "🏆 Goals: " {
		t.Errorf("GoalsPrefix = %q, want default", s.PromptTemplate.GoalsPrefix)
	}
	if s.Behavior.ThinkingAnimation.Text != "thinking..." {
		t.Errorf("animation text = %q, want default", s.Behavior.ThinkingAnimation.Text)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := Default()
	s.DefaultModel = "claude-3-opus-20240229"
	s.Behavior.EnableLogging = false
	s.Defaults.Quiet = true
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultModel != "claude-3-opus-20240229" {
		t.Errorf("DefaultModel = %q", got.DefaultModel)
	}
	if got.Behavior.EnableLogging {
		t.Error("expected logging disabled after reload")
	}
	if !got.Defaults.Quiet {
		t.Error("expected quiet default after reload")
	}
}

func TestLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := Default()
	path, err := s.LogPath()
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	want := filepath.Join(home, ".ola", "sessions.jsonl")
	if path != want {
		t.Errorf("LogPath = %q, want %q", path, want)
	}

	s.Behavior.LogFile = "/var/log/ola.jsonl"
	path, err = s.LogPath()
	if err != nil {
		t.Fatalf("LogPath: %v", err)
	}
	if path != "/var/log/ola.jsonl" {
		t.Errorf("LogPath = %q, want absolute path honored", path)
	}
}
