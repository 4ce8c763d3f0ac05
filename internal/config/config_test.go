package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	s := Default()
	if s.InitialMode != "edit" {
		t.Errorf("InitialMode = %q, want edit", s.InitialMode)
	}
	if !s.ConfirmSwitch || s.Autosave {
		t.Errorf("ConfirmSwitch=%v Autosave=%v, want true, false", s.ConfirmSwitch, s.Autosave)
	}
	if s.HistoryLimit != 100 {
		t.Errorf("HistoryLimit = %d, want 100", s.HistoryLimit)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "scenestorm.toml", `
initial_mode = "play"
autosave = true
history_limit = 25
log_level = "debug"
script_dir = "/opt/scripts"
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.InitialMode != "play" || !s.Autosave || s.HistoryLimit != 25 {
		t.Errorf("Load() = %+v", s)
	}
	if s.LogLevel != "debug" || s.ScriptDir != "/opt/scripts" {
		t.Errorf("Load() = %+v", s)
	}
	// Unset keys keep their defaults.
	if !s.ConfirmSwitch {
		t.Error("ConfirmSwitch should keep its default when unset")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "scenestorm.yaml", `
initial_mode: play
confirm_switch: false
history_limit: 7
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.InitialMode != "play" || s.ConfirmSwitch || s.HistoryLimit != 7 {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "scenestorm.ini", "initial_mode = play")
	if _, err := Load(path); err == nil {
		t.Error("Load should reject unsupported config formats")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "scenestorm.toml", "initial_mode = [broken")
	if _, err := Load(path); err == nil {
		t.Error("Load should surface parse errors")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want missing file tolerated", err)
	}
	if s != Default() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s != Default() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "scenestorm.toml", `
initial_mode = "edit"
log_level = "warn"
`)
	t.Setenv("SCENESTORM_INITIAL_MODE", "play")
	t.Setenv("SCENESTORM_HISTORY_LIMIT", "3")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.InitialMode != "play" {
		t.Errorf("InitialMode = %q, want env override play", s.InitialMode)
	}
	if s.HistoryLimit != 3 {
		t.Errorf("HistoryLimit = %d, want env override 3", s.HistoryLimit)
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want file value warn", s.LogLevel)
	}
}

func TestWatcherReload(t *testing.T) {
	path := writeFile(t, "scenestorm.toml", `initial_mode = "edit"`)

	got := make(chan Settings, 1)
	w, err := NewWatcher(path, func(s Settings) {
		select {
		case got <- s:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(`initial_mode = "play"`), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	select {
	case s := <-got:
		if s.InitialMode != "play" {
			t.Errorf("reloaded InitialMode = %q, want play", s.InitialMode)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not deliver the reloaded settings")
	}

	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
