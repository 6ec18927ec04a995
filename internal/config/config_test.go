package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".sheetui"), 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}

		expected := &Config{
			ExitMs:          map[string]int{KindTooltip: 90},
			FrameMs:         33,
			ToastMs:         2000,
			RecentColorsMax: 4,
			LogLevel:        "debug",
			LogFile:         "ui.log",
		}
		data, err := json.MarshalIndent(expected, "", "  ")
		if err != nil {
			t.Fatalf("setup: marshal failed: %v", err)
		}
		if err := os.WriteFile(Path(dir), data, 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.ExitMs[KindTooltip] != 90 {
			t.Errorf("ExitMs[tooltip]: got %d, want 90", cfg.ExitMs[KindTooltip])
		}
		if cfg.FrameMs != 33 {
			t.Errorf("FrameMs: got %d, want 33", cfg.FrameMs)
		}
		if cfg.ToastMs != 2000 {
			t.Errorf("ToastMs: got %d, want 2000", cfg.ToastMs)
		}
		if cfg.RecentColorsMax != 4 {
			t.Errorf("RecentColorsMax: got %d, want 4", cfg.RecentColorsMax)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
		}
	})

	t.Run("non-existent file returns empty config", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg == nil {
			t.Fatal("Load returned nil config")
		}
		if len(cfg.ExitMs) != 0 {
			t.Errorf("ExitMs: got %v, want empty", cfg.ExitMs)
		}
	})

	t.Run("invalid JSON returns error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".sheetui"), 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}
		if err := os.WriteFile(Path(dir), []byte("not valid json{"), 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		if _, err := Load(dir); err == nil {
			t.Fatal("Load should fail for invalid JSON")
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("creates directories and round trips", func(t *testing.T) {
		dir := t.TempDir()

		if err := Save(dir, &Config{ToastMs: 1000}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := os.Stat(Path(dir)); os.IsNotExist(err) {
			t.Fatal("config file not created")
		}

		loaded, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.ToastMs != 1000 {
			t.Errorf("ToastMs: got %d, want 1000", loaded.ToastMs)
		}
	})
}

func TestSetExitMs(t *testing.T) {
	t.Run("stores override and preserves other fields", func(t *testing.T) {
		dir := t.TempDir()
		if err := Save(dir, &Config{LogLevel: "warn"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if err := SetExitMs(dir, KindModal, 300); err != nil {
			t.Fatalf("SetExitMs failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got := cfg.ExitDuration(KindModal); got != 300*time.Millisecond {
			t.Errorf("ExitDuration(modal): got %v, want 300ms", got)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("LogLevel lost: got %q", cfg.LogLevel)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		if err := SetExitMs(t.TempDir(), "sidebar", 100); err == nil {
			t.Fatal("expected error for unknown kind")
		}
	})

	t.Run("rejects negative duration", func(t *testing.T) {
		if err := SetExitMs(t.TempDir(), KindToast, -1); err == nil {
			t.Fatal("expected error for negative duration")
		}
	})
}

func TestExitDuration(t *testing.T) {
	cfg := &Config{ExitMs: map[string]int{
		KindDropdown: 0,
		KindPalette:  -5,
	}}

	tests := []struct {
		kind string
		want time.Duration
	}{
		{KindTooltip, 120 * time.Millisecond},
		{KindDropdown, 0},
		{KindPalette, 240 * time.Millisecond},
		{KindConfirm, 180 * time.Millisecond},
		{KindToast, 220 * time.Millisecond},
		{"unknown", 240 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := cfg.ExitDuration(tt.kind); got != tt.want {
				t.Errorf("ExitDuration(%q) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.FrameInterval(); got != 16*time.Millisecond {
		t.Errorf("FrameInterval: got %v", got)
	}
	if got := cfg.ToastDuration(); got != 4500*time.Millisecond {
		t.Errorf("ToastDuration: got %v", got)
	}
	if got := cfg.RecentColors(); got != 8 {
		t.Errorf("RecentColors: got %d", got)
	}
	if got := cfg.Level(); got != slog.LevelInfo {
		t.Errorf("Level: got %v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SHEETUI_LOG_LEVEL", "debug")
	t.Setenv("SHEETUI_FRAME_MS", "40")
	t.Setenv("SHEETUI_TOAST_MS", "nope")

	cfg := &Config{ToastMs: 1234}
	cfg.ApplyEnv()

	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level: got %v, want debug", cfg.Level())
	}
	if cfg.FrameInterval() != 40*time.Millisecond {
		t.Errorf("FrameInterval: got %v, want 40ms", cfg.FrameInterval())
	}
	if cfg.ToastMs != 1234 {
		t.Errorf("invalid SHEETUI_TOAST_MS should be ignored, got %d", cfg.ToastMs)
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		if err := LoadEnvFile(t.TempDir()); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
	})

	t.Run("sets unset variables", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SHEETUI_TEST_ENV_FILE=warn\n"), 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}
		t.Setenv("SHEETUI_TEST_ENV_FILE", "")
		os.Unsetenv("SHEETUI_TEST_ENV_FILE")

		if err := LoadEnvFile(dir); err != nil {
			t.Fatalf("LoadEnvFile failed: %v", err)
		}
		if got := os.Getenv("SHEETUI_TEST_ENV_FILE"); got != "warn" {
			t.Errorf("SHEETUI_TEST_ENV_FILE: got %q, want %q", got, "warn")
		}
	})
}

func TestLogPath(t *testing.T) {
	dir := "/work"
	if got := (&Config{}).LogPath(dir); got != filepath.Join(dir, ".sheetui", "sheetui.log") {
		t.Errorf("default LogPath: got %q", got)
	}
	if got := (&Config{LogFile: "/tmp/x.log"}).LogPath(dir); got != "/tmp/x.log" {
		t.Errorf("absolute LogPath: got %q", got)
	}
	if got := (&Config{LogFile: "ui.log"}).LogPath(dir); got != filepath.Join(dir, ".sheetui", "ui.log") {
		t.Errorf("relative LogPath: got %q", got)
	}
}
