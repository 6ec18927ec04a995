package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	configDir  = ".sheetui"
	configFile = ".sheetui/config.json"
	envFile    = ".env"
)

// Overlay kinds with their own exit duration.
const (
	KindTooltip     = "tooltip"
	KindDropdown    = "dropdown"
	KindPopover     = "popover"
	KindContextMenu = "context_menu"
	KindToast       = "toast"
	KindPalette     = "palette"
	KindModal       = "modal"
	KindConfirm     = "confirm"
	KindTemplate    = "template"
)

// defaultExitMs mirrors the transition lengths each surface's styles use.
var defaultExitMs = map[string]int{
	KindTooltip:     120,
	KindDropdown:    180,
	KindPopover:     240,
	KindContextMenu: 240,
	KindToast:       220,
	KindPalette:     240,
	KindModal:       240,
	KindConfirm:     180,
	KindTemplate:    180,
}

const (
	defaultExitMsFallback = 240
	defaultFrameMs        = 16
	defaultToastMs        = 4500
	defaultRecentColors   = 8
)

// Config holds user-tunable UI settings.
type Config struct {
	ExitMs          map[string]int `json:"exit_ms,omitempty"`
	FrameMs         int            `json:"frame_ms,omitempty"`
	ToastMs         int            `json:"toast_ms,omitempty"`
	RecentColorsMax int            `json:"recent_colors_max,omitempty"`
	LogLevel        string         `json:"log_level,omitempty"`
	LogFile         string         `json:"log_file,omitempty"`
}

// Kinds returns every known overlay kind in a stable order.
func Kinds() []string {
	return []string{
		KindTooltip, KindDropdown, KindPopover, KindContextMenu, KindToast,
		KindPalette, KindModal, KindConfirm, KindTemplate,
	}
}

// Path returns the config file location for baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Dir returns the data directory for baseDir.
func Dir(baseDir string) string {
	return filepath.Join(baseDir, configDir)
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// SetExitMs stores an exit duration override for one overlay kind.
func SetExitMs(baseDir, kind string, ms int) error {
	if _, ok := defaultExitMs[kind]; !ok {
		return fmt.Errorf("unknown overlay kind %q", kind)
	}
	if ms < 0 {
		return fmt.Errorf("exit duration must be non-negative, got %d", ms)
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if cfg.ExitMs == nil {
		cfg.ExitMs = make(map[string]int)
	}
	cfg.ExitMs[kind] = ms
	return Save(baseDir, cfg)
}

// LoadEnvFile loads baseDir/.env into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(baseDir string) error {
	err := godotenv.Load(filepath.Join(baseDir, envFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}

// ApplyEnv overrides fields from SHEETUI_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SHEETUI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SHEETUI_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("SHEETUI_FRAME_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.FrameMs = ms
		}
	}
	if v := os.Getenv("SHEETUI_TOAST_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.ToastMs = ms
		}
	}
}

// ExitDuration returns the exit duration for an overlay kind. Missing or
// negative overrides fall back to the kind's default.
func (c *Config) ExitDuration(kind string) time.Duration {
	if ms, ok := c.ExitMs[kind]; ok && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	if ms, ok := defaultExitMs[kind]; ok {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultExitMsFallback * time.Millisecond
}

// FrameInterval returns the delay used as one paint.
func (c *Config) FrameInterval() time.Duration {
	if c.FrameMs > 0 {
		return time.Duration(c.FrameMs) * time.Millisecond
	}
	return defaultFrameMs * time.Millisecond
}

// ToastDuration returns how long a toast stays before auto-dismissing.
func (c *Config) ToastDuration() time.Duration {
	if c.ToastMs > 0 {
		return time.Duration(c.ToastMs) * time.Millisecond
	}
	return defaultToastMs * time.Millisecond
}

// RecentColors returns the size of the recent colors list.
func (c *Config) RecentColors() int {
	if c.RecentColorsMax > 0 {
		return c.RecentColorsMax
	}
	return defaultRecentColors
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogPath returns the log file, relative paths resolved against the data dir.
func (c *Config) LogPath(baseDir string) string {
	if c.LogFile == "" {
		return filepath.Join(Dir(baseDir), "sheetui.log")
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(Dir(baseDir), c.LogFile)
}
