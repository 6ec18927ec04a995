package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/sheetui/internal/config"
	"github.com/marcus/sheetui/internal/logging"
	"github.com/marcus/sheetui/internal/workdir"
)

var (
	version   string
	baseDir   string
	cfg       *config.Config
	logCloser io.Closer
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "sheetui",
	Short: "Terminal spreadsheet with animated overlays",
	Long: `sheetui - a terminal spreadsheet front-end.

Tooltips, menus, dialogs, toasts, the command palette and the color picker
all mount, animate and unmount through one presence controller, so nothing
pops in or vanishes mid-transition.

Settings live in .sheetui/config.json under the working directory and can be
overridden with SHEETUI_* environment variables or a .env file.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "cmd", firstNonFlagArg(os.Args[1:]), "err", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "Base directory (default: current directory)")
}

// setup resolves the base directory, loads configuration and installs the
// file logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := teardown(cmd, args); err != nil {
		return err
	}
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		baseDir = workdir.ResolveBaseDir(wd)
	}

	if err := config.LoadEnvFile(baseDir); err != nil {
		return err
	}
	loaded, err := config.Load(baseDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	loaded.ApplyEnv()
	cfg = loaded

	closer, err := logging.Setup(cfg.LogPath(baseDir), cfg.Level())
	if err != nil {
		return err
	}
	logCloser = closer
	slog.Debug("start", "cmd", cmd.Name(), "version", version, "dir", baseDir)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
