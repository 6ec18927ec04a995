package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marcus/sheetui/internal/config"
	"github.com/marcus/sheetui/internal/suggest"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit UI settings",
}

// effectiveConfig is the resolved view printed by config show.
type effectiveConfig struct {
	ExitMs          map[string]int64 `json:"exit_ms"`
	FrameMs         int64            `json:"frame_ms"`
	ToastMs         int64            `json:"toast_ms"`
	RecentColorsMax int              `json:"recent_colors_max"`
	LogLevel        string           `json:"log_level"`
	LogFile         string           `json:"log_file"`
}

func resolve(c *config.Config) effectiveConfig {
	out := effectiveConfig{
		ExitMs:          make(map[string]int64),
		FrameMs:         c.FrameInterval().Milliseconds(),
		ToastMs:         c.ToastDuration().Milliseconds(),
		RecentColorsMax: c.RecentColors(),
		LogLevel:        c.Level().String(),
		LogFile:         c.LogPath(getBaseDir()),
	}
	for _, kind := range config.Kinds() {
		out.ExitMs[kind] = c.ExitDuration(kind).Milliseconds()
	}
	return out
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(resolve(cfg), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with every exit duration spelled out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path(getBaseDir())
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		defaults := &config.Config{}
		out := &config.Config{ExitMs: make(map[string]int)}
		for _, kind := range config.Kinds() {
			out.ExitMs[kind] = int(defaults.ExitDuration(kind).Milliseconds())
		}
		out.FrameMs = int(defaults.FrameInterval().Milliseconds())
		out.ToastMs = int(defaults.ToastDuration().Milliseconds())
		out.RecentColorsMax = defaults.RecentColors()
		out.LogLevel = "info"

		if err := config.Save(getBaseDir(), out); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configSetExitCmd = &cobra.Command{
	Use:   "set-exit <kind> <ms>",
	Short: "Override the exit duration of one overlay kind",
	Long:  "Kinds: tooltip, dropdown, popover, context_menu, toast, palette, modal, confirm, template.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Kinds(), args[0]) {
			return suggest.Unknown("overlay kind", args[0], config.Kinds())
		}
		ms, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[1], err)
		}
		if err := config.SetExitMs(getBaseDir(), args[0], ms); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s exit set to %dms\n", args[0], ms)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configInitCmd, configSetExitCmd)
	rootCmd.AddCommand(configCmd)
}
