package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/sheetui/internal/prefs"
	"github.com/marcus/sheetui/pkg/ui/colorpicker"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Manage recently used colors",
}

var colorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent colors, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecentColors(func(r *prefs.RecentColors) error {
			colors := r.Read()
			if len(colors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent colors")
				return nil
			}
			for _, c := range colors {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		})
	},
}

var colorsPushCmd = &cobra.Command{
	Use:   "push <hex>",
	Short: "Add a color to the front of the recent list",
	Long:  `Accepts #abc, abc, #aabbcc or aabbcc. Colors are stored upper-case.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hex, ok := colorpicker.NormalizeHex(args[0])
		if !ok {
			return fmt.Errorf("invalid color %q", args[0])
		}
		return withRecentColors(func(r *prefs.RecentColors) error {
			if err := r.Push(hex); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", hex)
			return nil
		})
	},
}

var colorsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recent colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRecentColors(func(r *prefs.RecentColors) error {
			if err := r.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared recent colors")
			return nil
		})
	},
}

func init() {
	colorsCmd.AddCommand(colorsListCmd, colorsPushCmd, colorsClearCmd)
	rootCmd.AddCommand(colorsCmd)
}

func withRecentColors(fn func(*prefs.RecentColors) error) error {
	store, err := prefs.Open(getBaseDir())
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	defer store.Close()
	return fn(prefs.NewRecentColors(store, cfg.RecentColors()))
}
