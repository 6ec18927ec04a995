package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/marcus/sheetui/internal/prefs"
	"github.com/marcus/sheetui/internal/sheet"
	"github.com/marcus/sheetui/internal/suggest"
	"github.com/marcus/sheetui/pkg/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the spreadsheet",
	Long: `Open the interactive spreadsheet.

Use --template to start from a built-in layout (blank, budget, invoice, todo).
Recently picked colors are kept in .sheetui/prefs.db.`,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
	uiCmd.Flags().StringP("template", "t", "blank", "Starting template")
}

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("sheetui ui needs an interactive terminal")
	}

	templateID, _ := cmd.Flags().GetString("template")
	tmpl, ok := sheet.FindTemplate(templateID)
	if !ok {
		return suggest.Unknown("template", templateID, templateIDs())
	}

	store, err := prefs.Open(getBaseDir())
	if err != nil {
		return fmt.Errorf("open prefs: %w", err)
	}
	defer store.Close()

	model := ui.New(ui.Options{
		Config:  cfg,
		Sheet:   sheet.FromTemplate(tmpl),
		Recents: prefs.NewRecentColors(store, cfg.RecentColors()),
		Finder:  sheet.TextFinder{},
	})
	defer model.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	slog.Info("ui exited", "template", templateID)
	return nil
}

func templateIDs() []string {
	var ids []string
	for _, t := range sheet.Templates() {
		ids = append(ids, t.ID)
	}
	return ids
}
