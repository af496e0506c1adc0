package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/donation-cli/internal/adapters/driving/tui"
)

var tuiSession string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run a donation session in the full-screen terminal UI",
	Long: `Launch the interactive terminal user interface for a donation session.

Controls:
  Enter      - Submit / Select
  Esc        - Skip / Decline
  ←/h, →/l   - Choose an answer
  ↑/k, ↓/j   - Move through a table
  Tab        - Next table
  d          - Remove the selected row
  Ctrl+C     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiSession, "session", "", "session id (default: random)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui requires an interactive terminal, use \"donate run\" instead")
	}

	script, err := startScript(tuiSession)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(script, donationService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithLanguage(language())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	cmd.Printf("Session %s finished, %d donation(s) stored.\n", script.SessionID(), len(app.Donated()))
	return nil
}
