// Package cli defines the linguanews command tree.
package cli

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"LinguaNews/internal/app"
	"LinguaNews/internal/config"
	"LinguaNews/internal/logging"
	"LinguaNews/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "linguanews",
	Short: "Read and listen to leveled AI news in the terminal",
	Long: `linguanews fetches news rewritten for your CEFR level (A1-C2),
shows them in a terminal UI, reads them aloud, and can deliver a daily
notification with the newest story.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// buildApp composes the application for a command invocation. Headless
// commands log to stderr; the TUI silences logs so they do not tear the
// screen it draws on.
func buildApp(logWriter io.Writer) (*app.Application, error) {
	cfg := config.Load()

	var logger = logging.New(cfg.Logging.Level)
	if logWriter != nil {
		logger = logging.NewWithWriter(logWriter, cfg.Logging.Level)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return application, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	application, err := buildApp(io.Discard)
	if err != nil {
		return err
	}
	defer application.Close()

	program := tea.NewProgram(tui.New(application), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
