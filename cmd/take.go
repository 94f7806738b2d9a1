package cmd

import (
	"fmt"

	"github.com/adube/examterm/internal/app"
	"github.com/adube/examterm/internal/config"
	"github.com/adube/examterm/internal/store"
	"github.com/spf13/cobra"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take a test (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp loads configuration and the question bank, opens the store, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bank, report, err := loadBank(cmd, cfg)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Store:  st,
		Config: cfg,
		Bank:   bank,
		Report: report,
	})
}
