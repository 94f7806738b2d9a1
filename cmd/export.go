package cmd

import (
	"fmt"

	"github.com/adube/examterm/internal/export"
	"github.com/adube/examterm/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the most recent test result to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		var artifact export.Artifact
		found, err := st.LoadInto(cmd.Context(), store.KeyLastResult, &artifact)
		if err != nil {
			return fmt.Errorf("load last result: %w", err)
		}
		if !found {
			return fmt.Errorf("no completed test to export")
		}

		out, _ := cmd.Flags().GetString("out")
		if err := export.Write(out, artifact); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s, %s)\n", out, artifact.Name, artifact.Score)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "test-results.json", "Output file path")
}
