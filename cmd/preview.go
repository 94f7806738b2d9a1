package cmd

import (
	"fmt"

	"github.com/adube/examterm/internal/aiken"
	"github.com/adube/examterm/internal/config"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Parse a question bank and report what it contains (no database)",
	Long: `Parse the configured question bank and print every question with its
difficulty, time limit, and topic, plus a tally of malformed blocks.

This is a stateless authoring tool for checking a bank before a test.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("answers", false, "Show the correct answer for each question")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bank, report, err := loadBank(cmd, cfg)
	if err != nil {
		return err
	}
	showAnswers, _ := cmd.Flags().GetBool("answers")

	byTier := map[aiken.Tier]int{}
	for i, q := range bank {
		byTier[q.Difficulty]++
		fmt.Printf("── Question %d/%d ── %s · %s · %ds\n", i+1, len(bank), q.Topic, q.Difficulty, q.TimeLimit)
		fmt.Println(q.Text)
		if q.HasImage {
			fmt.Println("  [figure]", q.ImageURL)
		}
		for j, opt := range q.Options {
			marker := "  "
			if showAnswers && j == q.CorrectAnswer {
				marker = "✓ "
			}
			fmt.Printf("  %s%s\n", marker, opt)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary ──\n")
	fmt.Printf("Parsed: %d questions (easy %d, medium %d, hard %d)\n",
		report.Emitted, byTier[aiken.TierEasy], byTier[aiken.TierMedium], byTier[aiken.TierHard])
	if report.Dropped > 0 {
		fmt.Printf("Skipped: %d malformed blocks\n", report.Dropped)
	}
	return nil
}
