package cmd

import (
	"fmt"

	"github.com/adube/examterm/internal/badges"
	"github.com/adube/examterm/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cumulative test statistics and badges",
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

		s, err := st.LoadStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		if s.TotalTests == 0 {
			fmt.Println("No tests taken yet. Run `examterm` to take one.")
			return nil
		}

		fmt.Printf("Tests taken:    %d (%d this week)\n", s.TotalTests, s.TestsThisWeek)
		fmt.Printf("Average score:  %d%%\n", s.AverageScore)
		avg := s.AverageTime()
		fmt.Printf("Average time:   %d:%02d\n", int(avg.Minutes()), int(avg.Seconds())%60)
		fmt.Printf("Day streak:     %d (last test %s)\n", s.Streak, s.LastTestDate.Format("2006-01-02"))

		fmt.Println("\nBadges:")
		for _, b := range badges.Catalog {
			if s.HasAchievement(b.ID) {
				fmt.Printf("  %s %-14s earned\n", b.Icon, b.Name)
			} else {
				fmt.Printf("  %s %-14s %.0f%%\n", b.Icon, b.Name, b.Progress(s))
			}
		}
		return nil
	},
}
