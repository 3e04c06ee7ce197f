package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		p := svc.game.Progress()
		fmt.Printf("Total score: %d\n\n", p.TotalScore)
		if len(p.Languages) == 0 {
			fmt.Println("No levels played yet.")
			return nil
		}

		ids := make([]string, 0, len(p.Languages))
		for id := range p.Languages {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		fmt.Printf("%-12s  %8s  %9s  %6s\n", "Language", "Score", "Completed", "Next")
		fmt.Println(strings.Repeat("─", 42))
		for _, id := range ids {
			lp := p.Languages[id]
			fmt.Printf("%-12s  %8d  %9d  %6d\n", id, lp.TotalScore, len(lp.CompletedLevels), lp.CurrentLevel)
		}
		return nil
	},
}
