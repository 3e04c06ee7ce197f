package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List available languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		langs := svc.game.Languages()
		if len(langs) == 0 {
			fmt.Println("No languages available.")
			return nil
		}
		fmt.Printf("%-12s  %-12s  %6s  %6s  %9s\n", "ID", "Name", "Words", "Levels", "Progress")
		fmt.Println(strings.Repeat("─", 52))
		for _, l := range langs {
			fmt.Printf("%-12s  %-12s  %6d  %6d  %8.0f%%\n", l.ID, l.Name, len(l.Words), len(l.Levels), l.Progress)
		}
		return nil
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels <language>",
	Short: "Show the levels of a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		lang, ok := svc.game.Language(args[0])
		if !ok {
			return fmt.Errorf("unknown language %q", args[0])
		}
		fmt.Printf("%s: %d/%d levels complete\n\n", lang.Name, lang.CompletedCount(), len(lang.Levels))
		for _, lv := range lang.Levels {
			mark, score := " ", "--"
			if lv.Completed {
				mark = "✓"
			}
			if lv.Completed || lv.Score > 0 {
				score = fmt.Sprintf("%d%%", lv.Score)
			}
			fmt.Printf("  %s %-10s  %2d words  %5s\n", mark, lv.Name, len(lv.Words), score)
		}
		return nil
	},
}
