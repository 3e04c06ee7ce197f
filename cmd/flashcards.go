package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/flashcard"
)

var flashcardsCmd = &cobra.Command{
	Use:     "flashcards",
	Aliases: []string{"cards"},
	Short:   "Manage saved flashcards",
}

var flashcardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("pos")
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		var items []flashcard.Item
		switch {
		case tag != "":
			items, err = svc.flashcards.ListByPartOfSpeech(ctx, strings.ToUpper(tag))
		case source != "" || target != "":
			items, err = svc.flashcards.ListByLanguage(ctx, source, target)
		default:
			items, err = svc.flashcards.List(ctx)
		}
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No flashcards found.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-24s  %-6s  %s\n", "ID", "Word", "Translation", "POS", "Langs")
		fmt.Println(strings.Repeat("─", 100))
		for _, it := range items {
			fmt.Printf("%-36s  %-16s  %-24s  %-6s  %s→%s\n",
				it.ID, truncate(it.Word, 16), truncate(it.Translation, 24), it.PartOfSpeech,
				it.SourceLanguage, it.TargetLanguage)
		}
		return nil
	},
}

var flashcardsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update a flashcard",
	RunE: func(cmd *cobra.Command, args []string) error {
		item := flashcard.Item{}
		item.Word, _ = cmd.Flags().GetString("word")
		item.Translation, _ = cmd.Flags().GetString("translation")
		item.Meaning, _ = cmd.Flags().GetString("meaning")
		item.PartOfSpeech, _ = cmd.Flags().GetString("pos")
		item.SourceLanguage, _ = cmd.Flags().GetString("source")
		item.TargetLanguage, _ = cmd.Flags().GetString("target")
		item.Context, _ = cmd.Flags().GetString("context")
		if item.Word == "" || item.Translation == "" {
			return fmt.Errorf("--word and --translation are required")
		}
		item.PartOfSpeech = strings.ToUpper(item.PartOfSpeech)

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		saved, err := svc.flashcards.Add(cmd.Context(), item)
		if err != nil {
			return err
		}
		fmt.Println("Saved", saved.ID)
		return nil
	},
}

var flashcardsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a flashcard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()
		return svc.flashcards.Delete(cmd.Context(), args[0])
	},
}

var flashcardsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of flashcards",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		n, err := svc.flashcards.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	flashcardsListCmd.Flags().String("pos", "", "Filter by part-of-speech tag (e.g. NOUN)")
	flashcardsListCmd.Flags().String("source", "", "Filter by source language")
	flashcardsListCmd.Flags().String("target", "", "Filter by target language")

	flashcardsAddCmd.Flags().String("word", "", "Word (required)")
	flashcardsAddCmd.Flags().String("translation", "", "Translation (required)")
	flashcardsAddCmd.Flags().String("meaning", "", "Meaning or definition")
	flashcardsAddCmd.Flags().String("pos", "", "Part-of-speech tag")
	flashcardsAddCmd.Flags().String("source", "en", "Source language")
	flashcardsAddCmd.Flags().String("target", "es", "Target language")
	flashcardsAddCmd.Flags().String("context", "", "Sentence the word came from")

	flashcardsCmd.AddCommand(flashcardsListCmd)
	flashcardsCmd.AddCommand(flashcardsAddCmd)
	flashcardsCmd.AddCommand(flashcardsDeleteCmd)
	flashcardsCmd.AddCommand(flashcardsCountCmd)
}
