package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/pos"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text...>",
	Short: "Translate text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		from, _ := cmd.Flags().GetString("from")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		tr := svc.translator.Translate(cmd.Context(), strings.Join(args, " "), to, from)
		fmt.Println(tr.TranslatedText)
		fmt.Printf("(%s → %s via %s)\n", tr.SourceLanguage, tr.TargetLanguage, tr.Provider)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <text...>",
	Short: "Tag parts of speech",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		for _, e := range svc.tagger.Tag(cmd.Context(), strings.Join(args, " "), lang) {
			fmt.Printf("%-16s %-6s %3d-%-3d %s\n", e.Word, e.Type, e.Position[0], e.Position[1], pos.Describe(e.Type))
		}
		return nil
	},
}

func init() {
	translateCmd.Flags().StringP("to", "t", "es", "Target language code")
	translateCmd.Flags().StringP("from", "f", "", "Source language code (default: auto-detect)")
	tagCmd.Flags().StringP("lang", "l", "en", "Language of the text")
}
