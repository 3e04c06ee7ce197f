package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Print a random quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		character, _ := cmd.Flags().GetBool("character")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if character {
			fmt.Println(svc.quotes.Character(cmd.Context()).Format())
			return nil
		}
		fmt.Println(svc.quotes.Random(cmd.Context()).Format())
		return nil
	},
}

func init() {
	quoteCmd.Flags().BoolP("character", "c", false, "Quote with character and anime")
}
