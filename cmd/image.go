package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image <word>",
	Short: "Generate (or fetch from cache) the image for a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		img, err := svc.images.GenerateFor(cmd.Context(), args[0], subject)
		if err != nil {
			return fmt.Errorf("generate image: %w", err)
		}
		src := string(img.Provider)
		if img.Cached {
			src = "cache"
		}
		fmt.Printf("%s (%s)\n", img.Path, src)
		return nil
	},
}

func init() {
	imageCmd.Flags().StringP("subject", "s", "", "What the word means, used in the prompt (e.g. its translation)")
}
