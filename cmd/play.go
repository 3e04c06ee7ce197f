package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
)

var playCmd = &cobra.Command{
	Use:         "play",
	Short:       "Jump straight into a language or level",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, _ := cmd.Flags().GetString("lang")
		level, _ := cmd.Flags().GetInt("level")
		if lang == "" {
			return fmt.Errorf("--lang is required")
		}
		return runApp(cmd, app.RunOptions{Language: lang, Level: level})
	},
}

func init() {
	playCmd.Flags().StringP("lang", "l", "", "Language id (see `lingua languages`)")
	playCmd.Flags().IntP("level", "n", 0, "Level number to start; 0 opens the level list")
}
