package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
)

var runCmd = &cobra.Command{
	Use:         "run",
	Short:       "Launch the game (same as running lingua with no command)",
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.RunOptions{})
	},
}

// runApp opens the services and launches the TUI.
func runApp(cmd *cobra.Command, opts app.RunOptions) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()
	return app.Run(cmd.Context(), svc.screens(), opts)
}
