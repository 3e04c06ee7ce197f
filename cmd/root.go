package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/config"
	"github.com/abhisek/lingua/internal/store"
)

// tuiAnnotation marks commands that own the terminal; their logs go to a file.
const tuiAnnotation = "tui"

var (
	cfg     *config.Config
	logger  *slog.Logger
	logSink io.Closer
)

var rootCmd = &cobra.Command{
	Use:          "lingua",
	Short:        "Vocabulary quiz game and translator",
	Long:         "Lingua - terminal vocabulary game with timed quizzes, a part-of-speech translator and flashcards.",
	Annotations:  map[string]string{tuiAnnotation: "true"},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = c
		return setupLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logSink != nil {
			logSink.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.RunOptions{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides LINGUA_CONFIG env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging sends logs to stderr, or to a file for TUI commands.
func setupLogging(cmd *cobra.Command) error {
	if cmd.Annotations[tuiAnnotation] != "true" {
		logger = app.NewLogger(cfg.Log, nil)
		return nil
	}
	path := cfg.Log.File
	if path == "" {
		dir, err := store.DataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		path = filepath.Join(dir, "lingua.log")
	}
	f, err := app.OpenLogFile(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logSink = f
	logger = app.NewLogger(cfg.Log, f)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (LINGUA_DB or storage.db_path), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Storage.DBPath != "" {
		return cfg.Storage.DBPath, store.EnsureDir(cfg.Storage.DBPath)
	}
	return store.DefaultDBPath()
}
