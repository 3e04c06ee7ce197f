package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/imagegen"
	"github.com/abhisek/lingua/internal/progress"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change game settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings(cmd)
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showSettings(cmd)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Change settings",
	Long: `Change one or more settings. Keys:
  words_per_level  1-10
  time_per_word    5-60 seconds
  use_images       true|false
  sound            true|false
  image_provider   openai|gemini
  openai_key       API key, empty to remove
  gemini_key       API key, empty to remove`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, keys, err := parseSettings(args)
		if err != nil {
			return err
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		ctx := cmd.Context()
		for p, key := range keys {
			if err := svc.game.SetAPIKey(ctx, p, key); err != nil {
				return fmt.Errorf("store %s key: %w", p, err)
			}
		}
		if !patch.Empty() {
			svc.game.UpdateSettings(ctx, patch)
		}
		return printSettings(ctx, svc.game)
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func showSettings(cmd *cobra.Command) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()
	return printSettings(cmd.Context(), svc.game)
}

func printSettings(ctx context.Context, game *progress.Store) error {
	s := game.Settings()
	fmt.Printf("words_per_level  %d\n", s.WordsPerLevel)
	fmt.Printf("time_per_word    %ds\n", s.TimePerWord)
	fmt.Printf("use_images       %v\n", s.UseImages)
	fmt.Printf("sound            %v\n", s.SoundEnabled)
	fmt.Printf("image_provider   %s\n", s.ImageProvider)
	for _, p := range []imagegen.ProviderName{imagegen.ProviderOpenAI, imagegen.ProviderGemini} {
		key, err := game.APIKey(ctx, p)
		if err != nil {
			return err
		}
		state := "not set"
		if key != "" {
			state = "set"
		}
		fmt.Printf("%-16s %s\n", string(p)+"_key", state)
	}
	return nil
}

// parseSettings turns key=value arguments into a settings patch and a set
// of API keys to store. Numeric values are clamped by the store.
func parseSettings(args []string) (progress.SettingsPatch, map[imagegen.ProviderName]string, error) {
	var patch progress.SettingsPatch
	keys := make(map[imagegen.ProviderName]string)

	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return patch, nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		switch k {
		case "words_per_level", "time_per_word":
			n, err := strconv.Atoi(v)
			if err != nil {
				return patch, nil, fmt.Errorf("%s: %w", k, err)
			}
			if k == "words_per_level" {
				patch.WordsPerLevel = &n
			} else {
				patch.TimePerWord = &n
			}
		case "use_images", "sound":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return patch, nil, fmt.Errorf("%s: %w", k, err)
			}
			if k == "use_images" {
				patch.UseImages = &b
			} else {
				patch.SoundEnabled = &b
			}
		case "image_provider":
			p, err := imagegen.ParseProvider(v)
			if err != nil {
				return patch, nil, err
			}
			patch.ImageProvider = &p
		case "openai_key":
			keys[imagegen.ProviderOpenAI] = v
		case "gemini_key":
			keys[imagegen.ProviderGemini] = v
		default:
			return patch, nil, fmt.Errorf("unknown setting %q", k)
		}
	}
	return patch, keys, nil
}
