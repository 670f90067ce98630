package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/spf13/cobra"
)

// settingsCmd groups the application-settings commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write application settings",
}

// settingsGetCmd represents the settings get command
var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Read a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		value, err := app.settings.Get(ctx, args[0])
		if err != nil {
			if errors.Is(err, domain.ErrSettingNotFound) {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			return fmt.Errorf("failed to read setting: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"key":   args[0],
				"value": value,
			})
		}

		fmt.Println(value)
		return nil
	},
}

// settingsSetCmd represents the settings set command
var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Write a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := app.settings.Set(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("failed to write setting: %w", err)
		}

		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
