package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count [repository]",
	Short: "Count indexed commits for a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		count, err := app.history.CountCommits(ctx, repo.ID)
		if err != nil {
			return fmt.Errorf("failed to count commits: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"repository_id": repo.ID,
				"count":         count,
			})
		}

		fmt.Printf("%s: %d indexed commits\n", repo.Name, count)
		return nil
	},
}
