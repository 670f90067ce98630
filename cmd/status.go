package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status [repository]",
	Short: "Show the live worktree state of a repository",
	Long: `Show the live worktree state of a tracked repository: current branch,
head commit, remote, and whether the worktree is clean. This inspects the
repository on disk, not the index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		info, err := app.inspector.Inspect(ctx, repo.Path)
		if err != nil {
			return fmt.Errorf("failed to inspect repository: %w", err)
		}

		if repo.CurrentBranch != info.Branch {
			if err := app.repositories.UpdateBranch(ctx, repo.ID, info.Branch); err != nil {
				app.log.Debug("failed to record current branch", "repository_id", repo.ID, "error", err)
			}
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"repository_id": repo.ID,
				"name":          repo.Name,
				"path":          repo.Path,
				"branch":        info.Branch,
				"head":          info.Head,
				"remote_url":    info.RemoteURL,
				"is_clean":      info.IsClean,
			})
		}

		fmt.Println(styleTitle.Render(repo.Name))
		fmt.Printf("  Path:   %s\n", repo.Path)
		fmt.Printf("  Branch: %s\n", info.Branch)
		if info.Head != "" {
			fmt.Printf("  Head:   %s\n", styleHash.Render(info.Head))
		}
		if info.RemoteURL != "" {
			fmt.Printf("  Remote: %s\n", info.RemoteURL)
		}
		if info.IsClean {
			fmt.Printf("  State:  %s\n", styleAdded.Render("clean"))
		} else {
			fmt.Printf("  State:  %s\n", styleWarn.Render("uncommitted changes"))
		}
		return nil
	},
}
