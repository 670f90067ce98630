package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// repoCmd groups the repository-tracking commands.
var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage tracked repositories",
	Long:  `Track local git repositories so their commit history can be scanned.`,
}

// repoAddCmd represents the repo add command
var repoAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Track a local repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := app.repositories.Add(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to add repository: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":             repo.ID,
				"name":           repo.Name,
				"path":           repo.Path,
				"current_branch": repo.CurrentBranch,
			})
		}

		fmt.Printf("%s %s (ID: %d)\n", styleAdded.Render("Tracking"), repo.Name, repo.ID)
		if repo.CurrentBranch != "" {
			fmt.Printf("   Branch: %s\n", repo.CurrentBranch)
		}
		fmt.Printf("   Path:   %s\n", repo.Path)
		return nil
	},
}

// repoListCmd represents the repo list command
var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repos, err := app.repositories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list repositories: %w", err)
		}

		if jsonOutput {
			var repoList []map[string]interface{}
			for _, repo := range repos {
				repoList = append(repoList, map[string]interface{}{
					"id":             repo.ID,
					"name":           repo.Name,
					"path":           repo.Path,
					"current_branch": repo.CurrentBranch,
					"is_favorite":    repo.IsFavorite,
				})
			}
			return printJSON(map[string]interface{}{
				"repositories": repoList,
				"count":        len(repoList),
			})
		}

		if len(repos) == 0 {
			fmt.Println("No repositories tracked. Add one with \"gitdeck repo add <path>\".")
			return nil
		}

		fmt.Println(styleTitle.Render(fmt.Sprintf("Repositories (%d):", len(repos))))
		for _, repo := range repos {
			marker := " "
			if repo.IsFavorite {
				marker = "*"
			}
			fmt.Printf("%s %3d  %-24s %s\n", marker, repo.ID, repo.Name,
				styleMuted.Render(repo.Path))
		}
		return nil
	},
}

// repoRemoveCmd represents the repo remove command
var repoRemoveCmd = &cobra.Command{
	Use:   "remove [repository]",
	Short: "Stop tracking a repository",
	Long:  `Stop tracking a repository and delete its indexed commit history.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		if err := app.repositories.Remove(ctx, repo.ID); err != nil {
			return fmt.Errorf("failed to remove repository: %w", err)
		}

		fmt.Printf("Removed %s (ID: %d)\n", repo.Name, repo.ID)
		return nil
	},
}

// repoFavoriteCmd represents the repo favorite command
var repoFavoriteCmd = &cobra.Command{
	Use:   "favorite [repository]",
	Short: "Toggle the favorite flag of a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		updated, err := app.repositories.ToggleFavorite(ctx, repo.ID)
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}

		state := "unfavorited"
		if updated.IsFavorite {
			state = "favorited"
		}
		fmt.Printf("%s %s\n", updated.Name, state)
		return nil
	},
}

func init() {
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoFavoriteCmd)
}
