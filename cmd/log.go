package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	logOffset int
	logLimit  int
)

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log [repository]",
	Short: "Show indexed commits for a repository",
	Long: `Show the indexed commit history of a repository, newest first.

The listing reads from the local index only. Run "gitdeck scan" first to
pick up new commits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		commits, err := app.history.ListCommits(ctx, repo.ID, logOffset, logLimit)
		if err != nil {
			return fmt.Errorf("failed to list commits: %w", err)
		}

		if jsonOutput {
			var commitList []map[string]interface{}
			for _, commit := range commits {
				entry := map[string]interface{}{
					"hash":         commit.Hash,
					"short_hash":   commit.AbbreviatedHash,
					"author_name":  commit.AuthorName,
					"author_email": commit.AuthorEmail,
					"date":         commit.Date.Format("2006-01-02T15:04:05Z07:00"),
					"message":      commit.Message,
					"parent_count": commit.ParentCount(),
				}
				if commit.Body != nil {
					entry["body"] = *commit.Body
				}
				commitList = append(commitList, entry)
			}
			return printJSON(map[string]interface{}{
				"repository_id": repo.ID,
				"commits":       commitList,
				"count":         len(commitList),
			})
		}

		if len(commits) == 0 {
			if logOffset > 0 {
				fmt.Println("No commits at this offset.")
			} else {
				fmt.Printf("No commits indexed for %s. Run \"gitdeck scan %d\" first.\n", repo.Name, repo.ID)
			}
			return nil
		}

		fmt.Println(styleTitle.Render(fmt.Sprintf("%s (%d commits shown):", repo.Name, len(commits))))
		for _, commit := range commits {
			subject := commit.Message
			if idx := strings.IndexByte(subject, '\n'); idx >= 0 {
				subject = subject[:idx]
			}
			marker := " "
			if commit.IsMerge() {
				marker = "M"
			}
			fmt.Printf("%s %s  %s  %s %s\n",
				marker,
				styleHash.Render(commit.AbbreviatedHash),
				commit.Date.Format("2006-01-02 15:04"),
				subject,
				styleMuted.Render("("+commit.AuthorName+")"))
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVar(&logOffset, "offset", 0, "Number of commits to skip")
	logCmd.Flags().IntVar(&logLimit, "limit", 0, "Maximum commits to show (default 50)")
}
