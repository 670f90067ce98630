package cmd

import (
	"context"
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/spf13/cobra"
)

// showCmd groups the per-commit inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect a single commit",
}

// showFilesCmd represents the show files command
var showFilesCmd = &cobra.Command{
	Use:   "files [repository] [hash]",
	Short: "List the files changed by a commit",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}
		hash := args[1]
		if !domain.IsCommitHash(hash) {
			return fmt.Errorf("invalid commit hash: %s", hash)
		}

		files := app.history.CommitFiles(ctx, repo.Path, hash)

		if jsonOutput {
			var fileList []map[string]interface{}
			for _, file := range files {
				fileList = append(fileList, map[string]interface{}{
					"status": string(file.Status),
					"file":   file.File,
				})
			}
			return printJSON(map[string]interface{}{
				"hash":  hash,
				"files": fileList,
				"count": len(fileList),
			})
		}

		if len(files) == 0 {
			fmt.Println("No changed files.")
			return nil
		}

		fmt.Println(styleTitle.Render(fmt.Sprintf("Files changed in %s:", hash[:7])))
		for _, file := range files {
			style := styleMuted
			switch file.Status {
			case domain.FileAdded:
				style = styleAdded
			case domain.FileDeleted:
				style = styleWarn
			}
			fmt.Printf("  %s %s\n", style.Render(string(file.Status)), file.File)
		}
		return nil
	},
}

// showDiffCmd represents the show diff command
var showDiffCmd = &cobra.Command{
	Use:   "diff [repository] [hash] [file]",
	Short: "Show the diff of one file in a commit",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}
		hash := args[1]
		if !domain.IsCommitHash(hash) {
			return fmt.Errorf("invalid commit hash: %s", hash)
		}

		diff := app.history.FileDiff(ctx, repo.Path, hash, args[2])

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"hash": hash,
				"file": args[2],
				"diff": diff,
			})
		}

		if diff == "" {
			fmt.Println("No diff available.")
			return nil
		}
		fmt.Print(diff)
		return nil
	},
}

func init() {
	showCmd.AddCommand(showFilesCmd)
	showCmd.AddCommand(showDiffCmd)
}
