package cmd

import (
	"fmt"

	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var scanFull bool

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [repository]",
	Short: "Scan a repository's commit history into the index",
	Long: `Scan a repository's commit history into the local index.

By default only commits newer than the latest indexed one are fetched.
With --full the indexed history is cleared and rebuilt from scratch.
Starting a scan supersedes any scan already running for the same repository.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		repo, err := resolveRepository(ctx, args[0])
		if err != nil {
			return err
		}

		var bar *progressbar.ProgressBar
		onProgress := func(p domain.ScanProgress) {
			if jsonOutput {
				return
			}
			if bar == nil {
				bar = progressbar.NewOptions(p.Total,
					progressbar.OptionSetDescription("Indexing commits"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}
			_ = bar.Set(p.Scanned)
		}

		var result domain.ScanResult
		if scanFull {
			result = app.history.FullScan(ctx, repo.ID, repo.Path, onProgress)
		} else {
			result = app.history.Scan(ctx, repo.ID, repo.Path, onProgress)
		}

		if bar != nil {
			_ = bar.Finish()
		}

		if err := app.notifier.NotifyScanComplete(repo.Name, result.Added); err != nil {
			app.log.Debug("scan notification failed", "error", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"repository_id": repo.ID,
				"added":         result.Added,
				"scanned":       result.Scanned,
				"total":         result.Total,
				"dropped":       result.Dropped,
				"cancelled":     result.Cancelled,
			})
		}

		if result.Cancelled {
			fmt.Println(styleWarn.Render("Scan superseded by a newer scan for this repository."))
		}
		fmt.Printf("%s %d new commits for %s",
			styleAdded.Render("Indexed"), result.Added, repo.Name)
		if result.Total > 0 && result.Added < result.Total {
			fmt.Printf(" %s", styleMuted.Render(fmt.Sprintf("(%d of %d records already indexed)",
				result.Total-result.Added, result.Total)))
		}
		fmt.Println()
		if result.Dropped > 0 {
			fmt.Println(styleWarn.Render(fmt.Sprintf("Dropped %d malformed log records.", result.Dropped)))
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanFull, "full", false, "Clear the indexed history and rescan everything")
}
