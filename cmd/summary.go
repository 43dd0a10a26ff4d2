package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/storage"
)

var summaryTop int

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all replays stored in the database:
total replay count, date range, stage breakdown and the most active players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 10, "number of players to list")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalReplays == 0 {
		fmt.Fprintln(os.Stdout, "No replays stored yet. Run 'slpresults parse <replay.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Replays stored : %d (%d doubles)\n", ov.TotalReplays, ov.TeamReplays)
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n", ov.Earliest, ov.Latest)
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.UniquePlayers)

	stages, err := db.GetStageCounts()
	if err != nil {
		return fmt.Errorf("get stage counts: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Stages ---\n\n")
	report.PrintStageCounts(os.Stdout, stages)

	players, err := db.GetTopPlayers(summaryTop)
	if err != nil {
		return fmt.Errorf("get top players: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Most Active Players ---\n\n")
	report.PrintPlayerRecords(os.Stdout, players)
	return nil
}
