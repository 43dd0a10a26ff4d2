package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored replays",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	replays, err := db.ListReplays()
	if err != nil {
		return fmt.Errorf("list replays: %w", err)
	}
	if len(replays) == 0 {
		fmt.Fprintln(os.Stdout, "No replays stored yet. Run 'slpresults parse <replay.json>' to add one.")
		return nil
	}

	report.PrintReplayList(os.Stdout, replays)
	return nil
}
