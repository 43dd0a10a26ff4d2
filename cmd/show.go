package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/storage"
)

var (
	showFocus string
	showJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show a stored replay's result by hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFocus, "player", "", "highlight netplay code")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the result as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	o, err := db.GetOutcome(prefix)
	if err != nil {
		return fmt.Errorf("query replay: %w", err)
	}
	if o == nil {
		fmt.Fprintf(os.Stderr, "No replay found with hash prefix %q\n", prefix)
		return nil
	}

	if showJSON {
		doc, err := report.OutcomeJSON(*o)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(doc))
		return nil
	}
	printOutcome(*o, showFocus)
	return nil
}
