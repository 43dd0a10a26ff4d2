package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/model"
	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/storage"
)

var playerVs string

// playerCmd is the cobra command for cross-replay win/loss records.
var playerCmd = &cobra.Command{
	Use:   "player <code> [<code>...]",
	Short: "Win/loss record for one or more netplay codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlayer,
}

func init() {
	playerCmd.Flags().StringVar(&playerVs, "vs", "", "also show the head-to-head record against this code")
}

// runPlayer prints the overall record of each code, its character breakdown,
// and optionally a head-to-head against --vs.
func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	return printPlayers(os.Stdout, db, args, playerVs)
}

func printPlayers(w io.Writer, db *storage.DB, codes []string, vs string) error {
	var records []model.PlayerRecord
	usage := make(map[string][]model.CharacterUsage)

	for _, code := range codes {
		r, err := db.GetPlayerRecord(code)
		if err != nil {
			return fmt.Errorf("query record for %s: %w", code, err)
		}
		if r == nil {
			fmt.Fprintf(os.Stderr, "No data found for %s\n", code)
			continue
		}
		u, err := db.GetCharacterUsage(code)
		if err != nil {
			return fmt.Errorf("query characters for %s: %w", code, err)
		}
		records = append(records, *r)
		usage[code] = u
	}
	if len(records) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	report.PrintPlayerRecords(w, records)
	for _, r := range records {
		fmt.Fprintf(w, "\n--- Characters: %s (%s) ---\n\n", r.Tag, r.Code)
		report.PrintCharacterUsage(w, usage[r.Code])
	}

	if vs == "" {
		return nil
	}
	fmt.Fprintln(w)
	for _, r := range records {
		if r.Code == vs {
			continue
		}
		a, b, err := db.HeadToHead(r.Code, vs)
		if err != nil {
			return fmt.Errorf("head-to-head %s vs %s: %w", r.Code, vs, err)
		}
		fmt.Fprintf(w, "%s vs %s: %d – %d\n", r.Code, vs, a, b)
	}
	return nil
}
