package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/slp-results/internal/logging"
	"github.com/pable/slp-results/internal/model"
	"github.com/pable/slp-results/internal/report"
	"github.com/pable/slp-results/internal/results"
	"github.com/pable/slp-results/internal/storage"
)

var (
	parseFocus   string
	parseWorkers int
	parseForce   bool
	parseQuiet   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <replay.json|dir>...",
	Short: "Resolve decoded replays and store the results",
	Long: `Resolve the winners of one or more decoded replay exports and store them.

Directories are walked for *.json files. Replays already stored are shown from
the database unless --force is given. Replays whose last frame cannot describe
a finished game are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFocus, "player", "", "highlight netplay code (e.g. ABCD#123)")
	parseCmd.Flags().IntVarP(&parseWorkers, "workers", "w", 0, "replays resolved in parallel (default from config)")
	parseCmd.Flags().BoolVar(&parseForce, "force", false, "re-store replays that are already in the database")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "only print the final tally")
}

func runParse(cmd *cobra.Command, args []string) error {
	paths, err := collectReplayPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no replay files found in %s", strings.Join(args, ", "))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	logging.Info(logger, "resolving replays", logging.FieldCount, len(paths), logging.FieldWorkers, cfg.Workers)
	res, err := results.ResolveFiles(ctx, paths, cfg.Workers, logger)
	if err != nil {
		return fmt.Errorf("resolve replays: %w", err)
	}

	var stored, cached, skipped int
	for _, r := range res {
		if r.Err != nil {
			skipped++
			if errors.Is(r.Err, results.ErrInvalidState) || errors.Is(r.Err, results.ErrNoPlayers) {
				logging.Warn(logger, "replay skipped", r.Err, logging.FieldPath, r.Path)
			} else {
				logging.Error(logger, "replay failed", r.Err, logging.FieldPath, r.Path)
			}
			continue
		}

		o := r.Outcome
		exists, err := db.ReplayExists(o.ReplayHash)
		if err != nil {
			return fmt.Errorf("check replay: %w", err)
		}
		if exists && !parseForce {
			cached++
			if !parseQuiet {
				fmt.Fprintf(os.Stdout, "Replay %s already stored — showing cached results.\n", report.ShortHash(o.ReplayHash))
				if err := showByHash(db, o.ReplayHash, parseFocus); err != nil {
					return err
				}
			}
			continue
		}

		if err := db.InsertOutcome(o); err != nil {
			return fmt.Errorf("insert outcome: %w", err)
		}
		stored++
		logging.Debug(logger, "replay stored", logging.FieldReplay, report.ShortHash(o.ReplayHash), logging.FieldPath, r.Path)
		if !parseQuiet {
			printOutcome(o, parseFocus)
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d stored, %d already known, %d skipped (%s)\n",
		stored, cached, skipped, time.Since(start).Round(time.Millisecond))
	return nil
}

// collectReplayPaths expands directories into the *.json files they contain.
func collectReplayPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return paths, nil
}

func printOutcome(o model.MatchOutcome, focus string) {
	report.PrintOutcomeSummary(os.Stdout, o)
	report.PrintPlayerTable(os.Stdout, o.Players, focus)
}

func showByHash(db *storage.DB, hash, focus string) error {
	o, err := db.GetOutcome(hash)
	if err != nil {
		return fmt.Errorf("get replay: %w", err)
	}
	if o == nil {
		return fmt.Errorf("replay not found: %s", hash)
	}
	printOutcome(*o, focus)
	return nil
}
