package results

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pable/slp-results/internal/logging"
	"github.com/pable/slp-results/internal/model"
	"github.com/pable/slp-results/internal/replay"
)

// FileResult is the outcome of resolving one replay file. Exactly one of
// Outcome or Err is meaningful.
type FileResult struct {
	Path    string
	Outcome model.MatchOutcome
	Err     error
}

// ResolveFiles loads and resolves every path with at most workers replays in
// flight. Results come back in input order. Per-file failures are reported
// in FileResult.Err; the returned error is only set when ctx is cancelled.
func ResolveFiles(ctx context.Context, paths []string, workers int, logger *slog.Logger) ([]FileResult, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			out[i] = resolveFile(path)
			logging.Debug(logger, "replay resolved",
				logging.FieldPath, path,
				logging.FieldDurationMS, time.Since(start).Milliseconds(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}

func resolveFile(path string) FileResult {
	g, err := replay.Load(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	outcome, err := Resolve(g)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	return FileResult{Path: path, Outcome: outcome}
}
