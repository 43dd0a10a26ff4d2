package results

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeReplay(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeReplay(t, dir, "a.json", doublesReplay),
		writeReplay(t, dir, "b.json", `{"ports": []}`),
		filepath.Join(dir, "missing.json"),
		writeReplay(t, dir, "d.json", doublesReplay),
	}

	res, err := ResolveFiles(context.Background(), paths, 3, nil)
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(res) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(res))
	}
	for i, r := range res {
		if r.Path != paths[i] {
			t.Errorf("result %d: expected path %s, got %s", i, paths[i], r.Path)
		}
	}

	if res[0].Err != nil || len(res[0].Outcome.Winners()) != 2 {
		t.Errorf("expected a.json to resolve, got err=%v", res[0].Err)
	}
	if res[0].Outcome.SourcePath != paths[0] {
		t.Errorf("expected source path on outcome, got %q", res[0].Outcome.SourcePath)
	}
	if !errors.Is(res[1].Err, ErrNoPlayers) {
		t.Errorf("expected ErrNoPlayers for b.json, got %v", res[1].Err)
	}
	if res[2].Err == nil {
		t.Error("expected an error for missing file")
	}
	if res[3].Err != nil {
		t.Errorf("expected d.json to resolve, got %v", res[3].Err)
	}
}

func TestResolveFilesZeroWorkers(t *testing.T) {
	path := writeReplay(t, t.TempDir(), "a.json", doublesReplay)

	res, err := ResolveFiles(context.Background(), []string{path}, 0, nil)
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if res[0].Err != nil {
		t.Fatalf("unexpected error: %v", res[0].Err)
	}
}

func TestResolveFilesCancelled(t *testing.T) {
	path := writeReplay(t, t.TempDir(), "a.json", doublesReplay)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ResolveFiles(ctx, []string{path, path}, 1, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
