package storage

import (
	"testing"

	"github.com/pable/slp-results/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func label[T ~string](s string) *T {
	v := T(s)
	return &v
}

// singles builds a finished 1v1 between a and b where winner (0 or 1) won.
func singles(hash, startedAt, a, b string, winner int) model.MatchOutcome {
	return model.MatchOutcome{
		ReplayHash:     hash,
		SourcePath:     "/replays/" + hash + ".json",
		Stage:          label[model.StageName]("BATTLEFIELD"),
		StartedAt:      startedAt,
		DurationFrames: 7200,
		Players: []model.PlayerState{
			{Code: a, Tag: "tag-" + a, Slot: 0, Stocks: 1, Damage: 40.5, Character: label[model.CharacterLabel]("FOX"), Winner: winner == 0},
			{Code: b, Tag: "tag-" + b, Slot: 1, Stocks: 1, Damage: 90, Character: label[model.CharacterLabel]("MARTH"), Winner: winner == 1},
		},
	}
}

func mustInsert(t *testing.T, db *DB, o model.MatchOutcome) {
	t.Helper()
	if err := db.InsertOutcome(o); err != nil {
		t.Fatalf("InsertOutcome %s: %v", o.ReplayHash, err)
	}
}

func TestReplayInsertAndExists(t *testing.T) {
	db := openMemDB(t)
	mustInsert(t, db, singles("abc123", "2025-01-01T10:00:00Z", "A#1", "B#2", 0))

	exists, err := db.ReplayExists("abc123")
	if err != nil {
		t.Fatalf("ReplayExists: %v", err)
	}
	if !exists {
		t.Error("expected replay to exist after insert")
	}

	exists2, _ := db.ReplayExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent replay to not exist")
	}
}

func TestListReplays(t *testing.T) {
	db := openMemDB(t)
	mustInsert(t, db, singles("h1", "2025-01-01T10:00:00Z", "A#1", "B#2", 0))
	mustInsert(t, db, singles("h2", "2025-02-01T10:00:00Z", "A#1", "B#2", 1))

	list, err := db.ListReplays()
	if err != nil {
		t.Fatalf("ListReplays: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 replays, got %d", len(list))
	}
	// Ordered by started_at DESC, so h2 comes first.
	if list[0].ReplayHash != "h2" {
		t.Errorf("expected h2 first (newest), got %s", list[0].ReplayHash)
	}
	if list[0].StageString() != "BATTLEFIELD" || list[0].DurationFrames != 7200 {
		t.Errorf("unexpected header: %+v", list[0])
	}
}

func TestGetReplayByPrefix(t *testing.T) {
	db := openMemDB(t)
	mustInsert(t, db, singles("deadbeef1234", "2025-01-01T10:00:00Z", "A#1", "B#2", 0))

	o, err := db.GetReplayByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetReplayByPrefix: %v", err)
	}
	if o == nil {
		t.Fatal("expected match for prefix 'deadb'")
	}
	if o.ReplayHash != "deadbeef1234" {
		t.Errorf("unexpected hash %s", o.ReplayHash)
	}

	o2, err := db.GetReplayByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetReplayByPrefix no-match: %v", err)
	}
	if o2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestOutcomeRoundTrip(t *testing.T) {
	db := openMemDB(t)

	red, blue := label[model.TeamLabel]("RED"), label[model.TeamLabel]("BLUE")
	in := model.MatchOutcome{
		ReplayHash: "teams1",
		IsTeams:    true,
		StartedAt:  "2025-03-01T10:00:00Z",
		Players: []model.PlayerState{
			{Code: "R#1", Tag: "r1", Slot: 0, Stocks: 1, Damage: 30, Team: red},
			{Code: "R#2", Tag: "r2", Slot: 1, Stocks: 1, Damage: 10, Team: red},
			{Code: "B#1", Tag: "b1", Slot: 2, Stocks: 2, Damage: 5, Team: blue, Winner: true},
			{Code: "B#2", Tag: "b2", Slot: 3, Stocks: 0, Damage: 60, Team: blue, Winner: true},
		},
	}
	mustInsert(t, db, in)

	got, err := db.GetOutcome("teams")
	if err != nil {
		t.Fatalf("GetOutcome: %v", err)
	}
	if got == nil {
		t.Fatal("expected outcome")
	}
	if !got.IsTeams {
		t.Error("expected IsTeams to round-trip")
	}
	if got.Stage != nil {
		t.Errorf("expected no stage, got %s", *got.Stage)
	}
	if len(got.Players) != 4 {
		t.Fatalf("expected 4 players, got %d", len(got.Players))
	}
	for i, p := range got.Players {
		want := in.Players[i]
		if p.Code != want.Code || p.Slot != want.Slot || p.Stocks != want.Stocks ||
			p.Damage != want.Damage || p.Winner != want.Winner || p.TeamString() != want.TeamString() {
			t.Errorf("player %d mismatch: got %+v, want %+v", i, p, want)
		}
		if p.Character != nil {
			t.Errorf("player %d: expected no character, got %s", i, *p.Character)
		}
	}
}

func TestInsertIdempotency(t *testing.T) {
	db := openMemDB(t)

	o := singles("idem1", "2025-01-01T10:00:00Z", "A#1", "B#2", 0)
	mustInsert(t, db, o)
	// Second insert replaces rather than duplicating players.
	if err := db.InsertOutcome(o); err != nil {
		t.Errorf("second InsertOutcome should succeed (idempotent): %v", err)
	}
	players, err := db.GetReplayPlayers("idem1")
	if err != nil {
		t.Fatalf("GetReplayPlayers: %v", err)
	}
	if len(players) != 2 {
		t.Errorf("expected 2 players after re-insert, got %d", len(players))
	}
}
