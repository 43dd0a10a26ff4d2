package storage

import (
	"testing"

	"github.com/pable/slp-results/internal/model"
)

func seedRivalry(t *testing.T, db *DB) {
	t.Helper()
	mustInsert(t, db, singles("r1", "2025-01-01T10:00:00Z", "A#1", "B#2", 0))
	mustInsert(t, db, singles("r2", "2025-01-02T10:00:00Z", "A#1", "B#2", 0))
	mustInsert(t, db, singles("r3", "2025-01-03T10:00:00Z", "B#2", "A#1", 0))
	mustInsert(t, db, singles("r4", "2025-01-04T10:00:00Z", "A#1", "C#3", 1))
}

func TestGetPlayerRecord(t *testing.T) {
	db := openMemDB(t)
	seedRivalry(t, db)

	r, err := db.GetPlayerRecord("A#1")
	if err != nil {
		t.Fatalf("GetPlayerRecord: %v", err)
	}
	if r == nil {
		t.Fatal("expected a record for A#1")
	}
	if r.Games != 4 || r.Wins != 2 || r.Losses != 2 {
		t.Errorf("expected 4 games 2-2, got %+v", r)
	}
	if r.WinPct() != 50 {
		t.Errorf("expected 50%%, got %.1f", r.WinPct())
	}
	if r.Tag != "tag-A#1" {
		t.Errorf("unexpected tag %q", r.Tag)
	}

	none, err := db.GetPlayerRecord("NOPE#0")
	if err != nil {
		t.Fatalf("GetPlayerRecord unknown: %v", err)
	}
	if none != nil {
		t.Errorf("expected nil for unknown code, got %+v", none)
	}
}

func TestPlayerRecordUsesLatestTag(t *testing.T) {
	db := openMemDB(t)
	old := singles("t1", "2024-01-01T10:00:00Z", "A#1", "B#2", 0)
	recent := singles("t2", "2025-01-01T10:00:00Z", "A#1", "B#2", 0)
	recent.Players[0].Tag = "renamed"
	mustInsert(t, db, recent)
	mustInsert(t, db, old)

	r, err := db.GetPlayerRecord("A#1")
	if err != nil {
		t.Fatalf("GetPlayerRecord: %v", err)
	}
	if r.Tag != "renamed" {
		t.Errorf("expected most recent tag, got %q", r.Tag)
	}
}

func TestGetTopPlayers(t *testing.T) {
	db := openMemDB(t)
	seedRivalry(t, db)

	top, err := db.GetTopPlayers(2)
	if err != nil {
		t.Fatalf("GetTopPlayers: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(top))
	}
	if top[0].Code != "A#1" || top[0].Games != 4 {
		t.Errorf("expected A#1 with 4 games first, got %+v", top[0])
	}
	if top[1].Code != "B#2" || top[1].Games != 3 || top[1].Wins != 1 {
		t.Errorf("expected B#2 3 games 1 win second, got %+v", top[1])
	}
}

func TestGetCharacterUsage(t *testing.T) {
	db := openMemDB(t)
	seedRivalry(t, db)

	usage, err := db.GetCharacterUsage("A#1")
	if err != nil {
		t.Fatalf("GetCharacterUsage: %v", err)
	}
	// A#1 is on port 0 (FOX) in r1, r2, r4 and port 1 (MARTH) in r3.
	if len(usage) != 2 {
		t.Fatalf("expected 2 characters, got %+v", usage)
	}
	if usage[0].Character != "FOX" || usage[0].Games != 3 || usage[0].Wins != 2 {
		t.Errorf("unexpected FOX usage: %+v", usage[0])
	}
	if usage[1].Character != "MARTH" || usage[1].Games != 1 || usage[1].Wins != 0 {
		t.Errorf("unexpected MARTH usage: %+v", usage[1])
	}
}

func TestHeadToHead(t *testing.T) {
	db := openMemDB(t)
	seedRivalry(t, db)

	a, b, err := db.HeadToHead("A#1", "B#2")
	if err != nil {
		t.Fatalf("HeadToHead: %v", err)
	}
	if a != 2 || b != 1 {
		t.Errorf("expected 2-1, got %d-%d", a, b)
	}

	a, b, err = db.HeadToHead("B#2", "C#3")
	if err != nil {
		t.Fatalf("HeadToHead no games: %v", err)
	}
	if a != 0 || b != 0 {
		t.Errorf("expected 0-0, got %d-%d", a, b)
	}
}

func TestHeadToHeadSkipsTeammates(t *testing.T) {
	db := openMemDB(t)
	red, blue := label[model.TeamLabel]("RED"), label[model.TeamLabel]("BLUE")
	mustInsert(t, db, model.MatchOutcome{
		ReplayHash: "dbl",
		IsTeams:    true,
		Players: []model.PlayerState{
			{Code: "A#1", Tag: "a", Slot: 0, Stocks: 1, Team: red, Winner: true},
			{Code: "B#2", Tag: "b", Slot: 1, Stocks: 0, Team: red, Winner: true},
			{Code: "C#3", Tag: "c", Slot: 2, Stocks: 0, Team: blue},
			{Code: "D#4", Tag: "d", Slot: 3, Stocks: 0, Team: blue},
		},
	})

	a, b, err := db.HeadToHead("A#1", "C#3")
	if err != nil {
		t.Fatalf("HeadToHead: %v", err)
	}
	if a != 1 || b != 0 {
		t.Errorf("expected 1-0 against opponent, got %d-%d", a, b)
	}

	a, b, _ = db.HeadToHead("A#1", "B#2")
	if a != 0 || b != 0 {
		t.Errorf("expected teammates not to count, got %d-%d", a, b)
	}
}

func TestGetOverviewAndStages(t *testing.T) {
	db := openMemDB(t)

	ov, err := db.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview empty: %v", err)
	}
	if ov.TotalReplays != 0 {
		t.Errorf("expected empty overview, got %+v", ov)
	}

	seedRivalry(t, db)
	ov, err = db.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.TotalReplays != 4 || ov.UniquePlayers != 3 || ov.TeamReplays != 0 {
		t.Errorf("unexpected overview %+v", ov)
	}
	if ov.Earliest != "2025-01-01T10:00:00Z" || ov.Latest != "2025-01-04T10:00:00Z" {
		t.Errorf("unexpected date range %s → %s", ov.Earliest, ov.Latest)
	}

	stages, err := db.GetStageCounts()
	if err != nil {
		t.Fatalf("GetStageCounts: %v", err)
	}
	if len(stages) != 1 || stages[0].Stage != "BATTLEFIELD" || stages[0].Games != 4 {
		t.Errorf("unexpected stage counts %+v", stages)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	seedRivalry(t, db)

	cols, rows, err := db.QueryRaw("SELECT code, SUM(winner) AS wins FROM replay_players WHERE code = 'A#1' GROUP BY code")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[1] != "wins" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "A#1" || rows[0][1] != "2" {
		t.Errorf("unexpected rows %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT nope FROM nowhere"); err == nil {
		t.Error("expected error for bad query")
	}
}
