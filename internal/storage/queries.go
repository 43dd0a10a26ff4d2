package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pable/slp-results/internal/model"
)

// ReplayExists returns true if a replay with the given hash is already stored.
func (db *DB) ReplayExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM replays WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertOutcome stores a resolved replay and its players in one transaction.
// Re-inserting the same hash replaces the previous rows.
func (db *DB) InsertOutcome(o model.MatchOutcome) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO replays(hash, source_path, stage, started_at, duration_frames, is_teams, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ReplayHash, o.SourcePath, o.StageString(), o.StartedAt,
		o.DurationFrames, boolInt(o.IsTeams), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert replay: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM replay_players WHERE replay_hash = ?", o.ReplayHash); err != nil {
		return fmt.Errorf("clear replay_players: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO replay_players(
			replay_hash, slot, code, tag, character, team, stocks, damage, winner
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range o.Players {
		_, err = stmt.Exec(
			o.ReplayHash, p.Slot, p.Code, p.Tag,
			p.CharacterString(), p.TeamString(),
			int(p.Stocks), float64(p.Damage), boolInt(p.Winner),
		)
		if err != nil {
			return fmt.Errorf("insert replay_players for port %d: %w", p.Slot, err)
		}
	}
	return tx.Commit()
}

const replayColumns = `hash, source_path, stage, started_at, duration_frames, is_teams`

func scanReplay(sc interface{ Scan(...any) error }) (model.MatchOutcome, error) {
	var o model.MatchOutcome
	var stage string
	var isTeamsInt int
	if err := sc.Scan(&o.ReplayHash, &o.SourcePath, &stage, &o.StartedAt, &o.DurationFrames, &isTeamsInt); err != nil {
		return o, err
	}
	if stage != "" {
		s := model.StageName(stage)
		o.Stage = &s
	}
	o.IsTeams = isTeamsInt != 0
	return o, nil
}

// ListReplays returns all stored replays, newest first. Players are not loaded.
func (db *DB) ListReplays() ([]model.MatchOutcome, error) {
	rows, err := db.conn.Query(`SELECT ` + replayColumns + ` FROM replays ORDER BY started_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchOutcome
	for rows.Next() {
		o, err := scanReplay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetReplayByPrefix finds the first replay whose hash starts with the given prefix.
// Players are not loaded.
func (db *DB) GetReplayByPrefix(prefix string) (*model.MatchOutcome, error) {
	row := db.conn.QueryRow(`SELECT `+replayColumns+` FROM replays WHERE hash LIKE ? ORDER BY hash LIMIT 1`, prefix+"%")
	o, err := scanReplay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetReplayPlayers returns the stored players of a replay in port order.
func (db *DB) GetReplayPlayers(hash string) ([]model.PlayerState, error) {
	rows, err := db.conn.Query(`
		SELECT slot, code, tag, character, team, stocks, damage, winner
		FROM replay_players WHERE replay_hash = ?
		ORDER BY slot`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerState
	for rows.Next() {
		var p model.PlayerState
		var character, team string
		var stocks, winner int
		var damage float64
		if err := rows.Scan(&p.Slot, &p.Code, &p.Tag, &character, &team, &stocks, &damage, &winner); err != nil {
			return nil, err
		}
		p.Stocks = uint8(stocks)
		p.Damage = float32(damage)
		p.Winner = winner != 0
		if character != "" {
			c := model.CharacterLabel(character)
			p.Character = &c
		}
		if team != "" {
			l := model.TeamLabel(team)
			p.Team = &l
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetOutcome loads a replay and its players by hash prefix. Returns nil if not found.
func (db *DB) GetOutcome(prefix string) (*model.MatchOutcome, error) {
	o, err := db.GetReplayByPrefix(prefix)
	if err != nil || o == nil {
		return o, err
	}
	o.Players, err = db.GetReplayPlayers(o.ReplayHash)
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	return o, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
