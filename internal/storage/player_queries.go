package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/slp-results/internal/model"
)

// latestTagSQL picks the tag a code used in its most recent replay.
const latestTagSQL = `(
	SELECT p2.tag FROM replay_players p2
	JOIN replays r2 ON r2.hash = p2.replay_hash
	WHERE p2.code = p.code
	ORDER BY r2.started_at DESC, r2.parsed_at DESC
	LIMIT 1)`

// GetPlayerRecord returns the win/loss record for a netplay code, or nil if the
// code has never been seen.
func (db *DB) GetPlayerRecord(code string) (*model.PlayerRecord, error) {
	var r model.PlayerRecord
	var tag sql.NullString
	err := db.conn.QueryRow(`
		SELECT p.code, `+latestTagSQL+`, COUNT(1), COALESCE(SUM(p.winner), 0)
		FROM replay_players p
		WHERE p.code = ?
		GROUP BY p.code`, code).
		Scan(&r.Code, &tag, &r.Games, &r.Wins)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Tag = tag.String
	r.Losses = r.Games - r.Wins
	return &r, nil
}

// GetTopPlayers returns the most active codes, most games first.
func (db *DB) GetTopPlayers(limit int) ([]model.PlayerRecord, error) {
	rows, err := db.conn.Query(`
		SELECT p.code, `+latestTagSQL+`, COUNT(1) AS games, COALESCE(SUM(p.winner), 0) AS wins
		FROM replay_players p
		GROUP BY p.code
		ORDER BY games DESC, wins DESC, p.code
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerRecord
	for rows.Next() {
		var r model.PlayerRecord
		var tag sql.NullString
		if err := rows.Scan(&r.Code, &tag, &r.Games, &r.Wins); err != nil {
			return nil, err
		}
		r.Tag = tag.String
		r.Losses = r.Games - r.Wins
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetCharacterUsage returns per-character games and wins for a code.
func (db *DB) GetCharacterUsage(code string) ([]model.CharacterUsage, error) {
	rows, err := db.conn.Query(`
		SELECT character, COUNT(1) AS games, COALESCE(SUM(winner), 0)
		FROM replay_players
		WHERE code = ?
		GROUP BY character
		ORDER BY games DESC, character`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CharacterUsage
	for rows.Next() {
		var u model.CharacterUsage
		if err := rows.Scan(&u.Character, &u.Games, &u.Wins); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// HeadToHead counts replays where a and b both played on different sides and
// exactly one of them won.
func (db *DB) HeadToHead(a, b string) (winsA, winsB int, err error) {
	err = db.conn.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN pa.winner = 1 AND pb.winner = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN pb.winner = 1 AND pa.winner = 0 THEN 1 ELSE 0 END), 0)
		FROM replay_players pa
		JOIN replay_players pb ON pb.replay_hash = pa.replay_hash AND pb.slot <> pa.slot
		WHERE pa.code = ? AND pb.code = ?
		  AND (pa.team = '' OR pa.team <> pb.team)`, a, b).
		Scan(&winsA, &winsB)
	return winsA, winsB, err
}

// GetOverview summarises the whole store.
func (db *DB) GetOverview() (model.Overview, error) {
	var ov model.Overview
	var earliest, latest sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COALESCE(SUM(is_teams), 0), MIN(NULLIF(started_at, '')), MAX(NULLIF(started_at, ''))
		FROM replays`).
		Scan(&ov.TotalReplays, &ov.TeamReplays, &earliest, &latest)
	if err != nil {
		return ov, fmt.Errorf("count replays: %w", err)
	}
	ov.Earliest, ov.Latest = earliest.String, latest.String

	if err := db.conn.QueryRow(`SELECT COUNT(DISTINCT code) FROM replay_players`).Scan(&ov.UniquePlayers); err != nil {
		return ov, fmt.Errorf("count players: %w", err)
	}
	return ov, nil
}

// GetStageCounts returns how many replays were played on each stage.
func (db *DB) GetStageCounts() ([]model.StageCount, error) {
	rows, err := db.conn.Query(`
		SELECT stage, COUNT(1) AS games FROM replays
		GROUP BY stage
		ORDER BY games DESC, stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StageCount
	for rows.Next() {
		var s model.StageCount
		if err := rows.Scan(&s.Stage, &s.Games); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
