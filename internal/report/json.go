package report

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/pable/slp-results/internal/model"
)

// OutcomeJSON renders a replay outcome as a JSON document. Absent stage,
// team and character values are written as null.
func OutcomeJSON(o model.MatchOutcome) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, v)
	}

	set("hash", o.ReplayHash)
	set("source", o.SourcePath)
	set("stage", nullable(o.StageString()))
	set("started_at", o.StartedAt)
	set("duration_frames", o.DurationFrames)
	set("is_teams", o.IsTeams)
	set("players", []any{})
	for i, p := range o.Players {
		base := fmt.Sprintf("players.%d.", i)
		set(base+"port", p.Slot)
		set(base+"code", p.Code)
		set(base+"tag", p.Tag)
		set(base+"character", nullable(p.CharacterString()))
		set(base+"team", nullable(p.TeamString()))
		set(base+"stocks", int(p.Stocks))
		set(base+"damage", float64(p.Damage))
		set(base+"winner", p.Winner)
	}
	set("winners", []int{})
	n := 0
	for _, p := range o.Players {
		if p.Winner {
			set(fmt.Sprintf("winners.%d", n), p.Slot)
			n++
		}
	}

	if err != nil {
		return nil, fmt.Errorf("encode outcome %s: %w", ShortHash(o.ReplayHash), err)
	}
	return doc, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
