package results

import (
	"errors"

	"github.com/pable/slp-results/internal/labels"
	"github.com/pable/slp-results/internal/model"
	"github.com/pable/slp-results/internal/replay"
)

// ErrNoPlayers is returned for replays without any netplay player, such as
// offline or console games.
var ErrNoPlayers = errors.New("no netplay players")

// Resolve extracts the players of g and decides the winners.
func Resolve(g *replay.Game) (model.MatchOutcome, error) {
	players := Extract(g)
	if len(players) == 0 {
		return model.MatchOutcome{}, ErrNoPlayers
	}
	determined, err := DetermineWinners(players, g.Start.IsTeams)
	if err != nil {
		return model.MatchOutcome{}, err
	}
	return model.MatchOutcome{
		ReplayHash:     g.Hash,
		SourcePath:     g.Path,
		Stage:          labels.Stage(g.Start.Stage),
		StartedAt:      g.StartedAt(),
		DurationFrames: g.LastFrame(),
		IsTeams:        g.Start.IsTeams,
		Players:        determined,
	}, nil
}
