package results

import (
	"github.com/pable/slp-results/internal/labels"
	"github.com/pable/slp-results/internal/model"
	"github.com/pable/slp-results/internal/replay"
)

// Source is the part of a decoded replay that extraction reads.
type Source interface {
	LastPost(port int) (replay.PostFrame, bool)
	StartPlayer(port int) *replay.StartPlayer
	NetplayNames(port int) (replay.NetplayNames, bool)
}

// Extract returns the state of every netplay player on the last frame, in
// port order. Ports without frames or without a code/tag pair are skipped.
func Extract(src Source) []model.PlayerState {
	var players []model.PlayerState
	for port := 0; port < replay.MaxPorts; port++ {
		post, ok := src.LastPost(port)
		if !ok {
			continue
		}
		names, ok := src.NetplayNames(port)
		if !ok {
			continue
		}
		players = append(players, model.PlayerState{
			Code:      names.Code,
			Tag:       names.Tag,
			Slot:      port,
			Stocks:    post.Stocks,
			Damage:    post.Damage,
			Team:      team(src, port),
			Character: character(src, port),
		})
	}
	return players
}

func team(src Source, port int) *model.TeamLabel {
	sp := src.StartPlayer(port)
	if sp == nil || sp.Team == nil {
		return nil
	}
	return labels.Team(sp.Team.Color)
}

func character(src Source, port int) *model.CharacterLabel {
	sp := src.StartPlayer(port)
	if sp == nil {
		return nil
	}
	return labels.Character(sp.Character)
}
