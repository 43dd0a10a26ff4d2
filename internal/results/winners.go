package results

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pable/slp-results/internal/model"
)

// ErrInvalidState is returned when the last frame cannot describe a finished
// game, e.g. nobody has stocks left.
var ErrInvalidState = errors.New("invalid player state")

// DetermineWinners decides who won from the last-frame player states.
//
// Steps:
//  1. Drop players with 0 stocks.
//  2. One player left, or more than two left and all on one team: the first
//     survivor wins along with every teammate, alive or not.
//  3. Otherwise break the tie: teams compare summed stocks then summed
//     damage, singles compare stocks then damage, first player on a full tie.
//
// The input is left untouched; the returned slice is a copy with Winner set.
func DetermineWinners(players []model.PlayerState, isTeams bool) ([]model.PlayerState, error) {
	var living []int
	for i, p := range players {
		if p.Alive() {
			living = append(living, i)
		}
	}
	if len(living) == 0 {
		return nil, fmt.Errorf("%w: no player has stocks left", ErrInvalidState)
	}

	out := slices.Clone(players)

	if len(living) == 1 || (len(living) > 2 && onSameTeam(players, living)) {
		first := living[0]
		out[first].Winner = true
		markTeam(out, players[first].Team)
		return out, nil
	}

	if isTeams {
		team, err := doublesTiebreak(players, living)
		if err != nil {
			return nil, err
		}
		markTeam(out, &team)
		return out, nil
	}

	out[singlesTiebreak(players, living)].Winner = true
	return out, nil
}

// WinningSlots returns the ports flagged as winners.
func WinningSlots(players []model.PlayerState) []int {
	var slots []int
	for _, p := range players {
		if p.Winner {
			slots = append(slots, p.Slot)
		}
	}
	return slots
}

// onSameTeam is false if any living player has no team.
func onSameTeam(players []model.PlayerState, living []int) bool {
	first := players[living[0]]
	for _, i := range living {
		if !players[i].SameTeam(first) {
			return false
		}
	}
	return true
}

func markTeam(players []model.PlayerState, team *model.TeamLabel) {
	if team == nil {
		return
	}
	for i := range players {
		if players[i].Team != nil && *players[i].Team == *team {
			players[i].Winner = true
		}
	}
}

type teamTally struct {
	team   model.TeamLabel
	stocks int
	damage float64
}

// doublesTiebreak picks the living team with the most stocks, then the least
// damage. Only two living teams can be compared.
func doublesTiebreak(players []model.PlayerState, living []int) (model.TeamLabel, error) {
	var tallies []teamTally
	for _, i := range living {
		p := players[i]
		if p.Team == nil {
			return "", fmt.Errorf("%w: port %d has no team in a teams game", ErrInvalidState, p.Slot)
		}
		idx := slices.IndexFunc(tallies, func(t teamTally) bool { return t.team == *p.Team })
		if idx < 0 {
			tallies = append(tallies, teamTally{team: *p.Team})
			idx = len(tallies) - 1
		}
		tallies[idx].stocks += int(p.Stocks)
		tallies[idx].damage += float64(p.Damage)
	}
	if len(tallies) > 2 {
		return "", fmt.Errorf("%w: %d teams alive", ErrInvalidState, len(tallies))
	}

	best := tallies[0]
	for _, t := range tallies[1:] {
		if t.stocks > best.stocks || (t.stocks == best.stocks && t.damage < best.damage) {
			best = t
		}
	}
	return best.team, nil
}

// singlesTiebreak returns the index of the player with the most stocks, then
// the least damage. Earlier players win full ties.
func singlesTiebreak(players []model.PlayerState, living []int) int {
	best := living[0]
	for _, i := range living[1:] {
		p, b := players[i], players[best]
		if p.Stocks > b.Stocks || (p.Stocks == b.Stocks && p.Damage < b.Damage) {
			best = i
		}
	}
	return best
}
