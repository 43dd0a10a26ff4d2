package model

// TeamLabel is a team color name such as "RED".
type TeamLabel string

// CharacterLabel is a character name such as "FOX".
type CharacterLabel string

// StageName is a stage name such as "BATTLEFIELD".
type StageName string

// PlayerState is a snapshot of one occupied port on the last frame of a game.
type PlayerState struct {
	Code      string // netplay connect code, e.g. "ABCD#123"
	Tag       string // netplay display name
	Slot      int    // port index, 0..3
	Stocks    uint8
	Damage    float32
	Team      *TeamLabel      // nil outside team modes
	Character *CharacterLabel // nil if unrecognised
	Winner    bool
}

// Alive reports whether the player still has stocks left.
func (p PlayerState) Alive() bool {
	return p.Stocks > 0
}

// SameTeam reports whether p and o are teammates. Players without a team are
// never teammates of anyone.
func (p PlayerState) SameTeam(o PlayerState) bool {
	if p.Team == nil || o.Team == nil {
		return false
	}
	return *p.Team == *o.Team
}

// TeamString returns the team label or "" when absent.
func (p PlayerState) TeamString() string {
	if p.Team == nil {
		return ""
	}
	return string(*p.Team)
}

// CharacterString returns the character label or "" when absent.
func (p PlayerState) CharacterString() string {
	if p.Character == nil {
		return ""
	}
	return string(*p.Character)
}

// ---- Outcomes ----

// MatchOutcome is the resolved result of a single replay.
type MatchOutcome struct {
	ReplayHash     string
	SourcePath     string
	Stage          *StageName
	StartedAt      string // RFC3339 as recorded in the replay metadata, may be empty
	DurationFrames int
	IsTeams        bool
	Players        []PlayerState
}

// StageString returns the stage name or "" when unknown.
func (o MatchOutcome) StageString() string {
	if o.Stage == nil {
		return ""
	}
	return string(*o.Stage)
}

// Winners returns the players flagged as winners, in slot order.
func (o MatchOutcome) Winners() []PlayerState {
	var out []PlayerState
	for _, p := range o.Players {
		if p.Winner {
			out = append(out, p)
		}
	}
	return out
}

// ---- Aggregates ----

// PlayerRecord is a cross-replay win/loss record for one netplay code.
type PlayerRecord struct {
	Code   string
	Tag    string // most recent tag seen for the code
	Games  int
	Wins   int
	Losses int
}

// WinPct returns the win percentage (0–100).
func (r PlayerRecord) WinPct() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games) * 100
}

// CharacterUsage is how often a player picked a character and how it went.
type CharacterUsage struct {
	Character string
	Games     int
	Wins      int
}

// StageCount is the number of stored replays played on a stage.
type StageCount struct {
	Stage string
	Games int
}

// Overview summarises the whole database.
type Overview struct {
	TotalReplays  int
	TeamReplays   int
	UniquePlayers int
	Earliest      string
	Latest        string
}
