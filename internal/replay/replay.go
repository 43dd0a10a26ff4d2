// Package replay loads decoded Slippi replays exported as JSON by an external
// decoder and exposes the handful of typed lookups results extraction needs.
package replay

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"
)

// MaxPorts is the number of controller ports a replay can carry.
const MaxPorts = 4

// PostFrame is the post-frame state of one character on one frame.
type PostFrame struct {
	Stocks uint8   `json:"stocks"`
	Damage float32 `json:"damage"`
}

// Frames is the frame history of one character.
type Frames struct {
	Post []PostFrame `json:"post"`
}

// Port holds the frame data for one occupied port. Ice Climbers' follower
// frames are not needed and are ignored.
type Port struct {
	Leader Frames `json:"leader"`
}

// TeamInfo is the team assignment from the game start block.
type TeamInfo struct {
	Color uint8 `json:"color"`
	Shade uint8 `json:"shade"`
}

// StartPlayer is the per-port record from the game start block.
type StartPlayer struct {
	Character uint8     `json:"character"`
	Team      *TeamInfo `json:"team"`
}

// Start is the game start block.
type Start struct {
	IsTeams bool           `json:"is_teams"`
	Stage   uint16         `json:"stage"`
	Players []*StartPlayer `json:"players"`
}

// Game is a decoded replay.
type Game struct {
	Hash     string          `json:"-"` // sha256 of the source bytes
	Path     string          `json:"-"`
	Start    Start           `json:"start"`
	Ports    []*Port         `json:"ports"`
	Metadata json.RawMessage `json:"metadata"`
}

// NetplayNames is the identity pair recorded for a port by the netplay client.
type NetplayNames struct {
	Code string
	Tag  string
}

// Load reads and decodes the replay export at path.
func Load(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}
	g, err := Decode(data)
	if err != nil {
		return nil, err
	}
	g.Path = path
	return g, nil
}

// Decode parses a replay export from memory.
func Decode(data []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode replay: %w", err)
	}
	g.Hash = fmt.Sprintf("%x", sha256.Sum256(data))
	return &g, nil
}

// LastPost returns the post-frame state on the last recorded frame for port,
// or false if the port is empty or has no frames.
func (g *Game) LastPost(port int) (PostFrame, bool) {
	if port < 0 || port >= len(g.Ports) || g.Ports[port] == nil {
		return PostFrame{}, false
	}
	post := g.Ports[port].Leader.Post
	if len(post) == 0 {
		return PostFrame{}, false
	}
	return post[len(post)-1], true
}

// StartPlayer returns the start block entry for port, or nil.
func (g *Game) StartPlayer(port int) *StartPlayer {
	if port < 0 || port >= len(g.Start.Players) {
		return nil
	}
	return g.Start.Players[port]
}

// NetplayNames looks up metadata players.<port>.names.{code,netplay}. Every
// step must exist with the expected type; otherwise it reports false.
func (g *Game) NetplayNames(port int) (NetplayNames, bool) {
	players := gjson.GetBytes(g.Metadata, "players")
	if !players.IsObject() {
		return NetplayNames{}, false
	}
	entry := players.Get(strconv.Itoa(port))
	if !entry.IsObject() {
		return NetplayNames{}, false
	}
	names := entry.Get("names")
	if !names.IsObject() {
		return NetplayNames{}, false
	}
	code, tag := names.Get("code"), names.Get("netplay")
	if code.Type != gjson.String || tag.Type != gjson.String {
		return NetplayNames{}, false
	}
	return NetplayNames{Code: code.Str, Tag: tag.Str}, true
}

// StartedAt returns metadata startAt, or "" if missing or not a string.
func (g *Game) StartedAt() string {
	r := gjson.GetBytes(g.Metadata, "startAt")
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

// LastFrame returns metadata lastFrame, or 0 if missing or not a number.
func (g *Game) LastFrame() int {
	r := gjson.GetBytes(g.Metadata, "lastFrame")
	if r.Type != gjson.Number {
		return 0
	}
	return int(r.Int())
}
