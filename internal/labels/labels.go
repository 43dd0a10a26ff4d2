// Package labels maps the integer ids found in replays to display names.
// Unknown ids and sentinel values map to nil.
package labels

import "github.com/pable/slp-results/internal/model"

var teams = [...]model.TeamLabel{
	0: "RED",
	1: "BLUE",
	2: "GREEN",
}

// Character names indexed by external character id.
var characters = [...]model.CharacterLabel{
	0:  "CAPTAIN_FALCON",
	1:  "DONKEY_KONG",
	2:  "FOX",
	3:  "GAME_AND_WATCH",
	4:  "KIRBY",
	5:  "BOWSER",
	6:  "LINK",
	7:  "LUIGI",
	8:  "MARIO",
	9:  "MARTH",
	10: "MEWTWO",
	11: "NESS",
	12: "PEACH",
	13: "PIKACHU",
	14: "ICE_CLIMBERS",
	15: "JIGGLYPUFF",
	16: "SAMUS",
	17: "YOSHI",
	18: "ZELDA",
	19: "SHEIK",
	20: "FALCO",
	21: "YOUNG_LINK",
	22: "DR_MARIO",
	23: "ROY",
	24: "PICHU",
	25: "GANONDORF",
}

// Stage names keyed by stage id. Ids 0, 1 and 21 are not playable stages.
var stages = map[uint16]model.StageName{
	2:  "FOUNTAIN_OF_DREAMS",
	3:  "POKEMON_STADIUM",
	4:  "PRINCESS_PEACHS_CASTLE",
	5:  "KONGO_JUNGLE",
	6:  "BRINSTAR",
	7:  "CORNERIA",
	8:  "YOSHIS_STORY",
	9:  "ONETT",
	10: "MUTE_CITY",
	11: "RAINBOW_CRUISE",
	12: "JUNGLE_JAPES",
	13: "GREAT_BAY",
	14: "HYRULE_TEMPLE",
	15: "BRINSTAR_DEPTHS",
	16: "YOSHIS_ISLAND",
	17: "GREEN_GREENS",
	18: "FOURSIDE",
	19: "MUSHROOM_KINGDOM_I",
	20: "MUSHROOM_KINGDOM_II",
	22: "VENOM",
	23: "POKE_FLOATS",
	24: "BIG_BLUE",
	25: "ICICLE_MOUNTAIN",
	26: "ICETOP",
	27: "FLAT_ZONE",
	28: "DREAM_LAND_N64",
	29: "YOSHIS_ISLAND_N64",
	30: "KONGO_JUNGLE_N64",
	31: "BATTLEFIELD",
	32: "FINAL_DESTINATION",
}

// Team returns the label for a team color, or nil.
func Team(color uint8) *model.TeamLabel {
	if int(color) >= len(teams) {
		return nil
	}
	l := teams[color]
	return &l
}

// Character returns the label for an external character id, or nil.
func Character(id uint8) *model.CharacterLabel {
	if int(id) >= len(characters) {
		return nil
	}
	l := characters[id]
	return &l
}

// Stage returns the name for a stage id, or nil.
func Stage(id uint16) *model.StageName {
	name, ok := stages[id]
	if !ok {
		return nil
	}
	return &name
}
