package bot

import "strings"

// MenuState enumerates the interactive menu screens. Callback data maps to
// exactly one state; anything unrecognized lands on MenuUnderConstruction so
// the fallback screen is an explicit case rather than an accident.
type MenuState int

const (
	MenuHome MenuState = iota
	MenuLineup
	MenuNews
	MenuTeamNews
	MenuPlayerNews
	MenuCommunity
	MenuAchievements
	MenuNextMatches
	MenuStore
	MenuSettings
	MenuHelp
	MenuUnderConstruction
)

// Callback data prefixes shared between rendering and parsing.
const (
	playerCallbackPrefix = "player_"
	surveyCallbackPrefix = "survey_"
)

var menuCallbacks = map[string]MenuState{
	"menu_home":         MenuHome,
	"menu_lineup":       MenuLineup,
	"menu_news":         MenuNews,
	"menu_team_news":    MenuTeamNews,
	"menu_player_news":  MenuPlayerNews,
	"menu_community":    MenuCommunity,
	"menu_achievements": MenuAchievements,
	"menu_next_matches": MenuNextMatches,
	"menu_store":        MenuStore,
	"menu_settings":     MenuSettings,
	"menu_help":         MenuHelp,
}

var menuData = map[MenuState]string{}

func init() {
	for data, state := range menuCallbacks {
		menuData[state] = data
	}
}

// CallbackData returns the wire tag for a menu state.
func (m MenuState) CallbackData() string {
	if data, ok := menuData[m]; ok {
		return data
	}
	return "menu_home"
}

// ParseMenuCallback maps callback data to its menu state. The second result
// carries the player id for player-news callbacks, and the third reports
// whether the data named a player.
func ParseMenuCallback(data string) (MenuState, string, bool) {
	if playerID, ok := strings.CutPrefix(data, playerCallbackPrefix); ok && playerID != "" {
		return MenuPlayerNews, playerID, true
	}
	if state, ok := menuCallbacks[data]; ok {
		return state, "", false
	}
	return MenuUnderConstruction, "", false
}
