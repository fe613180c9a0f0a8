package bot

import "testing"

func TestParseMenuCallbackKnownStates(t *testing.T) {
	for data, want := range menuCallbacks {
		state, playerID, isPlayer := ParseMenuCallback(data)
		if state != want {
			t.Errorf("ParseMenuCallback(%q) = %v, want %v", data, state, want)
		}
		if playerID != "" || isPlayer {
			t.Errorf("ParseMenuCallback(%q) unexpectedly returned player info", data)
		}
	}
}

func TestParseMenuCallbackPlayer(t *testing.T) {
	state, playerID, isPlayer := ParseMenuCallback("player_fallen")
	if state != MenuPlayerNews || playerID != "fallen" || !isPlayer {
		t.Errorf("Expected player-news state for fallen, got (%v, %q, %v)", state, playerID, isPlayer)
	}
}

func TestParseMenuCallbackUnknown(t *testing.T) {
	for _, data := range []string{"menu_unknown", "", "player_", "garbage"} {
		state, _, isPlayer := ParseMenuCallback(data)
		if state != MenuUnderConstruction || isPlayer {
			t.Errorf("ParseMenuCallback(%q) = (%v, isPlayer=%v), want under-construction fallback", data, state, isPlayer)
		}
	}
}

func TestCallbackDataRoundTrip(t *testing.T) {
	states := []MenuState{
		MenuHome, MenuLineup, MenuNews, MenuTeamNews, MenuPlayerNews,
		MenuCommunity, MenuAchievements, MenuNextMatches, MenuStore,
		MenuSettings, MenuHelp,
	}
	for _, state := range states {
		got, _, _ := ParseMenuCallback(state.CallbackData())
		if got != state {
			t.Errorf("Round trip for state %v produced %v", state, got)
		}
	}
}

func TestCallbackDataUnknownState(t *testing.T) {
	if got := MenuUnderConstruction.CallbackData(); got != "menu_home" {
		t.Errorf("Expected fallback callback data menu_home, got %q", got)
	}
}
