package bot

import (
	"strings"
	"testing"
	"time"

	"fanhub/models"
)

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		xp, xpToNext int
		wantFilled   int
	}{
		{0, 100, 0},
		{50, 100, 10},
		{100, 100, 20},
		{150, 100, 20},
		{-5, 100, 0},
		{3, 0, 20},
	}

	for _, tt := range tests {
		bar := renderProgressBar(tt.xp, tt.xpToNext)
		filled := strings.Count(bar, "▓")
		if filled != tt.wantFilled {
			t.Errorf("renderProgressBar(%d, %d) filled %d segments, want %d",
				tt.xp, tt.xpToNext, filled, tt.wantFilled)
		}
		if total := strings.Count(bar, "▓") + strings.Count(bar, "░"); total != progressBarLength {
			t.Errorf("renderProgressBar(%d, %d) has %d segments, want %d",
				tt.xp, tt.xpToNext, total, progressBarLength)
		}
	}
}

func TestFormatProfile(t *testing.T) {
	user := &models.User{
		Username:      "fania",
		Level:         3,
		XP:            50,
		XPToNextLevel: 225,
		MemberSince:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	text := formatProfile(user)

	for _, want := range []string{"fania", "Level: 3", "XP: 50 / 225", "2026-01-15", "Social platforms: None"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected profile to contain %q, got:\n%s", want, text)
		}
	}
}

func TestFormatPostsEmpty(t *testing.T) {
	text := formatPosts("📰 Team news", nil)
	if !strings.Contains(text, "Nothing here yet") {
		t.Errorf("Expected empty-state message, got %q", text)
	}
}

func TestFormatPosts(t *testing.T) {
	posts := []models.Post{
		{Text: "We won!", URL: "https://twitter.com/team/status/1"},
		{Text: "Training camp"},
	}

	text := formatPosts("📰 Team news", posts)
	if !strings.Contains(text, "We won!") || !strings.Contains(text, "Training camp") {
		t.Errorf("Expected both posts rendered, got:\n%s", text)
	}
	if !strings.Contains(text, "https://twitter.com/team/status/1") {
		t.Errorf("Expected post url rendered, got:\n%s", text)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 250)
	got := truncate(long, 200)
	if len([]rune(got)) != 201 {
		t.Errorf("Expected 200 runes plus ellipsis, got %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Expected ellipsis suffix")
	}
	if truncate("short", 200) != "short" {
		t.Errorf("Expected short text unchanged")
	}
}
