package services

import "testing"

func TestAdvanceProgressNoLevelUp(t *testing.T) {
	p, leveledUp, prev := AdvanceProgress(Progress{XP: 0, Level: 1, XPToNextLevel: 100}, 50)

	if leveledUp {
		t.Errorf("Expected no level up for 50 xp, got one")
	}
	if prev != 1 {
		t.Errorf("Expected previous level 1, got %d", prev)
	}
	if p.XP != 50 || p.Level != 1 || p.XPToNextLevel != 100 {
		t.Errorf("Unexpected progress: %+v", p)
	}
}

func TestAdvanceProgressSingleLevelUp(t *testing.T) {
	p, leveledUp, prev := AdvanceProgress(Progress{XP: 80, Level: 1, XPToNextLevel: 100}, 30)

	if !leveledUp {
		t.Fatalf("Expected a level up at the 100 xp threshold")
	}
	if prev != 1 || p.Level != 2 {
		t.Errorf("Expected level 1 -> 2, got %d -> %d", prev, p.Level)
	}
	if p.XP != 10 {
		t.Errorf("Expected 10 xp left over, got %d", p.XP)
	}
	if p.XPToNextLevel != 150 {
		t.Errorf("Expected next threshold 150, got %d", p.XPToNextLevel)
	}
}

func TestAdvanceProgressMultipleLevelUps(t *testing.T) {
	// 100 + 150 = 250 spent crossing two thresholds.
	p, leveledUp, prev := AdvanceProgress(Progress{XP: 0, Level: 1, XPToNextLevel: 100}, 300)

	if !leveledUp || prev != 1 || p.Level != 3 {
		t.Fatalf("Expected level 1 -> 3, got %d -> %d (leveledUp=%v)", prev, p.Level, leveledUp)
	}
	if p.XP != 50 {
		t.Errorf("Expected 50 xp left over, got %d", p.XP)
	}
	if p.XPToNextLevel != 225 {
		t.Errorf("Expected next threshold 225, got %d", p.XPToNextLevel)
	}
}

func TestAdvanceProgressThresholdTruncation(t *testing.T) {
	// The curve grows by half with integer truncation: 225 -> 337.
	p, _, _ := AdvanceProgress(Progress{XP: 224, Level: 3, XPToNextLevel: 225}, 1)
	if p.XPToNextLevel != 337 {
		t.Errorf("Expected threshold 337 after level 3, got %d", p.XPToNextLevel)
	}
}

func TestAdvanceProgressZeroGain(t *testing.T) {
	start := Progress{XP: 42, Level: 2, XPToNextLevel: 150}
	p, leveledUp, prev := AdvanceProgress(start, 0)

	if leveledUp {
		t.Errorf("Expected no level up for zero gain")
	}
	if p != start || prev != 2 {
		t.Errorf("Expected unchanged progress, got %+v (prev %d)", p, prev)
	}
}

func TestAdvanceProgressNormalizesBrokenSnapshot(t *testing.T) {
	// A document written before the progression fields existed.
	p, _, prev := AdvanceProgress(Progress{}, 10)
	if prev != 1 || p.Level != 1 || p.XPToNextLevel != 100 {
		t.Errorf("Expected normalized level-1 snapshot, got %+v (prev %d)", p, prev)
	}
}

func TestAdvanceProgressMonotonic(t *testing.T) {
	// Level never decreases over any sequence of non-negative grants.
	p := Progress{XP: 0, Level: 1, XPToNextLevel: 100}
	grants := []int{0, 10, 99, 1, 500, 3, 0, 10000, 7, 123}

	for _, gained := range grants {
		next, leveledUp, prev := AdvanceProgress(p, gained)
		if next.Level < prev {
			t.Fatalf("Level decreased from %d to %d on grant %d", prev, next.Level, gained)
		}
		if leveledUp != (next.Level > prev) {
			t.Errorf("leveledUp=%v inconsistent with %d -> %d", leveledUp, prev, next.Level)
		}
		if next.XP < 0 {
			t.Fatalf("XP went negative: %+v", next)
		}
		p = next
	}
}

func TestTotalXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 250},
		{4, 475},
	}

	for _, tt := range tests {
		if got := TotalXPForLevel(tt.level); got != tt.want {
			t.Errorf("TotalXPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
