package services

// Base threshold and growth factor for the level curve. Experience is spent
// at each crossing and the next threshold grows by half, truncated to an
// integer: 100, 150, 225, 337, 505, ...
const (
	baseXPThreshold  = 100
	thresholdGrowNum = 3
	thresholdGrowDen = 2
)

// Progress is the progression slice of a user document.
type Progress struct {
	XP            int
	Level         int
	XPToNextLevel int
}

// AdvanceProgress applies a non-negative XP gain to a progress snapshot and
// returns the new snapshot, whether at least one level was gained, and the
// level before the grant. A gain can cross several thresholds at once.
func AdvanceProgress(p Progress, gained int) (Progress, bool, int) {
	prevLevel := p.Level
	if p.Level < 1 {
		p.Level = 1
		prevLevel = 1
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = baseXPThreshold
	}
	if gained < 0 {
		gained = 0
	}

	p.XP += gained
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = p.XPToNextLevel * thresholdGrowNum / thresholdGrowDen
	}

	return p, p.Level > prevLevel, prevLevel
}

// TotalXPForLevel returns the cumulative experience needed to reach the
// given level from level 1, useful for profile rendering.
func TotalXPForLevel(level int) int {
	total := 0
	threshold := baseXPThreshold
	for l := 1; l < level; l++ {
		total += threshold
		threshold = threshold * thresholdGrowNum / thresholdGrowDen
	}
	return total
}
