package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/stattek/starstruck/internal/combat"
	"github.com/stattek/starstruck/internal/gamedata"
)

// XPPerLevel scales the experience needed to leave a level: level * XPPerLevel.
const XPPerLevel = 10

// DefaultPlayerName is used when no name is given.
const DefaultPlayerName = "Hero"

// Growth is the stat a player chooses to raise on level-up.
type Growth int

const (
	GrowthPhysical Growth = iota
	GrowthMagic
	GrowthHealth
)

// String returns the growth name.
func (g Growth) String() string {
	switch g {
	case GrowthPhysical:
		return "Physical"
	case GrowthMagic:
		return "Magic"
	case GrowthHealth:
		return "Health"
	default:
		return "Unknown"
	}
}

// Player is the actor driven by external input.
type Player struct {
	actor
	Symbol rune

	xp              int
	xpToLevel       int
	pendingLevelUps int
}

// NewPlayer creates a player at the given level with full health and mana.
func NewPlayer(name string, level int, stats combat.Stats) *Player {
	p := &Player{
		actor:  newActor(normalizeName(name), level, stats),
		Symbol: '@',
	}
	p.xpToLevel = p.level * XPPerLevel
	return p
}

// NewPlayerFromClass creates a level-1 player from a class definition.
func NewPlayerFromClass(name string, def *gamedata.ClassDef) *Player {
	p := NewPlayer(name, 1, combat.NewStats(def.Stats))
	p.Symbol = def.SymbolRune()
	return p
}

// XP returns experience gathered towards the next level.
func (p *Player) XP() int { return p.xp }

// XPToLevel returns the experience needed to leave the current level.
func (p *Player) XPToLevel() int { return p.xpToLevel }

// PendingLevelUps returns how many growth choices are waiting. More than
// one means a single XP grant crossed several thresholds.
func (p *Player) PendingLevelUps() int { return p.pendingLevelUps }

// GainXP adds experience and crosses as many thresholds as it covers,
// carrying the remainder. It reports whether at least one level was gained;
// the stat growth itself waits for LevelUp.
func (p *Player) GainXP(amount int) bool {
	if amount <= 0 {
		return false
	}

	p.xp += amount
	leveled := false
	for p.xp >= p.xpToLevel {
		p.xp -= p.xpToLevel
		p.level++
		p.xpToLevel = p.level * XPPerLevel
		p.pendingLevelUps++
		leveled = true
	}
	return leveled
}

// LevelUp applies one pending growth choice, then restores health and mana
// to the recomputed maxima. It returns false when nothing is pending or the
// choice is unknown.
func (p *Player) LevelUp(choice Growth) bool {
	if p.pendingLevelUps == 0 {
		return false
	}

	switch choice {
	case GrowthPhysical:
		p.stats.IncreasePhysical()
	case GrowthMagic:
		p.stats.IncreaseMagic()
	case GrowthHealth:
		p.stats.IncreaseHealth()
	default:
		return false
	}

	p.pendingLevelUps--
	p.restore()
	return true
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	return cases.Title(language.English).String(name)
}

// Ensure Player implements combat.Combatant
var _ combat.Combatant = (*Player)(nil)
