package combat

import (
	"math/rand"

	"github.com/stattek/starstruck/internal/gamedata"
)

// StatusEffect is an active damage or heal over time. It is held by value
// so later changes to the caster or catalog cannot reach it.
type StatusEffect struct {
	Name                     string
	BaseAmount               int
	IsHealing                bool
	MagicStrengthWhenApplied int
	RemainingTurns           int
}

// NewStatusEffect snapshots a template together with the caster's current magic strength.
func NewStatusEffect(def *gamedata.StatusDef, casterMagic int) StatusEffect {
	return StatusEffect{
		Name:                     def.Name,
		BaseAmount:               def.BaseAmount,
		IsHealing:                def.IsHealing,
		MagicStrengthWhenApplied: casterMagic,
		RemainingTurns:           def.Turns,
	}
}

// CalculateAmount rolls one tick: snapshot + base + [0, snapshot + base/2).
func (s *StatusEffect) CalculateAmount(rng *rand.Rand) int {
	m := s.MagicStrengthWhenApplied
	return m + s.BaseAmount + gamedata.Roll(rng, m+s.BaseAmount/2)
}

// Tick consumes one turn and reports whether the effect has expired.
func (s *StatusEffect) Tick() bool {
	s.RemainingTurns--
	return s.RemainingTurns <= 0
}

// StatusTick records what happened when a status effect was processed.
type StatusTick struct {
	Name      string
	IsHealing bool
	Amount    int  // Damage taken or healing received
	Ended     bool // True if the effect expired on this tick
}
