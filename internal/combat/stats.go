package combat

import (
	"math/rand"

	"github.com/stattek/starstruck/internal/gamedata"
)

// DefendBonus is the defense added while an actor is defending.
const DefendBonus = 20

// Stats is the numeric profile of a single actor.
type Stats struct {
	HealthBase    int
	ManaBase      int
	Speed         int
	Strength      int
	MagicStrength int
	Defense       int // Current defense, including DefendBonus while defending

	defending bool
}

// NewStats builds a profile from a data definition.
func NewStats(def gamedata.StatsDef) Stats {
	return Stats{
		HealthBase:    def.Health,
		ManaBase:      def.Mana,
		Speed:         def.Speed,
		Strength:      def.Strength,
		MagicStrength: def.Magic,
		Defense:       def.Defense,
	}
}

// MaxHealth returns HealthBase * 5.5, truncated.
func (s *Stats) MaxHealth() int {
	return s.HealthBase * 11 / 2
}

// MaxMana returns ManaBase * 2.5, truncated.
func (s *Stats) MaxMana() int {
	return s.ManaBase * 5 / 2
}

// RandomAttackDamage rolls Strength + [0, Strength/2).
// A strength below 2 has no random span and always deals exactly Strength.
func (s *Stats) RandomAttackDamage(rng *rand.Rand) int {
	return s.Strength + gamedata.Roll(rng, s.Strength/2)
}

// DamageTaken scales amount by (1 - Defense/100), truncating toward zero.
// The result is not clamped: defense of 100 or more yields zero or less.
func (s *Stats) DamageTaken(amount int) int {
	return amount * (100 - s.Defense) / 100
}

// IsDefending reports whether the defend bonus is active.
func (s *Stats) IsDefending() bool {
	return s.defending
}

// StartDefending adds DefendBonus once; repeated calls are no-ops.
func (s *Stats) StartDefending() {
	if s.defending {
		return
	}
	s.defending = true
	s.Defense += DefendBonus
}

// StopDefending removes DefendBonus once; repeated calls are no-ops.
func (s *Stats) StopDefending() {
	if !s.defending {
		return
	}
	s.defending = false
	s.Defense -= DefendBonus
}

// IncreasePhysical grows Strength by one.
func (s *Stats) IncreasePhysical() { s.Strength++ }

// IncreaseMagic grows MagicStrength by one.
func (s *Stats) IncreaseMagic() { s.MagicStrength++ }

// IncreaseHealth grows HealthBase by one.
func (s *Stats) IncreaseHealth() { s.HealthBase++ }
