// Package entity provides the player and enemy actors.
package entity

import (
	"math/rand"

	"github.com/stattek/starstruck/internal/combat"
)

// actor holds the state and behavior shared by Player and Enemy.
type actor struct {
	name     string
	level    int
	hp, mp   int
	stats    combat.Stats
	gone     bool
	statuses []combat.StatusEffect
}

func newActor(name string, level int, stats combat.Stats) actor {
	if level < 1 {
		level = 1
	}
	return actor{
		name:  name,
		level: level,
		hp:    stats.MaxHealth(),
		mp:    stats.MaxMana(),
		stats: stats,
	}
}

// GetName returns the actor's name.
func (a *actor) GetName() string { return a.name }

// GetLevel returns the actor's level.
func (a *actor) GetLevel() int { return a.level }

// IsDead returns true once health has reached zero.
func (a *actor) IsDead() bool { return a.hp == 0 }

// GetHP returns current health.
func (a *actor) GetHP() int { return a.hp }

// GetMaxHP returns maximum health.
func (a *actor) GetMaxHP() int { return a.stats.MaxHealth() }

// GetMP returns current mana.
func (a *actor) GetMP() int { return a.mp }

// GetMaxMP returns maximum mana.
func (a *actor) GetMaxMP() int { return a.stats.MaxMana() }

// GetSpeed returns the speed stat.
func (a *actor) GetSpeed() int { return a.stats.Speed }

// GetMagic returns magic strength.
func (a *actor) GetMagic() int { return a.stats.MagicStrength }

// GetStats returns the actor's stats for in-place use.
func (a *actor) GetStats() *combat.Stats { return &a.stats }

// TakeDamage reduces amount by defense, deducts it from health without
// going below zero and returns what was actually deducted.
func (a *actor) TakeDamage(amount int) int {
	actual := a.stats.DamageTaken(amount)
	if actual < 0 {
		actual = 0
	}
	if actual > a.hp {
		actual = a.hp
	}
	a.hp -= actual
	return actual
}

// Heal restores health up to the maximum and returns the amount restored.
func (a *actor) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if room := a.GetMaxHP() - a.hp; actual > room {
		actual = max(room, 0)
	}
	a.hp += actual
	return actual
}

// UseMana deducts amount, flooring at zero. Callers gate on cost first.
func (a *actor) UseMana(amount int) {
	if amount > a.mp {
		a.mp = 0
		return
	}
	a.mp -= amount
}

// StartDefending activates the defend bonus.
func (a *actor) StartDefending() { a.stats.StartDefending() }

// StopDefending removes the defend bonus.
func (a *actor) StopDefending() { a.stats.StopDefending() }

// HasGone reports whether the actor already acted this turn.
func (a *actor) HasGone() bool { return a.gone }

// MarkGone records that the actor acted this turn.
func (a *actor) MarkGone() { a.gone = true }

// AllowMove clears the turn flag at end of turn.
func (a *actor) AllowMove() { a.gone = false }

// GetStatusEffects returns active status effects in application order.
func (a *actor) GetStatusEffects() []combat.StatusEffect {
	return a.statuses
}

// ApplyStatus appends a copy of effect. Effects with the same name stack
// and tick independently.
func (a *actor) ApplyStatus(effect combat.StatusEffect) {
	a.statuses = append(a.statuses, effect)
}

// TickStatuses applies every active effect once, in order, then drops the
// ones that expired while keeping the survivors' relative order.
func (a *actor) TickStatuses(rng *rand.Rand) []combat.StatusTick {
	if len(a.statuses) == 0 {
		return nil
	}

	ticks := make([]combat.StatusTick, 0, len(a.statuses))
	kept := a.statuses[:0]
	for _, effect := range a.statuses {
		tick := combat.StatusTick{Name: effect.Name, IsHealing: effect.IsHealing}

		amount := effect.CalculateAmount(rng)
		if effect.IsHealing {
			tick.Amount = a.Heal(amount)
		} else {
			tick.Amount = a.TakeDamage(amount)
		}

		tick.Ended = effect.Tick()
		if !tick.Ended {
			kept = append(kept, effect)
		}
		ticks = append(ticks, tick)
	}
	a.statuses = kept
	return ticks
}

// restore refills health and mana to their current maxima.
func (a *actor) restore() {
	a.hp = a.GetMaxHP()
	a.mp = a.GetMaxMP()
}
