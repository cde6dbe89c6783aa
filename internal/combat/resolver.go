// Package combat provides stats, status effects and action resolution for
// the two-actor turn engine.
package combat

import (
	"fmt"
	"math/rand"

	"github.com/stattek/starstruck/internal/gamedata"
)

// MoveType is the kind of action an actor takes on its turn.
type MoveType int

const (
	MoveAttack MoveType = iota
	MoveMagic
	MoveDefend

	// NumMoveTypes must stay last.
	NumMoveTypes
)

// String returns a human-readable move type.
func (m MoveType) String() string {
	switch m {
	case MoveAttack:
		return "attack"
	case MoveMagic:
		return "magic"
	case MoveDefend:
		return "defend"
	default:
		return "unknown"
	}
}

// Combatant is the capability set shared by the player and enemies.
type Combatant interface {
	// Identity
	GetName() string
	GetLevel() int
	IsDead() bool

	// Stats
	GetHP() int
	GetMaxHP() int
	GetMP() int
	GetMaxMP() int
	GetSpeed() int
	GetMagic() int
	GetStats() *Stats

	// Mutations
	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed
	UseMana(amount int)        // Floors at zero
	StartDefending()
	StopDefending()

	// Status effects
	GetStatusEffects() []StatusEffect
	ApplyStatus(effect StatusEffect)
	TickStatuses(rng *rand.Rand) []StatusTick

	// Turn flag
	HasGone() bool
	MarkGone()
	AllowMove()
}

// ActionResult contains the outcome of one action.
type ActionResult struct {
	Success     bool
	Move        MoveType
	MoveName    string // Magic move name, empty otherwise
	Damage      int    // Damage actually dealt after defense
	StatusAdded string // Status applied to the target, if any
	Message     string // Human-readable description
}

// Resolver performs attack, magic and defend actions. Every action either
// completes and marks the user as gone, or is rejected before any mutation.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// CanCast reports whether user may cast move right now.
func (r *Resolver) CanCast(user Combatant, move *gamedata.MoveDef) bool {
	return move != nil && !user.HasGone() && move.ManaCost <= user.GetMP()
}

// Attack rolls physical damage from user's stats and applies it to target.
func (r *Resolver) Attack(user, target Combatant) ActionResult {
	if user.HasGone() {
		return alreadyGone(user, MoveAttack)
	}

	damage := target.TakeDamage(user.GetStats().RandomAttackDamage(r.rng))
	user.MarkGone()

	return ActionResult{
		Success: true,
		Move:    MoveAttack,
		Damage:  damage,
		Message: fmt.Sprintf("%s attacks %s for %d damage!", user.GetName(), target.GetName(), damage),
	}
}

// Magic spends mana, deals the move's damage to target and may apply its status.
func (r *Resolver) Magic(user, target Combatant, move *gamedata.MoveDef) ActionResult {
	if move == nil {
		return ActionResult{Move: MoveMagic, Message: "Invalid move"}
	}
	if user.HasGone() {
		return alreadyGone(user, MoveMagic)
	}
	if move.ManaCost > user.GetMP() {
		return ActionResult{
			Move:     MoveMagic,
			MoveName: move.Name,
			Message:  fmt.Sprintf("%s doesn't have enough mana for %s!", user.GetName(), move.Name),
		}
	}

	user.UseMana(move.ManaCost)
	damage := target.TakeDamage(move.GenerateAmount(user.GetMagic(), r.rng))

	result := ActionResult{
		Success:  true,
		Move:     MoveMagic,
		MoveName: move.Name,
		Damage:   damage,
		Message: fmt.Sprintf("%s casts %s on %s for %d damage!",
			user.GetName(), move.Name, target.GetName(), damage),
	}

	// Healing statuses land on the caster, harmful ones on the target.
	if move.RollStatusChance(r.rng) {
		effect := NewStatusEffect(move.StatusTemplate, user.GetMagic())
		result.StatusAdded = effect.Name
		if effect.IsHealing {
			user.ApplyStatus(effect)
			result.Message += fmt.Sprintf(" %s is blessed with %s!", user.GetName(), effect.Name)
		} else {
			target.ApplyStatus(effect)
			result.Message += fmt.Sprintf(" %s is afflicted with %s!", target.GetName(), effect.Name)
		}
	}

	user.MarkGone()
	return result
}

// Defend raises user's defense until the end of the turn.
func (r *Resolver) Defend(user Combatant) ActionResult {
	if user.HasGone() {
		return alreadyGone(user, MoveDefend)
	}

	user.StartDefending()
	user.MarkGone()

	return ActionResult{
		Success: true,
		Move:    MoveDefend,
		Message: user.GetName() + " braces for impact!",
	}
}

func alreadyGone(user Combatant, move MoveType) ActionResult {
	return ActionResult{
		Move:    move,
		Message: user.GetName() + " has already gone this turn!",
	}
}
