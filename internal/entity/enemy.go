package entity

import (
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/stattek/starstruck/internal/combat"
	"github.com/stattek/starstruck/internal/gamedata"
)

const (
	// QueueSize is the number of upcoming move types an enemy plans ahead.
	QueueSize = 3

	// xpPerEnemyLevel is the experience an enemy drops per level at parity.
	xpPerEnemyLevel = 5
	// maxXPDoublings caps the level-gap bonus.
	maxXPDoublings = 16
)

// Enemy is the computer-controlled actor.
type Enemy struct {
	actor
	ID     string             // Instance id, unique per spawn
	Def    *gamedata.EnemyDef // Definition this enemy was spawned from (nil for ad-hoc enemies)
	Symbol rune

	queue []combat.MoveType
}

// NewEnemy creates an enemy with full health and mana and a fresh move queue.
func NewEnemy(name string, level int, stats combat.Stats, rng *rand.Rand) *Enemy {
	e := &Enemy{
		actor:  newActor(name, level, stats),
		ID:     newInstanceID(rng),
		Symbol: '?',
	}
	e.refill(rng)
	return e
}

// NewEnemyFromDef creates an enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef, rng *rand.Rand) *Enemy {
	e := NewEnemy(def.Name, def.Level, combat.NewStats(def.Stats), rng)
	e.Def = def
	e.Symbol = def.GlyphRune()
	return e
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorPurple
}

// NextMove pops the next planned move type. The queue is re-rolled as soon
// as it runs dry so UpcomingMoves always has something to show.
func (e *Enemy) NextMove(rng *rand.Rand) combat.MoveType {
	if len(e.queue) == 0 {
		e.refill(rng)
	}
	next := e.queue[0]
	e.queue = e.queue[1:]
	if len(e.queue) == 0 {
		e.refill(rng)
	}
	return next
}

// UpcomingMoves returns a copy of the planned move types, next first.
func (e *Enemy) UpcomingMoves() []combat.MoveType {
	out := make([]combat.MoveType, len(e.queue))
	copy(out, e.queue)
	return out
}

// ChooseMagic picks uniformly among the affordable moves available at the
// enemy's level, or returns nil when there are none.
func (e *Enemy) ChooseMagic(catalog *gamedata.MoveCatalog, rng *rand.Rand) *gamedata.MoveDef {
	n := catalog.AvailablePrefix(e.level)
	affordable := make([]*gamedata.MoveDef, 0, n)
	for i := range n {
		if move := catalog.Get(i); move.ManaCost <= e.mp {
			affordable = append(affordable, move)
		}
	}
	if len(affordable) == 0 {
		return nil
	}
	return affordable[rng.Intn(len(affordable))]
}

// DropXP returns the experience this enemy awards to a player of the given
// level. Enemies above the player double their drop per level of difference.
func (e *Enemy) DropXP(playerLevel int) int {
	xp := xpPerEnemyLevel * e.level
	if diff := e.level - playerLevel; diff > 0 {
		xp <<= min(diff, maxXPDoublings)
	}
	return xp
}

func (e *Enemy) refill(rng *rand.Rand) {
	e.queue = e.queue[:0]
	for range QueueSize {
		e.queue = append(e.queue, combat.MoveType(rng.Intn(int(combat.NumMoveTypes))))
	}
}

// newInstanceID draws a UUID from rng so seeded runs stay reproducible.
func newInstanceID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Ensure Enemy implements combat.Combatant
var _ combat.Combatant = (*Enemy)(nil)
