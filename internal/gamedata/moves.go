package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"slices"
)

// =============================================================================
// MOVE CATALOG
// =============================================================================
//
// Moves are the magic abilities shared by the player and enemies. The
// catalog is loaded once from moves.json and never mutated afterwards.
//
// Ordering:
// ---------
// Entries must be sorted ascending by levelRequirement. The moves available
// to an actor of level L are the longest prefix whose requirement is <= L.
// The scan stops at the first ineligible entry, so an unsorted catalog
// would hide moves; NewMoveCatalog rejects one.
//
// Amount:
// -------
//   amount = magic + baseAmount + roll[0, magic + baseAmount/2)
//
// Status:
// -------
// A move may name a status from statuses.json. After a successful cast the
// status lands on the target with StatusChancePercent probability.
//
// JSON Schema:
// ------------
// {
//   "id": "fire_one",
//   "name": "FireOne",
//   "element": "fire",
//   "baseAmount": 12,
//   "manaCost": 2,
//   "levelRequirement": 1,
//   "status": "Burn"
// }

// StatusChancePercent is the chance that a move carrying a status applies it.
const StatusChancePercent = 20

var (
	// ErrUnsortedMoves is returned when the catalog is not sorted by level requirement.
	ErrUnsortedMoves = errors.New("moves are not sorted by level requirement")
	// ErrUnknownStatus is returned when a move references a status that does not exist.
	ErrUnknownStatus = errors.New("unknown status")
)

// MoveDef defines a magic move loaded from JSON.
type MoveDef struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Element          string `json:"element"`
	BaseAmount       int    `json:"baseAmount"`
	ManaCost         int    `json:"manaCost"`
	LevelRequirement int    `json:"levelRequirement"`
	Status           string `json:"status,omitempty"`

	// StatusTemplate is resolved from Status when the catalog is built.
	StatusTemplate *StatusDef `json:"-"`
}

// IsEligible reports whether an actor of the given level may use the move.
func (m *MoveDef) IsEligible(level int) bool {
	return m.LevelRequirement <= level
}

// GenerateAmount rolls the damage of the move for a caster with the given magic strength.
func (m *MoveDef) GenerateAmount(magicStrength int, rng *rand.Rand) int {
	return magicStrength + m.BaseAmount + Roll(rng, magicStrength+m.BaseAmount/2)
}

// RollStatusChance reports whether the move's status should be applied.
// Moves without a status template never apply one and consume no roll.
func (m *MoveDef) RollStatusChance(rng *rand.Rand) bool {
	if m.StatusTemplate == nil {
		return false
	}
	return RollPercent(rng) <= StatusChancePercent
}

// MovesFile represents the structure of moves.json.
type MovesFile struct {
	Moves []MoveDef `json:"moves"`
}

// LoadMoves loads move definitions from the embedded moves.json file.
func LoadMoves() ([]MoveDef, error) {
	return LoadMovesFS(dataFS)
}

// LoadMovesFS reads moves.json from fsys.
func LoadMovesFS(fsys fs.FS) ([]MoveDef, error) {
	file, err := LoadFS[MovesFile](fsys, "moves.json")
	if err != nil {
		return nil, err
	}
	return file.Moves, nil
}

// MoveCatalog is the ordered, read-only list of moves.
type MoveCatalog struct {
	moves []MoveDef
}

// NewMoveCatalog validates ordering, resolves status templates and builds a catalog.
func NewMoveCatalog(moves []MoveDef, statuses *StatusRegistry) (*MoveCatalog, error) {
	for i := range moves {
		if i > 0 && moves[i].LevelRequirement < moves[i-1].LevelRequirement {
			return nil, fmt.Errorf("move %q (level %d) after %q (level %d): %w",
				moves[i].Name, moves[i].LevelRequirement,
				moves[i-1].Name, moves[i-1].LevelRequirement, ErrUnsortedMoves)
		}
		if moves[i].Status == "" {
			continue
		}
		status := statuses.GetByName(moves[i].Status)
		if status == nil {
			return nil, fmt.Errorf("move %q references %q: %w", moves[i].Name, moves[i].Status, ErrUnknownStatus)
		}
		moves[i].StatusTemplate = status
	}
	return &MoveCatalog{moves: moves}, nil
}

// AvailablePrefix returns how many leading moves an actor of the given level can use.
func (c *MoveCatalog) AvailablePrefix(level int) int {
	n := 0
	for i := range c.moves {
		if !c.moves[i].IsEligible(level) {
			break
		}
		n++
	}
	return n
}

// Available returns a copy of the moves usable at the given level.
func (c *MoveCatalog) Available(level int) []MoveDef {
	return slices.Clone(c.moves[:c.AvailablePrefix(level)])
}

// Get returns the move at index i, or nil if out of range. The pointer is
// shared with the catalog and must not be modified.
func (c *MoveCatalog) Get(i int) *MoveDef {
	if i < 0 || i >= len(c.moves) {
		return nil
	}
	return &c.moves[i]
}

// All returns a copy of every move in catalog order.
func (c *MoveCatalog) All() []MoveDef {
	return slices.Clone(c.moves)
}

// Count returns the number of moves in the catalog.
func (c *MoveCatalog) Count() int {
	return len(c.moves)
}
