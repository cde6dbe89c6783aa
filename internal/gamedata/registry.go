package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

// EnemyLevelAllowance is how far above the player's level a spawned enemy may be.
const EnemyLevelAllowance = 2

var (
	// ErrNoStarterEnemy is returned when no enemy can be spawned for a level-1 player.
	ErrNoStarterEnemy = errors.New("no level-1 eligible enemy")
	// ErrInvalidStatus is returned for a status that would never tick.
	ErrInvalidStatus = errors.New("status must last at least one turn")
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
// At least one definition must be spawnable against a level-1 player.
func NewEnemyRegistry(enemies []EnemyDef) (*EnemyRegistry, error) {
	r := &EnemyRegistry{enemies: enemies}
	if len(r.Eligible(1)) == 0 {
		return nil, ErrNoStarterEnemy
	}
	return r, nil
}

// Eligible returns the definitions that may face a player of the given level.
func (r *EnemyRegistry) Eligible(playerLevel int) []*EnemyDef {
	var out []*EnemyDef
	for i := range r.enemies {
		if r.enemies[i].Level <= playerLevel+EnemyLevelAllowance {
			out = append(out, &r.enemies[i])
		}
	}
	return out
}

// CreateRandom picks an enemy definition uniformly among those eligible for
// the player's level. The registry guarantees the set is never empty for
// levels >= 1.
func (r *EnemyRegistry) CreateRandom(playerLevel int, rng *rand.Rand) *EnemyDef {
	candidates := r.Eligible(playerLevel)
	if len(candidates) == 0 {
		// Only reachable for levels below 1.
		candidates = r.Eligible(1)
	}
	return candidates[rng.Intn(len(candidates))]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns a copy of all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return slices.Clone(r.enemies)
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// StatusRegistry
// =============================================================================

// StatusRegistry holds status templates keyed by name.
type StatusRegistry struct {
	statuses map[string]*StatusDef
	all      []StatusDef
}

// NewStatusRegistry creates a registry from loaded status definitions.
func NewStatusRegistry(statuses []StatusDef) (*StatusRegistry, error) {
	registry := &StatusRegistry{
		statuses: make(map[string]*StatusDef, len(statuses)),
		all:      statuses,
	}
	for i := range statuses {
		if statuses[i].Turns < 1 {
			return nil, fmt.Errorf("status %q: %w", statuses[i].Name, ErrInvalidStatus)
		}
		registry.statuses[statuses[i].Name] = &statuses[i]
	}
	return registry, nil
}

// GetByName returns the status with the given name, or nil if not found.
func (r *StatusRegistry) GetByName(name string) *StatusDef {
	return r.statuses[name]
}

// All returns a copy of all status definitions.
func (r *StatusRegistry) All() []StatusDef {
	return slices.Clone(r.all)
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry holds the player's starting profiles.
type ClassRegistry struct {
	classes []ClassDef
}

// NewClassRegistry creates a registry from loaded class definitions.
func NewClassRegistry(classes []ClassDef) *ClassRegistry {
	return &ClassRegistry{classes: classes}
}

// GetByID returns the class with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	for i := range r.classes {
		if r.classes[i].ID == id {
			return &r.classes[i]
		}
	}
	return nil
}

// All returns a copy of all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return slices.Clone(r.classes)
}
