// Package game provides the encounter state machine that drives combat,
// progression and enemy replacement.
package game

// State represents the current encounter state.
type State int

const (
	// StateMain is the default state where either actor may still act.
	StateMain State = iota
	// StateLevelingUp waits for the player to pick a growth stat.
	StateLevelingUp
	// StateDead is terminal; the player has fallen.
	StateDead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateLevelingUp:
		return "leveling_up"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Intent is one discrete request from the driver.
type Intent int

const (
	// IntentNone lets the encounter advance without a player action.
	IntentNone Intent = iota
	IntentAttack
	IntentMagic
	IntentDefend
	IntentLevelUp
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentAttack:
		return "attack"
	case IntentMagic:
		return "magic"
	case IntentDefend:
		return "defend"
	case IntentLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}
