package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/stattek/starstruck/internal/entity"
	"github.com/stattek/starstruck/internal/game"
)

// CommandKind says what the app should do with a key press.
type CommandKind int

const (
	CmdIgnore CommandKind = iota
	CmdStep               // forward Command.Input to the encounter
	CmdOpenMagic
	CmdCloseMagic
	CmdRestart
	CmdQuit
)

// Command is the result of mapping one key press.
type Command struct {
	Kind  CommandKind
	Input game.Input
}

// KeyIntent maps a key press to a command for the given encounter state.
// menuOpen is true while the magic menu is showing.
func KeyIntent(state game.State, menuOpen bool, key tcell.Key, r rune) Command {
	switch key {
	case tcell.KeyCtrlC:
		return Command{Kind: CmdQuit}
	case tcell.KeyEscape:
		if menuOpen {
			return Command{Kind: CmdCloseMagic}
		}
		return Command{Kind: CmdQuit}
	case tcell.KeyEnter:
		if state == game.StateMain && !menuOpen {
			return step(game.IntentNone)
		}
		return Command{}
	case tcell.KeyRune:
	default:
		return Command{}
	}

	if r == 'q' || r == 'Q' {
		return Command{Kind: CmdQuit}
	}

	switch state {
	case game.StateDead:
		if r == 'r' || r == 'R' {
			return Command{Kind: CmdRestart}
		}
	case game.StateLevelingUp:
		switch r {
		case '1':
			return growth(entity.GrowthPhysical)
		case '2':
			return growth(entity.GrowthMagic)
		case '3':
			return growth(entity.GrowthHealth)
		}
	default:
		if menuOpen {
			if r >= '1' && r <= '9' {
				return Command{Kind: CmdStep, Input: game.Input{Intent: game.IntentMagic, MoveIndex: int(r - '1')}}
			}
			if r == 'm' || r == 'M' {
				return Command{Kind: CmdCloseMagic}
			}
			return Command{}
		}
		switch r {
		case 'a', 'A':
			return step(game.IntentAttack)
		case 'm', 'M':
			return Command{Kind: CmdOpenMagic}
		case 'd', 'D':
			return step(game.IntentDefend)
		case ' ', '.':
			return step(game.IntentNone)
		}
	}
	return Command{}
}

func step(intent game.Intent) Command {
	return Command{Kind: CmdStep, Input: game.Input{Intent: intent}}
}

func growth(g entity.Growth) Command {
	return Command{Kind: CmdStep, Input: game.Input{Intent: game.IntentLevelUp, Growth: g}}
}
