package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"

	"github.com/stattek/starstruck/internal/game"
)

// Terminal is a canvas that also delivers input events.
type Terminal interface {
	Canvas
	PollEvent() tcell.Event
	Sync()
}

// App drives an encounter from terminal key presses.
type App struct {
	term         Terminal
	renderer     *Renderer
	newEncounter func() *game.Encounter
	encounter    *game.Encounter
	magicMenu    bool
	running      bool
	log          logr.Logger
}

// NewApp creates an app; newEncounter is called now and on every restart.
func NewApp(term Terminal, newEncounter func() *game.Encounter, log logr.Logger) *App {
	return &App{
		term:         term,
		renderer:     NewRenderer(term),
		newEncounter: newEncounter,
		encounter:    newEncounter(),
		running:      true,
		log:          log,
	}
}

// Encounter returns the encounter currently being played.
func (a *App) Encounter() *game.Encounter { return a.encounter }

// Run executes the main loop until the player quits.
func (a *App) Run(ctx context.Context) error {
	for a.running {
		a.renderer.Render(a.encounter, View{MagicMenu: a.magicMenu})

		switch ev := a.term.PollEvent().(type) {
		case *tcell.EventKey:
			a.handleKey(ctx, ev.Key(), ev.Rune())
		case *tcell.EventResize:
			a.term.Sync()
		case nil:
			// Screen finalized.
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// handleKey applies one key press.
func (a *App) handleKey(ctx context.Context, key tcell.Key, r rune) {
	cmd := KeyIntent(a.encounter.State(), a.magicMenu, key, r)

	switch cmd.Kind {
	case CmdQuit:
		a.running = false
	case CmdOpenMagic:
		a.magicMenu = true
	case CmdCloseMagic:
		a.magicMenu = false
	case CmdRestart:
		a.log.Info("restart", "kills", a.encounter.Kills(), "turns", a.encounter.TurnCount())
		a.encounter = a.newEncounter()
		a.magicMenu = false
	case CmdStep:
		ok, _ := a.encounter.Step(ctx, cmd.Input)
		if ok || cmd.Input.Intent != game.IntentMagic {
			a.magicMenu = false
		}
	}
}
