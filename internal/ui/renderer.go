package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/stattek/starstruck/internal/combat"
	"github.com/stattek/starstruck/internal/game"
)

const (
	barWidth   = 20
	panelWidth = 38
)

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	labelStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	warnStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
)

// View carries UI-only state into a render.
type View struct {
	MagicMenu bool
}

// Renderer handles drawing the encounter to the screen.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the whole encounter.
func (r *Renderer) Render(e *game.Encounter, view View) {
	r.canvas.Clear()
	width, height := r.canvas.Size()

	header := fmt.Sprintf("STARSTRUCK  turn %d  defeated %d", e.TurnCount()+1, e.Kills())
	drawText(r.canvas, 0, 0, width, header, titleStyle)

	p := e.Player()
	row := r.drawActor(0, 2, width, p, p.Symbol, tcell.ColorYellow)
	drawText(r.canvas, 0, row, width, fmt.Sprintf("XP  %d/%d", p.XP(), p.XPToLevel()), labelStyle)

	enemy := e.Enemy()
	ex := min(panelWidth+2, max(width-panelWidth, 0))
	erow := r.drawActor(ex, 2, width-ex, enemy, enemy.Symbol, enemy.Color())
	drawText(r.canvas, ex, erow, width-ex, "Next "+formatMoves(enemy.UpcomingMoves()), labelStyle)

	row = max(row, erow) + 2
	row = r.drawMoves(0, row, width, e, view)

	footer := height - 1
	r.drawHistory(0, row+1, width, footer-1, e.History())
	drawText(r.canvas, 0, footer, width, prompt(e, view), warnStyle)

	r.canvas.Show()
}

// drawActor draws a name line, bars and statuses, returning the next free row.
func (r *Renderer) drawActor(x, y, width int, a combat.Combatant, symbol rune, color tcell.Color) int {
	r.canvas.SetContent(x, y, symbol, nil, tcell.StyleDefault.Foreground(color).Bold(true))
	drawText(r.canvas, x+2, y, width-2, fmt.Sprintf("%s  Lv %d", a.GetName(), a.GetLevel()), textStyle)

	y++
	drawText(r.canvas, x, y, 3, "HP", labelStyle)
	drawBar(r.canvas, x+3, y, barWidth, a.GetHP(), a.GetMaxHP(), healthColor(a.GetHP(), a.GetMaxHP()))
	drawText(r.canvas, x+4+barWidth, y, width-4-barWidth, fmt.Sprintf("%d/%d", a.GetHP(), a.GetMaxHP()), textStyle)

	y++
	drawText(r.canvas, x, y, 3, "MP", labelStyle)
	drawBar(r.canvas, x+3, y, barWidth, a.GetMP(), a.GetMaxMP(), manaColor(a.GetMP(), a.GetMaxMP()))
	drawText(r.canvas, x+4+barWidth, y, width-4-barWidth, fmt.Sprintf("%d/%d", a.GetMP(), a.GetMaxMP()), textStyle)

	y++
	if effects := a.GetStatusEffects(); len(effects) > 0 {
		drawText(r.canvas, x, y, width, truncate(formatStatuses(effects), min(width, panelWidth)), warnStyle)
		y++
	}
	return y
}

// drawMoves lists the player's available magic, coloured by element and
// dimmed when unaffordable. Numbers are shown while the menu is open.
func (r *Renderer) drawMoves(x, y, width int, e *game.Encounter, view View) int {
	moves := e.AvailableMoves()
	drawText(r.canvas, x, y, width, "Magic", labelStyle)
	y++
	if len(moves) == 0 {
		drawText(r.canvas, x+2, y, width-2, "(none yet)", dimStyle)
		return y + 1
	}

	mp := e.Player().GetMP()
	for i, move := range moves {
		element := e.Catalogs().Element(move.Element)
		style := tcell.StyleDefault.Foreground(element.TCellColor())
		if move.ManaCost > mp {
			style = dimStyle
		}

		label := fmt.Sprintf("  %s  %s  %dmp", move.Name, element.Name, move.ManaCost)
		if view.MagicMenu && i < 9 {
			label = fmt.Sprintf("%d %s  %s  %dmp", i+1, move.Name, element.Name, move.ManaCost)
		}
		if move.StatusTemplate != nil {
			label += "  +" + move.StatusTemplate.Name
		}
		drawText(r.canvas, x+2, y, width-2, label, style)
		y++
	}
	return y
}

// drawHistory shows the newest lines that fit between top and bottom.
func (r *Renderer) drawHistory(x, top, width, bottom int, lines []string) {
	rows := bottom - top + 1
	if rows <= 0 {
		return
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		style := dimStyle
		if i == len(lines)-1 {
			style = textStyle
		}
		drawText(r.canvas, x, top+i, width, truncate(line, width), style)
	}
}

func prompt(e *game.Encounter, view View) string {
	switch e.State() {
	case game.StateDead:
		return "[r] restart  [q] quit"
	case game.StateLevelingUp:
		return "Level up! [1] physical  [2] magic  [3] health"
	}
	if view.MagicMenu {
		return fmt.Sprintf("Cast which? [1-%d]  [m/esc] back", min(len(e.AvailableMoves()), 9))
	}
	return "[a] attack  [m] magic  [d] defend  [.] wait  [q] quit"
}

func formatMoves(moves []combat.MoveType) string {
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	return strings.Join(names, " ")
}

func formatStatuses(effects []combat.StatusEffect) string {
	parts := make([]string, len(effects))
	for i, s := range effects {
		parts[i] = fmt.Sprintf("%s(%d)", s.Name, s.RemainingTurns)
	}
	return strings.Join(parts, " ")
}
