package gamedata

import (
	"io/fs"

	"github.com/gdamore/tcell/v2"
)

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID    string   `json:"id"`    // Unique identifier (e.g., "spider")
	Name  string   `json:"name"`  // Display name (e.g., "Spider")
	Glyph string   `json:"glyph"` // Single character for rendering
	Color string   `json:"color"` // Hex color code (e.g., "#00FF00")
	Level int      `json:"level"` // Level of every enemy spawned from this definition
	Stats StatsDef `json:"stats"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	return ColorOr(e.Color, tcell.ColorWhite)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	return LoadEnemiesFS(dataFS)
}

// LoadEnemiesFS reads enemies.json from fsys.
func LoadEnemiesFS(fsys fs.FS) ([]EnemyDef, error) {
	file, err := LoadFS[EnemiesFile](fsys, "enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
