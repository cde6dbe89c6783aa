package gamedata

import (
	"io/fs"

	"github.com/gdamore/tcell/v2"
)

// ElementDef is the cosmetic element tag carried by moves.
type ElementDef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TCellColor returns the element color as a tcell.Color.
func (e *ElementDef) TCellColor() tcell.Color {
	return ColorOr(e.Color, tcell.ColorWhite)
}

// ElementsFile represents the structure of elements.json.
type ElementsFile struct {
	Elements []ElementDef `json:"elements"`
}

// LoadElements loads element definitions from the embedded elements.json file.
func LoadElements() ([]ElementDef, error) {
	return LoadElementsFS(dataFS)
}

// LoadElementsFS reads elements.json from fsys.
func LoadElementsFS(fsys fs.FS) ([]ElementDef, error) {
	file, err := LoadFS[ElementsFile](fsys, "elements.json")
	if err != nil {
		return nil, err
	}
	return file.Elements, nil
}
