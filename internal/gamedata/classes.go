package gamedata

import "io/fs"

// DefaultClassID is the class used when none is configured.
const DefaultClassID = "wanderer"

// ClassDef defines a starting profile for the player loaded from JSON.
type ClassDef struct {
	ID     string   `json:"id"`     // Unique identifier (e.g., "wanderer")
	Name   string   `json:"name"`   // Display name (e.g., "Wanderer")
	Symbol string   `json:"symbol"` // Single character for rendering (e.g., "@")
	Stats  StatsDef `json:"stats"`
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// ClassesFile represents the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json file.
func LoadClasses() ([]ClassDef, error) {
	return LoadClassesFS(dataFS)
}

// LoadClassesFS reads classes.json from fsys.
func LoadClassesFS(fsys fs.FS) ([]ClassDef, error) {
	file, err := LoadFS[ClassesFile](fsys, "classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}
