package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
)

// Catalogs bundles every read-only table an encounter needs. It is built
// once per session and shared by pointer.
type Catalogs struct {
	Enemies  *EnemyRegistry
	Moves    *MoveCatalog
	Statuses *StatusRegistry
	Classes  *ClassRegistry
	Elements map[string]ElementDef
}

// LoadCatalogs loads and validates all embedded data files.
func LoadCatalogs() (*Catalogs, error) {
	return LoadCatalogsFS(dataFS)
}

// LoadCatalogsFS loads and validates the data files found in fsys.
func LoadCatalogsFS(fsys fs.FS) (*Catalogs, error) {
	statusDefs, err := LoadStatusesFS(fsys)
	if err != nil {
		return nil, err
	}
	statuses, err := NewStatusRegistry(statusDefs)
	if err != nil {
		return nil, fmt.Errorf("statuses.json: %w", err)
	}

	moveDefs, err := LoadMovesFS(fsys)
	if err != nil {
		return nil, err
	}
	moves, err := NewMoveCatalog(moveDefs, statuses)
	if err != nil {
		return nil, fmt.Errorf("moves.json: %w", err)
	}

	enemyDefs, err := LoadEnemiesFS(fsys)
	if err != nil {
		return nil, err
	}
	enemies, err := NewEnemyRegistry(enemyDefs)
	if err != nil {
		return nil, fmt.Errorf("enemies.json: %w", err)
	}

	classDefs, err := LoadClassesFS(fsys)
	if err != nil {
		return nil, err
	}
	if len(classDefs) == 0 {
		return nil, errors.New("classes.json: no classes defined")
	}

	elementDefs, err := LoadElementsFS(fsys)
	if err != nil {
		return nil, err
	}
	elements := make(map[string]ElementDef, len(elementDefs))
	for _, e := range elementDefs {
		elements[e.ID] = e
	}

	return &Catalogs{
		Enemies:  enemies,
		Moves:    moves,
		Statuses: statuses,
		Classes:  NewClassRegistry(classDefs),
		Elements: elements,
	}, nil
}

// MustLoadCatalogs loads the embedded catalogs, panicking on error.
func MustLoadCatalogs() *Catalogs {
	catalogs, err := LoadCatalogs()
	if err != nil {
		panic(err)
	}
	return catalogs
}

// Element returns the element definition for id, with a plain fallback.
func (c *Catalogs) Element(id string) ElementDef {
	if e, ok := c.Elements[id]; ok {
		return e
	}
	return ElementDef{ID: id, Name: id}
}
