package gamedata

import "io/fs"

// StatusDef is a status effect template. Casting a move copies it into a
// live effect together with the caster's magic strength at that moment.
type StatusDef struct {
	Name       string `json:"name"`
	BaseAmount int    `json:"baseAmount"`
	IsHealing  bool   `json:"isHealing"`
	Turns      int    `json:"turns"`
}

// StatusesFile represents the structure of statuses.json.
type StatusesFile struct {
	Statuses []StatusDef `json:"statuses"`
}

// LoadStatuses loads status definitions from the embedded statuses.json file.
func LoadStatuses() ([]StatusDef, error) {
	return LoadStatusesFS(dataFS)
}

// LoadStatusesFS reads statuses.json from fsys.
func LoadStatusesFS(fsys fs.FS) ([]StatusDef, error) {
	file, err := LoadFS[StatusesFile](fsys, "statuses.json")
	if err != nil {
		return nil, err
	}
	return file.Statuses, nil
}
