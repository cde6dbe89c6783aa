package gamedata

// StatsDef is the base stat profile of a class or enemy as stored in JSON.
type StatsDef struct {
	Health   int `json:"health"`   // Health base, scaled into max health
	Mana     int `json:"mana"`     // Mana base, scaled into max mana
	Speed    int `json:"speed"`    // Decides who acts first each turn
	Strength int `json:"strength"` // Physical attack power
	Magic    int `json:"magic"`    // Magic strength
	Defense  int `json:"defense"`  // Percentage damage reduction
}
