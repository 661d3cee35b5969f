package catalog

import "strconv"

// Creature is one catalog entry as rendered on a result card.
type Creature struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	SpriteURL string   `json:"spriteUrl"`
	Types     []string `json:"types"`
	Stats     []Stat   `json:"stats"`
	Abilities []string `json:"abilities"`
}

type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

// Key is the cart identity of the creature.
func (c Creature) Key() string {
	return strconv.Itoa(c.ID)
}

// pokemonResponse mirrors the subset of /api/v2/pokemon/{id} we read.
type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability namedResource `json:"ability"`
	} `json:"abilities"`
}

type namedResource struct {
	Name string `json:"name"`
}

func (p pokemonResponse) toCreature() Creature {
	c := Creature{
		ID:        p.ID,
		Name:      p.Name,
		SpriteURL: p.Sprites.FrontDefault,
		Types:     make([]string, 0, len(p.Types)),
		Stats:     make([]Stat, 0, len(p.Stats)),
		Abilities: make([]string, 0, len(p.Abilities)),
	}
	for _, t := range p.Types {
		c.Types = append(c.Types, t.Type.Name)
	}
	for _, s := range p.Stats {
		c.Stats = append(c.Stats, Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	for _, a := range p.Abilities {
		c.Abilities = append(c.Abilities, a.Ability.Name)
	}
	return c
}
