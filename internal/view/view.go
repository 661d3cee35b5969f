// Package view turns catalog results and cart snapshots into what the page
// and the JSON API show.
package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/catalog"
)

// Card is a rendered search result.
type Card struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpriteURL string `json:"img"`
	Types     string `json:"types"`
	Stats     string `json:"stats"`
	Abilities string `json:"abilities"`
}

func BuildCard(c catalog.Creature) Card {
	stats := make([]string, 0, len(c.Stats))
	for _, s := range c.Stats {
		stats = append(stats, s.Name+": "+strconv.Itoa(s.Base))
	}
	return Card{
		ID:        c.Key(),
		Name:      c.Name,
		SpriteURL: c.SpriteURL,
		Types:     strings.Join(c.Types, ", "),
		Stats:     strings.Join(stats, ", "),
		Abilities: strings.Join(c.Abilities, ", "),
	}
}

// CartRow is one line of the cart list.
type CartRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"img"`
	Quantity int    `json:"quantity"`
	Label    string `json:"label"`
}

type CartView struct {
	Rows []CartRow `json:"items"`
	// Count is the number of distinct entries.
	Count int `json:"count"`
	// CountLabel is Count formatted as "(N)".
	CountLabel string `json:"countLabel"`
}

func (v CartView) Empty() bool { return len(v.Rows) == 0 }

// BuildCartView rebuilds the whole list from a snapshot.
func BuildCartView(items []cart.Item) CartView {
	rows := make([]CartRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, CartRow{
			ID:       it.ID,
			Name:     it.Name,
			ImageURL: it.ImageURL,
			Quantity: it.Quantity,
			Label:    fmt.Sprintf("%s x%d", it.Name, it.Quantity),
		})
	}
	return CartView{
		Rows:       rows,
		Count:      len(rows),
		CountLabel: fmt.Sprintf("(%d)", len(rows)),
	}
}
