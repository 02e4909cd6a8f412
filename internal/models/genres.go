package models

import "strings"

// GenreTable is a name<->id lookup built once per client lifetime from
// the genre listing endpoint. It is read-only after construction and
// safe to share between chats.
type GenreTable struct {
	genres []Genre
	byName map[string]int
}

// NewGenreTable builds a lookup table from a genre listing.
func NewGenreTable(genres []Genre) *GenreTable {
	byName := make(map[string]int, len(genres))
	for _, g := range genres {
		byName[strings.ToLower(g.Name)] = g.ID
	}
	return &GenreTable{genres: genres, byName: byName}
}

// Names returns every genre name in listing order.
func (t *GenreTable) Names() []string {
	names := make([]string, 0, len(t.genres))
	for _, g := range t.genres {
		names = append(names, g.Name)
	}
	return names
}

// IDs resolves genre names to ids. Matching is case-insensitive and
// names with no match are dropped.
func (t *GenreTable) IDs(names []string) []int {
	var ids []int
	for _, name := range names {
		if id, ok := t.byName[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Len returns the number of genres in the table.
func (t *GenreTable) Len() int { return len(t.genres) }
