// Package discover translates high-level discovery filters into The
// Movie DB query parameters and applies the client-side post-pass the
// API cannot do itself.
package discover

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

// Sort keys accepted from users.
const (
	SortByPopularity  = "popularity"
	SortByReleaseDate = "release_date"
	SortByRating      = "rating"
)

// Filters describes a discovery request. String dates may be natural
// language ("two weeks ago"); anything the date parser cannot make
// sense of is silently dropped.
type Filters struct {
	SortBy        string
	BeforeDate    string
	AfterDate     string
	WithGenres    []string
	WithoutGenres []string
	BeforeRuntime int
	AfterRuntime  int
	WithStatus    string // TV only
	NotReleased   bool
}

// dateField returns the release-date filter field for a kind.
func dateField(kind models.Kind) string {
	if kind == models.KindTVShow {
		return "first_air_date"
	}
	return "primary_release_date"
}

// sortToken maps a user-facing sort key to the API's descending-sort
// token. Unrecognized or absent keys default to rating.
func sortToken(kind models.Kind, sortBy string) string {
	switch sortBy {
	case SortByPopularity:
		return "popularity.desc"
	case SortByReleaseDate:
		if kind == models.KindTVShow {
			return "first_air_date.desc"
		}
		return "release_date.desc"
	default:
		return "vote_average.desc"
	}
}

// Build renders the filters into query parameters for a kind, resolving
// genre names through the table. Filters that resolve to nothing are
// omitted entirely, never sent empty.
func (f Filters) Build(kind models.Kind, genres *models.GenreTable) url.Values {
	params := url.Values{}

	if f.SortBy != "" {
		params.Set("sort_by", sortToken(kind, f.SortBy))
	}

	field := dateField(kind)
	if f.BeforeDate != "" {
		if parsed, err := dateparse.ParseAny(f.BeforeDate); err == nil {
			params.Set(field+".lte", parsed.Format("2006-01-02"))
		}
	}
	if f.AfterDate != "" {
		if parsed, err := dateparse.ParseAny(f.AfterDate); err == nil {
			params.Set(field+".gte", parsed.Format("2006-01-02"))
		}
	}

	if genres != nil {
		if ids := genres.IDs(f.WithGenres); len(ids) > 0 {
			params.Set("with_genres", joinIDs(ids))
		}
		if ids := genres.IDs(f.WithoutGenres); len(ids) > 0 {
			params.Set("without_genres", joinIDs(ids))
		}
	}

	if f.BeforeRuntime > 0 {
		params.Set("with_runtime.lte", strconv.Itoa(f.BeforeRuntime))
	}
	if f.AfterRuntime > 0 {
		params.Set("with_runtime.gte", strconv.Itoa(f.AfterRuntime))
	}
	if kind == models.KindTVShow && f.WithStatus != "" {
		params.Set("with_status", f.WithStatus)
	}
	return params
}

// Released keeps only entities whose release date is known and strictly
// in the past relative to today.
func Released(entities []models.Entity, today string) []models.Entity {
	kept := make([]models.Entity, 0, len(entities))
	for _, e := range entities {
		if released := e.ReleasedOn(); released != "" && released < today {
			kept = append(kept, e)
		}
	}
	return kept
}

// SortDesc orders entities descending by the sort key, with entities
// missing the key ordered last. The sort is stable so ties keep their
// API order.
func SortDesc(entities []models.Entity, sortBy string) {
	sort.SliceStable(entities, func(i, j int) bool {
		switch sortBy {
		case SortByReleaseDate:
			a, b := entities[i].ReleasedOn(), entities[j].ReleasedOn()
			if (a == "") != (b == "") {
				return a != ""
			}
			return a > b
		case SortByPopularity:
			return entities[i].PopularityScore() > entities[j].PopularityScore()
		default:
			return entities[i].RatingScore() > entities[j].RatingScore()
		}
	})
}

// Truncate caps a result set at limit.
func Truncate(entities []models.Entity, limit int) []models.Entity {
	if limit > 0 && len(entities) > limit {
		return entities[:limit]
	}
	return entities
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
