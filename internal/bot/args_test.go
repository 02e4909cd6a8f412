package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
)

func TestParseCommandNameOnly(t *testing.T) {
	name, args := ParseCommand("/help")
	assert.Equal(t, "help", name)
	assert.Equal(t, Args{}, args)
}

func TestParseCommandKeyValues(t *testing.T) {
	name, args := ParseCommand("/find_movies_by_name name=escape limit=5 sort_by=popularity")
	assert.Equal(t, "find_movies_by_name", name)
	assert.Equal(t, "escape", args.Name)
	assert.Equal(t, 5, args.Limit)
	assert.Equal(t, "popularity", args.SortBy)
}

func TestParseCommandShortKeys(t *testing.T) {
	_, args := ParseCommand("/find_movies_by_name n=seven l=3 s=rating")
	assert.Equal(t, "seven", args.Name)
	assert.Equal(t, 3, args.Limit)
	assert.Equal(t, "rating", args.SortBy)
}

func TestParseCommandQuotedValues(t *testing.T) {
	_, args := ParseCommand(`/find_movies_by_name name="the great escape"`)
	assert.Equal(t, "the great escape", args.Name)
}

func TestParseCommandLists(t *testing.T) {
	_, args := ParseCommand(`/discover_movies with_genres="action, drama" without_genres=comedy`)
	assert.Equal(t, []string{"action", "drama"}, args.WithGenres)
	assert.Equal(t, []string{"comedy"}, args.WithoutGenres)
}

func TestParseCommandDiscoverFilters(t *testing.T) {
	_, args := ParseCommand(`/discover_tv_shows before_date="March 2014" after_runtime=30 with_status=0 not_released=true`)
	assert.Equal(t, "March 2014", args.BeforeDate)
	assert.Equal(t, 30, args.AfterRuntime)
	assert.Equal(t, "0", args.WithStatus)
	assert.True(t, args.NotReleased)
}

func TestParseCommandIgnoresJunk(t *testing.T) {
	_, args := ParseCommand("/discover_movies bogus_key=1 limit=abc stray")
	assert.Equal(t, Args{}, args)
}

func TestArgsFilters(t *testing.T) {
	args := Args{
		SortBy:      "popularity",
		BeforeDate:  "2014-01-01",
		WithGenres:  []string{"Action"},
		NotReleased: true,
	}
	assert.Equal(t, discover.Filters{
		SortBy:      "popularity",
		BeforeDate:  "2014-01-01",
		WithGenres:  []string{"Action"},
		NotReleased: true,
	}, args.Filters())
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, clampLimit(0))
	assert.Equal(t, 20, clampLimit(-3))
	assert.Equal(t, 7, clampLimit(7))
	assert.Equal(t, 100, clampLimit(1000))
}
