package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

func TestMoviesEnvelope(t *testing.T) {
	raw := []byte(`{
		"page": 1,
		"results": [
			{"id": 1, "title": "The Great Escape", "release_date": "1963-07-04", "popularity": 30.1, "vote_average": 8.0, "genre_ids": [12, 18]},
			{"id": 2, "title": "Escape from Alcatraz", "release_date": "1979-06-22", "popularity": 25.4, "vote_average": 7.5}
		]
	}`)

	movies, err := Movies(raw)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, 1, movies[0].ID)
	assert.Equal(t, "The Great Escape", movies[0].Title)
	assert.Equal(t, "1963-07-04", movies[0].ReleaseDate)
	assert.Equal(t, 30.1, movies[0].Popularity)
	assert.Equal(t, 8.0, movies[0].Rating)
	assert.Equal(t, []models.Genre{{ID: 12}, {ID: 18}}, movies[0].Genres)
	assert.Empty(t, movies[1].Genres)
}

func TestMoviesSingleObject(t *testing.T) {
	raw := []byte(`{
		"id": 7,
		"title": "Escape from New York",
		"overview": "A snake in the city.",
		"runtime": 99,
		"homepage": "https://example.com",
		"status": "Released",
		"genres": [{"id": 878, "name": "Science Fiction"}]
	}`)

	movies, err := Movies(raw)
	require.NoError(t, err)
	require.Len(t, movies, 1)

	m := movies[0]
	assert.Equal(t, 99*time.Minute, m.Runtime)
	assert.Equal(t, []models.Genre{{ID: 878, Name: "Science Fiction"}}, m.Genres)
	assert.Equal(t, "Released", m.Status)
	// Optional fields absent from the payload stay zero.
	assert.Empty(t, m.ReleaseDate)
	assert.Zero(t, m.Popularity)
}

func TestMoviesFiltersNonASCIITitles(t *testing.T) {
	raw := []byte(`{"results": [
		{"id": 1, "title": "Amelie"},
		{"id": 2, "title": "Amélie"},
		{"id": 3, "title": "Seven"}
	]}`)

	movies, err := Movies(raw)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Amelie", movies[0].Title)
	assert.Equal(t, "Seven", movies[1].Title)
}

func TestMoviesZeroRuntimeStaysZero(t *testing.T) {
	movies, err := Movies([]byte(`{"id": 1, "title": "Short", "runtime": 0}`))
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Zero(t, movies[0].Runtime)
}

func TestMoviesMalformedPayload(t *testing.T) {
	_, err := Movies([]byte(`{"results": "not-a-list"`))
	assert.Error(t, err)
}

func TestTVShowsWithSeasons(t *testing.T) {
	raw := []byte(`{
		"id": 100,
		"name": "Breaking Bad",
		"first_air_date": "2008-01-20",
		"number_of_episodes": 62,
		"status": "Ended",
		"seasons": [
			{"id": 1, "name": "Season 1", "episode_count": 7, "air_date": "2008-01-20", "season_number": 1},
			{"id": 2, "name": "Season 2", "episode_count": 13, "air_date": "2009-03-08", "season_number": 2}
		]
	}`)

	shows, err := TVShows(raw)
	require.NoError(t, err)
	require.Len(t, shows, 1)

	show := shows[0]
	assert.Equal(t, "Breaking Bad", show.Name)
	assert.Equal(t, 62, show.EpisodeCount)
	require.Len(t, show.Seasons, 2)
	assert.Equal(t, 2, show.Seasons[1].SeasonNumber)
	assert.Equal(t, 13, show.Seasons[1].EpisodeCount)
}

func TestTVShowsFiltersNonASCIINames(t *testing.T) {
	raw := []byte(`{"results": [
		{"id": 1, "name": "Dark"},
		{"id": 2, "name": "Żmijowisko"}
	]}`)

	shows, err := TVShows(raw)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "Dark", shows[0].Name)
}

func TestGenresListing(t *testing.T) {
	raw := []byte(`{"genres": [{"id": 28, "name": "Action"}, {"id": 35, "name": "Comedy"}]}`)

	genres, err := Genres(raw)
	require.NoError(t, err)
	assert.Equal(t, []models.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}, genres)
}

func TestGenresEmptyListing(t *testing.T) {
	genres, err := Genres([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestVideos(t *testing.T) {
	raw := []byte(`{"results": [
		{"id": "abc", "name": "Official Trailer", "type": "Trailer", "key": "dQw4w9WgXcQ", "site": "YouTube", "official": true},
		{"id": "def", "name": "Clip", "type": "Clip", "key": "xyz", "site": "YouTube"}
	]}`)

	videos, err := Videos(raw)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", videos[0].URL())
	assert.Empty(t, videos[1].URL())
}

func TestDecodeGenresDegradedShapes(t *testing.T) {
	// Genre names without ids keep the names.
	movies, err := Movies([]byte(`{"id": 1, "title": "X", "genres": ["Action", "Drama"]}`))
	require.NoError(t, err)
	assert.Equal(t, []models.Genre{{Name: "Action"}, {Name: "Drama"}}, movies[0].Genres)

	// A shape that fits nothing degrades to no genres, not an error.
	movies, err = Movies([]byte(`{"id": 2, "title": "Y", "genres": 42}`))
	require.NoError(t, err)
	assert.Empty(t, movies[0].Genres)
}

func TestEntitiesDispatch(t *testing.T) {
	raw := []byte(`{"results": [{"id": 1, "title": "Seven"}]}`)

	entities, err := Entities(models.KindMovie, raw)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "Seven", entities[0].DisplayName())

	_, err = Entities(models.Kind("book"), raw)
	assert.Error(t, err)
}
