// Package mapper converts raw The Movie DB JSON payloads into typed
// domain entities. Missing optional fields degrade to zero values and
// never produce an error; only malformed JSON does.
package mapper

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode"

	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

type moviePayload struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	ReleaseDate string          `json:"release_date"`
	GenreIDs    json.RawMessage `json:"genre_ids"`
	Genres      json.RawMessage `json:"genres"`
	Overview    string          `json:"overview"`
	Popularity  float64         `json:"popularity"`
	VoteAverage float64         `json:"vote_average"`
	Homepage    string          `json:"homepage"`
	Status      string          `json:"status"`
	Runtime     int             `json:"runtime"`
}

type tvShowPayload struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	FirstAirDate     string          `json:"first_air_date"`
	GenreIDs         json.RawMessage `json:"genre_ids"`
	Genres           json.RawMessage `json:"genres"`
	Overview         string          `json:"overview"`
	Popularity       float64         `json:"popularity"`
	VoteAverage      float64         `json:"vote_average"`
	Homepage         string          `json:"homepage"`
	Status           string          `json:"status"`
	NumberOfEpisodes int             `json:"number_of_episodes"`
	Seasons          []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date"`
	SeasonNumber int    `json:"season_number"`
}

type videoPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Key         string `json:"key"`
	PublishedAt string `json:"published_at"`
	Site        string `json:"site"`
	Official    bool   `json:"official"`
}

// records splits a payload into its individual result records. A
// payload carrying a "results" list maps over every element, anything
// else is treated as a single record.
func records(raw []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response payload: %w", err)
	}
	if envelope.Results != nil {
		return envelope.Results, nil
	}
	return []json.RawMessage{raw}, nil
}

// Movies maps a search/discover/details payload to movies. Records
// whose title does not survive a strict ASCII round-trip are excluded
// from the sequence entirely.
func Movies(raw []byte) ([]*models.Movie, error) {
	items, err := records(raw)
	if err != nil {
		return nil, err
	}
	movies := make([]*models.Movie, 0, len(items))
	for _, item := range items {
		var payload moviePayload
		if err := json.Unmarshal(item, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode movie record: %w", err)
		}
		if !isASCII(payload.Title) {
			continue
		}
		movies = append(movies, &models.Movie{
			ID:          payload.ID,
			Title:       payload.Title,
			ReleaseDate: payload.ReleaseDate,
			Genres:      decodeGenres(payload.Genres, payload.GenreIDs),
			Overview:    payload.Overview,
			Popularity:  payload.Popularity,
			Rating:      payload.VoteAverage,
			Homepage:    payload.Homepage,
			Status:      payload.Status,
			Runtime:     time.Duration(payload.Runtime) * time.Minute,
		})
	}
	return movies, nil
}

// TVShows maps a search/discover/details payload to TV shows, applying
// the same strict ASCII name filter as Movies.
func TVShows(raw []byte) ([]*models.TVShow, error) {
	items, err := records(raw)
	if err != nil {
		return nil, err
	}
	shows := make([]*models.TVShow, 0, len(items))
	for _, item := range items {
		var payload tvShowPayload
		if err := json.Unmarshal(item, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode tv-show record: %w", err)
		}
		if !isASCII(payload.Name) {
			continue
		}
		seasons := make([]models.Season, 0, len(payload.Seasons))
		for _, s := range payload.Seasons {
			seasons = append(seasons, models.Season(s))
		}
		shows = append(shows, &models.TVShow{
			ID:           payload.ID,
			Name:         payload.Name,
			FirstAirDate: payload.FirstAirDate,
			Genres:       decodeGenres(payload.Genres, payload.GenreIDs),
			Overview:     payload.Overview,
			Popularity:   payload.Popularity,
			Rating:       payload.VoteAverage,
			Homepage:     payload.Homepage,
			Status:       payload.Status,
			EpisodeCount: payload.NumberOfEpisodes,
			Seasons:      seasons,
		})
	}
	return shows, nil
}

// Genres maps a genre listing payload, which carries a "genres" list
// instead of the usual "results" envelope.
func Genres(raw []byte) ([]models.Genre, error) {
	var listing struct {
		Genres []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"genres"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode genre listing: %w", err)
	}
	genres := make([]models.Genre, 0, len(listing.Genres))
	for _, g := range listing.Genres {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	return genres, nil
}

// Videos maps a video listing payload.
func Videos(raw []byte) ([]models.Video, error) {
	items, err := records(raw)
	if err != nil {
		return nil, err
	}
	videos := make([]models.Video, 0, len(items))
	for _, item := range items {
		var payload videoPayload
		if err := json.Unmarshal(item, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode video record: %w", err)
		}
		videos = append(videos, models.Video(payload))
	}
	return videos, nil
}

// Entities dispatches to the decoder for a kind and widens the result
// to the Entity interface.
func Entities(kind models.Kind, raw []byte) ([]models.Entity, error) {
	decode, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("no decoder registered for kind %q", kind)
	}
	return decode(raw)
}

var decoders = map[models.Kind]func([]byte) ([]models.Entity, error){
	models.KindMovie:  decodeMovieEntities,
	models.KindTVShow: decodeTVShowEntities,
}

func decodeMovieEntities(raw []byte) ([]models.Entity, error) {
	movies, err := Movies(raw)
	if err != nil {
		return nil, err
	}
	entities := make([]models.Entity, len(movies))
	for i, m := range movies {
		entities[i] = m
	}
	return entities, nil
}

func decodeTVShowEntities(raw []byte) ([]models.Entity, error) {
	shows, err := TVShows(raw)
	if err != nil {
		return nil, err
	}
	entities := make([]models.Entity, len(shows))
	for i, s := range shows {
		entities[i] = s
	}
	return entities, nil
}

// decodeGenres wraps whatever genre shape the record carries into
// Genre values. Full objects win over bare id lists; a shape that fits
// neither degrades to genres keyed by name or id, never to an error.
func decodeGenres(objects, ids json.RawMessage) []models.Genre {
	if len(objects) > 0 {
		var full []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(objects, &full); err == nil {
			genres := make([]models.Genre, 0, len(full))
			for _, g := range full {
				genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
			}
			return genres
		}
		var names []string
		if err := json.Unmarshal(objects, &names); err == nil {
			genres := make([]models.Genre, 0, len(names))
			for _, name := range names {
				genres = append(genres, models.Genre{Name: name})
			}
			return genres
		}
	}
	if len(ids) > 0 {
		var bare []int
		if err := json.Unmarshal(ids, &bare); err == nil {
			genres := make([]models.Genre, 0, len(bare))
			for _, id := range bare {
				genres = append(genres, models.Genre{ID: id})
			}
			return genres
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
