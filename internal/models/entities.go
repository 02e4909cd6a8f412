// Package models defines the typed domain entities decoded from
// The Movie DB API responses.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the entity domain a request targets.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindTVShow Kind = "tv"
)

// Valid reports whether the kind is one The Movie DB understands.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindTVShow
}

// Entity is a searchable/discoverable record (Movie or TVShow).
// Result sets held by a conversation are ordered sequences of Entity.
type Entity interface {
	EntityID() int
	DisplayName() string
	ReleasedOn() string
	PopularityScore() float64
	RatingScore() float64
}

// Movie is a single movie record. Fields missing from the API
// response keep their zero value.
type Movie struct {
	ID          int
	Title       string
	ReleaseDate string
	Genres      []Genre
	Overview    string
	Popularity  float64
	Rating      float64
	Homepage    string
	Status      string
	Runtime     time.Duration
}

func (m *Movie) EntityID() int            { return m.ID }
func (m *Movie) DisplayName() string      { return m.Title }
func (m *Movie) ReleasedOn() string       { return m.ReleaseDate }
func (m *Movie) PopularityScore() float64 { return m.Popularity }
func (m *Movie) RatingScore() float64     { return m.Rating }

// TVShow is a single TV show record, including its seasons when the
// record came from a details lookup.
type TVShow struct {
	ID           int
	Name         string
	FirstAirDate string
	Genres       []Genre
	Overview     string
	Popularity   float64
	Rating       float64
	Homepage     string
	Status       string
	EpisodeCount int
	Seasons      []Season
}

func (t *TVShow) EntityID() int            { return t.ID }
func (t *TVShow) DisplayName() string      { return t.Name }
func (t *TVShow) ReleasedOn() string       { return t.FirstAirDate }
func (t *TVShow) PopularityScore() float64 { return t.Popularity }
func (t *TVShow) RatingScore() float64     { return t.Rating }

// Season belongs to a TVShow. SeasonNumber is 1-based and is the
// human-facing key used when a user picks a season.
type Season struct {
	ID           int
	Name         string
	Overview     string
	EpisodeCount int
	AirDate      string
	SeasonNumber int
}

// Genre is a name/id pair used as a bidirectional lookup table.
type Genre struct {
	ID   int
	Name string
}

// Video is a promotional video attached to a movie or TV show.
type Video struct {
	ID          string
	Name        string
	Type        string
	Key         string
	PublishedAt string
	Site        string
	Official    bool
}

// URL returns the canonical watch URL for the video. It is non-empty
// only for trailers and teasers hosted on youtube; anything else means
// "no usable video".
func (v Video) URL() string {
	kind := strings.ToLower(v.Type)
	if kind != "trailer" && kind != "teaser" {
		return ""
	}
	if !strings.EqualFold(v.Site, "youtube") || v.Key == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// FormatRuntime renders a runtime as H:MM:SS, matching the way the bot
// has always displayed durations. A zero runtime renders empty.
func FormatRuntime(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
