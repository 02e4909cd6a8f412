// Package service implements the movie and TV-show operations the
// conversation engine drives: name search, discovery with client-side
// post-processing, details, seasons and trailer lookups.
package service

import (
	"net/url"
	"time"

	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// API is the slice of the TMDB client the services consume.
type API interface {
	Search(kind models.Kind, query string) ([]models.Entity, error)
	Discover(kind models.Kind, params url.Values) ([]models.Entity, error)
	MovieDetails(id int) (*models.Movie, error)
	TVShowDetails(id int) (*models.TVShow, error)
	Videos(kind models.Kind, id int) ([]models.Video, error)
	Genres(kind models.Kind) ([]models.Genre, error)
}

// base carries what both entity domains share.
type base struct {
	api    API
	kind   models.Kind
	genres *models.GenreTable
	logger logger.Logger
	now    func() time.Time
}

func (b *base) findByName(name string, limit int, sortBy string) ([]models.Entity, error) {
	results, err := b.api.Search(b.kind, name)
	if err != nil {
		return nil, err
	}
	discover.SortDesc(results, sortBy)
	return discover.Truncate(results, limit), nil
}

func (b *base) discover(f discover.Filters, limit int) ([]models.Entity, error) {
	results, err := b.api.Discover(b.kind, f.Build(b.kind, b.genres))
	if err != nil {
		return nil, err
	}
	if !f.NotReleased {
		results = discover.Released(results, b.today())
	}
	discover.SortDesc(results, f.SortBy)
	return discover.Truncate(results, limit), nil
}

// trailer returns the first usable video URL for an entity, or ""
// when none of its videos is a youtube trailer/teaser.
func (b *base) trailer(id int) (string, error) {
	videos, err := b.api.Videos(b.kind, id)
	if err != nil {
		return "", err
	}
	for _, video := range videos {
		if url := video.URL(); url != "" {
			return url, nil
		}
	}
	return "", nil
}

// GenreNames lists the genre names of the domain.
func (b *base) GenreNames() []string {
	return b.genres.Names()
}

// today renders the current UTC date the way the API formats dates,
// so lexicographic comparison is date comparison.
func (b *base) today() string {
	return b.now().UTC().Format("2006-01-02")
}

// MovieService exposes movie search, discovery, details and trailers.
type MovieService struct {
	base
}

// NewMovieService creates a MovieService over a prebuilt genre table.
func NewMovieService(api API, genres *models.GenreTable, log logger.Logger) *MovieService {
	return &MovieService{base{
		api:    api,
		kind:   models.KindMovie,
		genres: genres,
		logger: log,
		now:    time.Now,
	}}
}

func (s *MovieService) FindByName(name string, limit int, sortBy string) ([]models.Entity, error) {
	return s.findByName(name, limit, sortBy)
}

func (s *MovieService) Discover(f discover.Filters, limit int) ([]models.Entity, error) {
	return s.discover(f, limit)
}

func (s *MovieService) Details(id int) (*models.Movie, error) {
	return s.api.MovieDetails(id)
}

func (s *MovieService) Trailer(id int) (string, error) {
	return s.trailer(id)
}

// TVShowService exposes TV-show search, discovery, details, seasons
// and trailers.
type TVShowService struct {
	base
}

// NewTVShowService creates a TVShowService over a prebuilt genre table.
func NewTVShowService(api API, genres *models.GenreTable, log logger.Logger) *TVShowService {
	return &TVShowService{base{
		api:    api,
		kind:   models.KindTVShow,
		genres: genres,
		logger: log,
		now:    time.Now,
	}}
}

func (s *TVShowService) FindByName(name string, limit int, sortBy string) ([]models.Entity, error) {
	return s.findByName(name, limit, sortBy)
}

func (s *TVShowService) Discover(f discover.Filters, limit int) ([]models.Entity, error) {
	return s.discover(f, limit)
}

func (s *TVShowService) Details(id int) (*models.TVShow, error) {
	return s.api.TVShowDetails(id)
}

func (s *TVShowService) Trailer(id int) (string, error) {
	return s.trailer(id)
}

// Season looks up one season of a show by its 1-based number. A miss
// returns nil, it is not an error.
func (s *TVShowService) Season(id, seasonNumber int) (*models.Season, error) {
	show, err := s.api.TVShowDetails(id)
	if err != nil {
		return nil, err
	}
	for i := range show.Seasons {
		if show.Seasons[i].SeasonNumber == seasonNumber {
			return &show.Seasons[i], nil
		}
	}
	return nil, nil
}
