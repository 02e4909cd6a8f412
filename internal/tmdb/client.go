// Package tmdb implements the HTTP client for The Movie DB API,
// including the paginating result aggregation used by search and
// discovery.
package tmdb

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GuyAfik/MrKnowledgeBot/internal/cache"
	"github.com/GuyAfik/MrKnowledgeBot/internal/constants"
	"github.com/GuyAfik/MrKnowledgeBot/internal/database"
	apperrors "github.com/GuyAfik/MrKnowledgeBot/internal/errors"
	"github.com/GuyAfik/MrKnowledgeBot/internal/mapper"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/ratelimiter"
)

// Client talks to The Movie DB. Every request carries the static
// api_key parameter and is paced through the rate limiter. One failed
// request aborts whatever aggregation loop it belongs to; nothing is
// retried.
type Client struct {
	token       string
	baseURL     string
	pageLimit   int
	httpClient  *http.Client
	rateLimiter *ratelimiter.TokenBucket
	cache       *cache.LRUCache
	db          database.Database
	logger      logger.Logger
}

// Option tweaks a Client at construction time.
type Option func(*Client)

// WithCache attaches an in-memory cache for genre listings and details.
func WithCache(c *cache.LRUCache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithDatabase attaches a persistent response cache.
func WithDatabase(db database.Database) Option {
	return func(cl *Client) { cl.db = db }
}

// WithPageLimit overrides the pagination cap (default 500).
func WithPageLimit(limit int) Option {
	return func(cl *Client) { cl.pageLimit = limit }
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

// WithInsecureTLS disables certificate verification. Explicit opt-in.
func WithInsecureTLS() Option {
	return func(cl *Client) {
		cl.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// New creates a Client for the given base URL and API token.
func New(token, baseURL string, log logger.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultBaseURL
	}
	c := &Client{
		token:       token,
		baseURL:     baseURL,
		pageLimit:   constants.DefaultPageLimit,
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateLimit, constants.TMDBRateBurst),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search aggregates every page of name-search results for a kind, up
// to the pagination cap.
func (c *Client) Search(kind models.Kind, query string) ([]models.Entity, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	if query == "" {
		return nil, apperrors.NewInvalidArgument("search query must not be empty")
	}
	params := url.Values{}
	params.Set("query", query)
	return c.collect(kind, fmt.Sprintf("/search/%s", kind), params)
}

// Discover aggregates every page of filtered discovery results for a
// kind, up to the pagination cap.
func (c *Client) Discover(kind models.Kind, params url.Values) ([]models.Entity, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	if params == nil {
		params = url.Values{}
	}
	return c.collect(kind, fmt.Sprintf("/discover/%s", kind), params)
}

// MovieDetails fetches the full record of a single movie.
func (c *Client) MovieDetails(id int) (*models.Movie, error) {
	raw, err := c.details(models.KindMovie, id)
	if err != nil {
		return nil, err
	}
	movies, err := mapper.Movies(raw)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("empty details response for movie %d", id)
	}
	return movies[0], nil
}

// TVShowDetails fetches the full record of a single TV show, seasons
// included.
func (c *Client) TVShowDetails(id int) (*models.TVShow, error) {
	raw, err := c.details(models.KindTVShow, id)
	if err != nil {
		return nil, err
	}
	shows, err := mapper.TVShows(raw)
	if err != nil {
		return nil, err
	}
	if len(shows) == 0 {
		return nil, fmt.Errorf("empty details response for tv-show %d", id)
	}
	return shows[0], nil
}

// Videos lists the promotional videos attached to an entity.
func (c *Client) Videos(kind models.Kind, id int) ([]models.Video, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	raw, err := c.get(fmt.Sprintf("/%s/%d/videos", kind, id), nil)
	if err != nil {
		return nil, err
	}
	return mapper.Videos(raw)
}

// Genres fetches the genre listing for a kind, consulting the memory
// and disk caches first. The listing is load-once data: a cached copy
// is used for as long as it exists.
func (c *Client) Genres(kind models.Kind) ([]models.Genre, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("genres:%s", kind)
	if c.cache != nil {
		if cached, found := c.cache.Get(cacheKey); found {
			return cached.([]models.Genre), nil
		}
	}
	if c.db != nil {
		if cached, err := c.db.GetGenres(string(kind)); err == nil && cached != nil {
			if genres, err := mapper.Genres(cached.Payload); err == nil {
				if c.cache != nil {
					c.cache.Set(cacheKey, genres)
				}
				return genres, nil
			}
		}
	}

	raw, err := c.get(fmt.Sprintf("/genre/%s/list", kind), nil)
	if err != nil {
		return nil, err
	}
	genres, err := mapper.Genres(raw)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(cacheKey, genres)
	}
	if c.db != nil {
		if err := c.db.StoreGenres(string(kind), raw); err != nil {
			c.logger.Errorf("[TMDB] failed to store genre cache for %s: %v", kind, err)
		}
	}
	return genres, nil
}

// collect runs the pagination protocol: request page 1, 2, ... until a
// page maps to zero entities or the accumulator exceeds the cap, then
// truncate to the cap. The server's own total-page metadata is not
// consulted.
func (c *Client) collect(kind models.Kind, path string, params url.Values) ([]models.Entity, error) {
	var entities []models.Entity
	for page := 1; ; page++ {
		params.Set("page", strconv.Itoa(page))
		raw, err := c.get(path, params)
		if err != nil {
			return nil, err
		}
		batch, err := mapper.Entities(kind, raw)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		entities = append(entities, batch...)
		if len(entities) > c.pageLimit {
			break
		}
	}
	if len(entities) > c.pageLimit {
		entities = entities[:c.pageLimit]
	}
	return entities, nil
}

func (c *Client) details(kind models.Kind, id int) ([]byte, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}

	if c.db != nil {
		if cached, err := c.db.GetDetails(string(kind), id); err == nil && cached != nil {
			return cached.Payload, nil
		}
	}

	raw, err := c.get(fmt.Sprintf("/%s/%d", kind, id), nil)
	if err != nil {
		return nil, err
	}
	if c.db != nil {
		if err := c.db.StoreDetails(string(kind), id, raw); err != nil {
			c.logger.Errorf("[TMDB] failed to store details cache for %s %d: %v", kind, id, err)
		}
	}
	return raw, nil
}

// get issues a single authenticated GET and validates the status code.
func (c *Client) get(path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("api_key", c.token)

	c.rateLimiter.Wait()

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	c.logger.Debugf("[TMDB] GET %s", path)

	resp, err := c.httpClient.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		var decoded interface{}
		if err := json.Unmarshal(body, &decoded); err != nil {
			decoded = string(body)
		}
		return nil, &apperrors.APIError{StatusCode: resp.StatusCode, Body: decoded}
	}
	return body, nil
}

func validKind(kind models.Kind) error {
	if !kind.Valid() {
		return apperrors.NewInvalidArgument("kind %q can be only %q or %q", kind, models.KindMovie, models.KindTVShow)
	}
	return nil
}
