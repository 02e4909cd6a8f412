package main

import (
	"context"
	"time"

	"github.com/GuyAfik/MrKnowledgeBot/internal/bot"
	"github.com/GuyAfik/MrKnowledgeBot/internal/cache"
	"github.com/GuyAfik/MrKnowledgeBot/internal/config"
	"github.com/GuyAfik/MrKnowledgeBot/internal/database"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
	"github.com/GuyAfik/MrKnowledgeBot/internal/service"
	"github.com/GuyAfik/MrKnowledgeBot/internal/tmdb"
	"github.com/GuyAfik/MrKnowledgeBot/internal/transport"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// app holds everything main wires together at startup.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	db     *database.BoltDB
	server *transport.Server
}

func newApp() (*app, error) {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.NewBolt(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	log.Infof("[App] response cache database ready at %s", cfg.DatabasePath)

	memoryCache := cache.New(cfg.CacheSize, cfg.CacheTTL)
	go cleanupLoop(context.Background(), memoryCache)

	opts := []tmdb.Option{
		tmdb.WithCache(memoryCache),
		tmdb.WithDatabase(db),
		tmdb.WithPageLimit(cfg.PageLimit),
	}
	if !cfg.VerifyTLS {
		log.Warnf("[App] TLS verification is disabled")
		opts = append(opts, tmdb.WithInsecureTLS())
	}
	client := tmdb.New(cfg.APIMovieToken, cfg.MovieBaseURL, log, opts...)

	movieGenres := loadGenres(client, models.KindMovie, log)
	tvGenres := loadGenres(client, models.KindTVShow, log)

	movies := service.NewMovieService(client, movieGenres, log)
	tvShows := service.NewTVShowService(client, tvGenres, log)

	sender := transport.NewHTTPSender(cfg.OutboundURL, cfg.BotToken, log)
	b := bot.New(movies, tvShows, sender, log)
	server := transport.NewServer(b, cfg.BotToken, log)

	return &app{
		cfg:    cfg,
		log:    log,
		db:     db,
		server: server,
	}, nil
}

func (a *app) run() error {
	defer a.db.Close()
	return a.server.Run(a.cfg.Port)
}

// loadGenres fetches the genre table for a kind once at startup. A
// failure leaves the table empty: genre filters become no-ops but the
// bot stays usable.
func loadGenres(client *tmdb.Client, kind models.Kind, log logger.Logger) *models.GenreTable {
	genres, err := client.Genres(kind)
	if err != nil {
		log.Warnf("[App] failed to load %s genres, genre filters disabled: %v", kind, err)
		return models.NewGenreTable(nil)
	}
	log.Infof("[App] loaded %d %s genres", len(genres), kind)
	return models.NewGenreTable(genres)
}

func cleanupLoop(ctx context.Context, c *cache.LRUCache) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.CleanExpired()
		case <-ctx.Done():
			return
		}
	}
}
