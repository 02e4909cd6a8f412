// Package bot binds the command surface to the conversation engine.
// The command table is built explicitly at startup and handed to the
// transport adapter; there is no global registry.
package bot

import (
	"strings"

	"github.com/GuyAfik/MrKnowledgeBot/internal/constants"
	"github.com/GuyAfik/MrKnowledgeBot/internal/conversation"
	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
	"github.com/GuyAfik/MrKnowledgeBot/internal/present"
	"github.com/GuyAfik/MrKnowledgeBot/internal/service"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// Command is one entry of the command table.
type Command struct {
	Name        string
	Description string
	Run         func(u conversation.Update, args Args)
}

// Bot routes inbound updates: replies belonging to an active
// conversation advance it, command messages start a new one.
type Bot struct {
	movies   *service.MovieService
	tvShows  *service.TVShowService
	sender   conversation.Sender
	manager  *conversation.Manager
	log      logger.Logger
	commands map[string]Command
}

// New wires the bot and builds its command table.
func New(movies *service.MovieService, tvShows *service.TVShowService, sender conversation.Sender, log logger.Logger) *Bot {
	b := &Bot{
		movies:  movies,
		tvShows: tvShows,
		sender:  sender,
		manager: conversation.NewManager(),
		log:     log,
	}

	table := []Command{
		{
			Name:        "find_movies_by_name",
			Description: "Find movies by name: name=<substring> limit=<n> sort_by=popularity|release_date|rating",
			Run:         b.findMovies,
		},
		{
			Name:        "discover_movies",
			Description: "Browse movies by filters: sort_by, before_date, after_date, with_genres, without_genres, before_runtime, after_runtime, not_released, limit",
			Run:         b.discoverMovies,
		},
		{
			Name:        "find_tv_shows_by_name",
			Description: "Find tv-shows by name: name=<substring> limit=<n> sort_by=popularity|release_date|rating",
			Run:         b.findTVShows,
		},
		{
			Name:        "discover_tv_shows",
			Description: "Browse tv-shows by filters, same as discover_movies plus with_status",
			Run:         b.discoverTVShows,
		},
		{
			Name:        "get_movie_genres",
			Description: "List the available movie genres",
			Run:         b.movieGenres,
		},
		{
			Name:        "get_tv_shows_genres",
			Description: "List the available tv-show genres",
			Run:         b.tvShowGenres,
		},
		{
			Name:        "help",
			Description: "Show the available commands",
			Run:         b.help,
		},
	}

	b.commands = make(map[string]Command, len(table))
	for _, cmd := range table {
		b.commands[cmd.Name] = cmd
	}
	return b
}

// Manager exposes the conversation registry, mainly for tests.
func (b *Bot) Manager() *conversation.Manager { return b.manager }

// HandleUpdate is the single inbound entry point for the transport.
func (b *Bot) HandleUpdate(u conversation.Update) {
	// An active conversation consumes every update for its chat.
	if b.manager.Handle(u) {
		return
	}

	text := strings.TrimSpace(u.MessageText())
	if !strings.HasPrefix(text, "/") {
		return
	}
	name, args := ParseCommand(text)
	cmd, ok := b.commands[name]
	if !ok {
		b.log.Debugf("[Bot] chat %d sent unknown command %q", u.ChatID(), name)
		return
	}
	cmd.Run(u, args)
}

func (b *Bot) findMovies(u conversation.Update, args Args) {
	c := conversation.NewMovieConversation(u.ChatID(), b.movies, b.sender, b.log)
	if c.FindByName(u, args.Name, clampLimit(args.Limit), args.SortBy) != conversation.StageTerminal {
		b.manager.Bind(u.ChatID(), c)
	}
}

func (b *Bot) discoverMovies(u conversation.Update, args Args) {
	c := conversation.NewMovieConversation(u.ChatID(), b.movies, b.sender, b.log)
	if c.Discover(u, args.Filters(), clampLimit(args.Limit)) != conversation.StageTerminal {
		b.manager.Bind(u.ChatID(), c)
	}
}

func (b *Bot) findTVShows(u conversation.Update, args Args) {
	c := conversation.NewTVShowConversation(u.ChatID(), b.tvShows, b.sender, b.log)
	if c.FindByName(u, args.Name, clampLimit(args.Limit), args.SortBy) != conversation.StageTerminal {
		b.manager.Bind(u.ChatID(), c)
	}
}

func (b *Bot) discoverTVShows(u conversation.Update, args Args) {
	c := conversation.NewTVShowConversation(u.ChatID(), b.tvShows, b.sender, b.log)
	if c.Discover(u, args.Filters(), clampLimit(args.Limit)) != conversation.StageTerminal {
		b.manager.Bind(u.ChatID(), c)
	}
}

func (b *Bot) movieGenres(u conversation.Update, _ Args) {
	b.reply(u, present.GenreList(b.movies.GenreNames()))
}

func (b *Bot) tvShowGenres(u conversation.Update, _ Args) {
	b.reply(u, present.GenreList(b.tvShows.GenreNames()))
}

func (b *Bot) help(u conversation.Update, _ Args) {
	var lines []string
	for _, name := range commandOrder {
		cmd := b.commands[name]
		lines = append(lines, "/"+cmd.Name+" - "+cmd.Description)
	}
	b.reply(u, strings.Join(lines, "\n"))
}

var commandOrder = []string{
	"find_movies_by_name",
	"discover_movies",
	"find_tv_shows_by_name",
	"discover_tv_shows",
	"get_movie_genres",
	"get_tv_shows_genres",
	"help",
}

func (b *Bot) reply(u conversation.Update, text string) {
	if err := b.sender.SendText(u.ChatID(), text); err != nil {
		b.log.Errorf("[Bot] chat %d failed to send reply: %v", u.ChatID(), err)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultResultLimit
	}
	if limit > constants.MaxResultLimit {
		return constants.MaxResultLimit
	}
	return limit
}

// Filters converts parsed arguments into discovery filters.
func (a Args) Filters() discover.Filters {
	return discover.Filters{
		SortBy:        a.SortBy,
		BeforeDate:    a.BeforeDate,
		AfterDate:     a.AfterDate,
		WithGenres:    a.WithGenres,
		WithoutGenres: a.WithoutGenres,
		BeforeRuntime: a.BeforeRuntime,
		AfterRuntime:  a.AfterRuntime,
		WithStatus:    a.WithStatus,
		NotReleased:   a.NotReleased,
	}
}
