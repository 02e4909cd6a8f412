package conversation

import (
	"fmt"
	"strconv"

	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
	"github.com/GuyAfik/MrKnowledgeBot/internal/present"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// TVShowBrowser is the slice of the TV-show service the conversation
// drives.
type TVShowBrowser interface {
	FindByName(name string, limit int, sortBy string) ([]models.Entity, error)
	Discover(f discover.Filters, limit int) ([]models.Entity, error)
	Details(id int) (*models.TVShow, error)
	Trailer(id int) (string, error)
}

// TVShowConversation walks a user through search results, show
// details, seasons and trailers. It is the movie flow plus a season
// sub-flow between details and trailer.
type TVShowConversation struct {
	svc     TVShowBrowser
	sender  Sender
	log     logger.Logger
	session *Session
}

// NewTVShowConversation starts a TV-show conversation for a chat.
func NewTVShowConversation(chatID int64, svc TVShowBrowser, sender Sender, log logger.Logger) *TVShowConversation {
	return &TVShowConversation{
		svc:     svc,
		sender:  sender,
		log:     log,
		session: newSession(chatID),
	}
}

// Stage reports the stage the conversation is waiting at.
func (c *TVShowConversation) Stage() Stage { return c.session.Stage }

// Session exposes the session for tests.
func (c *TVShowConversation) Session() *Session { return c.session }

// FindByName is the search entry point.
func (c *TVShowConversation) FindByName(u Update, name string, limit int, sortBy string) Stage {
	return c.guard(u, func() (Stage, error) {
		if err := c.sender.SendText(u.ChatID(), msgHangOn); err != nil {
			return 0, err
		}
		results, err := c.svc.FindByName(name, limit, sortBy)
		if err != nil {
			return 0, err
		}
		return c.displayResults(results)
	})
}

// Discover is the filtered-browsing entry point.
func (c *TVShowConversation) Discover(u Update, f discover.Filters, limit int) Stage {
	return c.guard(u, func() (Stage, error) {
		if err := c.sender.SendText(u.ChatID(), msgHangOn); err != nil {
			return 0, err
		}
		results, err := c.svc.Discover(f, limit)
		if err != nil {
			return 0, err
		}
		return c.displayResults(results)
	})
}

// Advance feeds the next user reply into the state machine.
func (c *TVShowConversation) Advance(u Update) Stage {
	return c.guard(u, func() (Stage, error) {
		switch c.session.Stage {
		case StageQueryDetailsConfirm:
			return c.queryDetails(u)
		case StageDisplayDetails:
			return c.displayDetails(u)
		case StageQuerySeasonConfirm:
			return c.querySeason(u)
		case StageDisplaySeason:
			return c.displaySeason(u)
		case StageQueryTrailerConfirm:
			return c.queryTrailer(u)
		case StageDisplayTrailer:
			return c.displayTrailer(u)
		default:
			return StageTerminal, nil
		}
	})
}

func (c *TVShowConversation) guard(u Update, fn func() (Stage, error)) Stage {
	stage, err := fn()
	if err != nil {
		c.log.Errorf("[Conversation] chat %d stage %s failed: %v", u.ChatID(), c.session.Stage, err)
		if sendErr := c.sender.SendText(u.ChatID(), msgApology); sendErr != nil {
			c.log.Errorf("[Conversation] chat %d failed to send apology: %v", u.ChatID(), sendErr)
		}
		stage = StageTerminal
	}
	c.session.Stage = stage
	return stage
}

func (c *TVShowConversation) displayResults(results []models.Entity) (Stage, error) {
	if len(results) == 0 {
		if err := c.sender.SendText(c.session.ChatID, msgTVShowsNotFound); err != nil {
			return 0, err
		}
		return StageTerminal, nil
	}
	c.session.Results = results
	if err := c.sender.SendText(c.session.ChatID, fmt.Sprintf(msgTVShowsFound, present.Names(results))); err != nil {
		return 0, err
	}
	if err := c.sender.SendBinaryChoice(c.session.ChatID, msgQueryTVShowDetails); err != nil {
		return 0, err
	}
	return StageQueryDetailsConfirm, nil
}

func (c *TVShowConversation) queryDetails(u Update) (Stage, error) {
	if u.CallbackAnswer() == AnswerNo {
		if c.session.Repeat {
			c.session.Repeat = false
			if err := c.sender.EditLastMessage(u.ChatID(), msgClosing); err != nil {
				return 0, err
			}
			return StageTerminal, nil
		}
		return c.askTrailer()
	}
	if err := c.sender.SendChoice(u.ChatID(), msgChooseTVDetails, c.session.names()); err != nil {
		return 0, err
	}
	return StageDisplayDetails, nil
}

func (c *TVShowConversation) displayDetails(u Update) (Stage, error) {
	chosen := u.MessageText()
	entity := c.session.find(chosen)
	if entity == nil {
		if err := c.sender.SendText(u.ChatID(), msgCouldNotUnderstand); err != nil {
			return 0, err
		}
		return StageDisplayDetails, nil
	}
	show, err := c.svc.Details(entity.EntityID())
	if err != nil {
		return 0, err
	}
	c.session.ChosenName = chosen
	c.session.Seasons = show.Seasons
	if err := c.sender.SendText(u.ChatID(), present.TVShowDetails(show)); err != nil {
		return 0, err
	}
	if len(show.Seasons) == 0 {
		return c.askTrailer()
	}
	return c.askSeason(msgQuerySeason)
}

func (c *TVShowConversation) askSeason(question string) (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, question); err != nil {
		return 0, err
	}
	return StageQuerySeasonConfirm, nil
}

func (c *TVShowConversation) querySeason(u Update) (Stage, error) {
	if u.CallbackAnswer() == AnswerNo {
		return c.askTrailer()
	}
	numbers := make([]string, 0, len(c.session.Seasons))
	for _, season := range c.session.Seasons {
		numbers = append(numbers, strconv.Itoa(season.SeasonNumber))
	}
	if err := c.sender.SendChoice(u.ChatID(), msgChooseSeason, numbers); err != nil {
		return 0, err
	}
	return StageDisplaySeason, nil
}

func (c *TVShowConversation) displaySeason(u Update) (Stage, error) {
	number, err := strconv.Atoi(u.MessageText())
	if err != nil {
		if err := c.sender.SendText(u.ChatID(), msgCouldNotUnderstand); err != nil {
			return 0, err
		}
		return StageDisplaySeason, nil
	}
	var season *models.Season
	for i := range c.session.Seasons {
		if c.session.Seasons[i].SeasonNumber == number {
			season = &c.session.Seasons[i]
			break
		}
	}
	if season == nil {
		if err := c.sender.SendText(u.ChatID(), msgCouldNotUnderstand); err != nil {
			return 0, err
		}
		return StageDisplaySeason, nil
	}
	c.session.ChosenSeason = number
	if err := c.sender.SendText(u.ChatID(), present.SeasonDetails(season)); err != nil {
		return 0, err
	}
	return c.askSeason(msgQueryMoreSeasons)
}

func (c *TVShowConversation) askTrailer() (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, msgQueryTVShowTrailer); err != nil {
		return 0, err
	}
	return StageQueryTrailerConfirm, nil
}

func (c *TVShowConversation) queryTrailer(u Update) (Stage, error) {
	if u.CallbackAnswer() == AnswerNo {
		return c.askMore()
	}
	if err := c.sender.SendChoice(u.ChatID(), msgChooseTVTrailer, c.session.names()); err != nil {
		return 0, err
	}
	return StageDisplayTrailer, nil
}

func (c *TVShowConversation) displayTrailer(u Update) (Stage, error) {
	chosen := u.MessageText()
	entity := c.session.find(chosen)
	if entity == nil {
		if err := c.sender.SendText(u.ChatID(), msgCouldNotUnderstand); err != nil {
			return 0, err
		}
		return StageDisplayTrailer, nil
	}
	trailerURL, err := c.svc.Trailer(entity.EntityID())
	if err != nil {
		return 0, err
	}
	text := fmt.Sprintf(msgTrailerNotFound, chosen)
	if trailerURL != "" {
		text = present.Trailer(chosen, trailerURL)
	}
	if err := c.sender.SendText(u.ChatID(), text); err != nil {
		return 0, err
	}
	return c.askMore()
}

func (c *TVShowConversation) askMore() (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, msgQueryMoreTVShows); err != nil {
		return 0, err
	}
	c.session.Repeat = true
	return StageQueryDetailsConfirm, nil
}
