package conversation

import (
	"fmt"

	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
	"github.com/GuyAfik/MrKnowledgeBot/internal/present"
	"github.com/GuyAfik/MrKnowledgeBot/pkg/logger"
)

// MovieBrowser is the slice of the movie service the conversation
// drives.
type MovieBrowser interface {
	FindByName(name string, limit int, sortBy string) ([]models.Entity, error)
	Discover(f discover.Filters, limit int) ([]models.Entity, error)
	Details(id int) (*models.Movie, error)
	Trailer(id int) (string, error)
}

// MovieConversation walks a user through search results, movie
// details and trailers.
type MovieConversation struct {
	svc     MovieBrowser
	sender  Sender
	log     logger.Logger
	session *Session
}

// NewMovieConversation starts a movie conversation for a chat.
func NewMovieConversation(chatID int64, svc MovieBrowser, sender Sender, log logger.Logger) *MovieConversation {
	return &MovieConversation{
		svc:     svc,
		sender:  sender,
		log:     log,
		session: newSession(chatID),
	}
}

// Stage reports the stage the conversation is waiting at.
func (c *MovieConversation) Stage() Stage { return c.session.Stage }

// Session exposes the session for tests.
func (c *MovieConversation) Session() *Session { return c.session }

// FindByName is the search entry point.
func (c *MovieConversation) FindByName(u Update, name string, limit int, sortBy string) Stage {
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
func (c *MovieConversation) Discover(u Update, f discover.Filters, limit int) Stage {
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
func (c *MovieConversation) Advance(u Update) Stage {
	return c.guard(u, func() (Stage, error) {
		switch c.session.Stage {
		case StageQueryDetailsConfirm:
			return c.queryDetails(u)
		case StageDisplayDetails:
			return c.displayDetails(u)
		case StageQueryTrailerConfirm:
			return c.queryTrailer(u)
		case StageDisplayTrailer:
			return c.displayTrailer(u)
		default:
			return StageTerminal, nil
		}
	})
}

// guard is the single point where an uncaught failure turns into a
// user-visible apology and a forced terminal transition.
func (c *MovieConversation) guard(u Update, fn func() (Stage, error)) Stage {
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

func (c *MovieConversation) displayResults(results []models.Entity) (Stage, error) {
	if len(results) == 0 {
		if err := c.sender.SendText(c.session.ChatID, msgMoviesNotFound); err != nil {
			return 0, err
		}
		return StageTerminal, nil
	}
	c.session.Results = results
	if err := c.sender.SendText(c.session.ChatID, fmt.Sprintf(msgMoviesFound, present.Names(results))); err != nil {
		return 0, err
	}
	return c.askDetails(msgQueryMovieDetails)
}

func (c *MovieConversation) askDetails(question string) (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, question); err != nil {
		return 0, err
	}
	return StageQueryDetailsConfirm, nil
}

func (c *MovieConversation) queryDetails(u Update) (Stage, error) {
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
	if err := c.sender.SendChoice(u.ChatID(), msgChooseMovieDetails, c.session.names()); err != nil {
		return 0, err
	}
	return StageDisplayDetails, nil
}

func (c *MovieConversation) displayDetails(u Update) (Stage, error) {
	chosen := u.MessageText()
	entity := c.session.find(chosen)
	if entity == nil {
		if err := c.sender.SendText(u.ChatID(), msgCouldNotUnderstand); err != nil {
			return 0, err
		}
		return StageDisplayDetails, nil
	}
	movie, err := c.svc.Details(entity.EntityID())
	if err != nil {
		return 0, err
	}
	c.session.ChosenName = chosen
	if err := c.sender.SendText(u.ChatID(), present.MovieDetails(movie)); err != nil {
		return 0, err
	}
	return c.askTrailer()
}

func (c *MovieConversation) askTrailer() (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, msgQueryMovieTrailer); err != nil {
		return 0, err
	}
	return StageQueryTrailerConfirm, nil
}

func (c *MovieConversation) queryTrailer(u Update) (Stage, error) {
	if u.CallbackAnswer() == AnswerNo {
		return c.askMore()
	}
	if err := c.sender.SendChoice(u.ChatID(), msgChooseMovieTrailer, c.session.names()); err != nil {
		return 0, err
	}
	return StageDisplayTrailer, nil
}

func (c *MovieConversation) displayTrailer(u Update) (Stage, error) {
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

// askMore starts the repeat loop back at the details confirmation.
func (c *MovieConversation) askMore() (Stage, error) {
	if err := c.sender.SendBinaryChoice(c.session.ChatID, msgQueryMoreMovies); err != nil {
		return 0, err
	}
	c.session.Repeat = true
	return StageQueryDetailsConfirm, nil
}
