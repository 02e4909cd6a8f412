package conversation

import "github.com/GuyAfik/MrKnowledgeBot/internal/models"

// Session is the per-chat state a conversation mutates while it runs.
// It is created at the entry command and discarded at the terminal
// stage; no other chat's handler ever touches it.
type Session struct {
	ChatID       int64
	Stage        Stage
	Results      []models.Entity
	ChosenName   string
	ChosenSeason int
	Seasons      []models.Season
	Repeat       bool
}

// newSession starts a session at the entry of a conversation.
func newSession(chatID int64) *Session {
	return &Session{ChatID: chatID}
}

// find returns the stored entity exactly matching a display name, or
// nil. A miss is a re-prompt, never an error.
func (s *Session) find(name string) models.Entity {
	for _, e := range s.Results {
		if e.DisplayName() == name {
			return e
		}
	}
	return nil
}

// names lists the display names of the stored result set.
func (s *Session) names() []string {
	names := make([]string, 0, len(s.Results))
	for _, e := range s.Results {
		names = append(names, e.DisplayName())
	}
	return names
}
