// Package conversation implements the stateful multi-turn flows that
// walk a user from a search to details, seasons and trailers. Each
// chat owns exactly one session; state lives only for the
// conversation's duration.
package conversation

import "fmt"

// Stage is a point in a conversation awaiting a specific kind of user
// input.
type Stage int

const (
	// StageTerminal means the conversation is over and its session
	// can be discarded.
	StageTerminal Stage = iota
	StageQueryDetailsConfirm
	StageDisplayDetails
	StageQuerySeasonConfirm
	StageDisplaySeason
	StageQueryTrailerConfirm
	StageDisplayTrailer
)

func (s Stage) String() string {
	switch s {
	case StageTerminal:
		return "terminal"
	case StageQueryDetailsConfirm:
		return "query-details-confirm"
	case StageDisplayDetails:
		return "display-details"
	case StageQuerySeasonConfirm:
		return "query-season-confirm"
	case StageDisplaySeason:
		return "display-season"
	case StageQueryTrailerConfirm:
		return "query-trailer-confirm"
	case StageDisplayTrailer:
		return "display-trailer"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Update is an inbound event from the chat transport: a command, a
// free-text reply or a button press.
type Update interface {
	ChatID() int64
	MessageText() string
	CallbackAnswer() string
}

// Sender is the outbound half of the chat transport.
type Sender interface {
	SendText(chatID int64, text string) error
	SendChoice(chatID int64, text string, options []string) error
	SendBinaryChoice(chatID int64, text string) error
	EditLastMessage(chatID int64, text string) error
}

// Answers carried by binary-choice button presses.
const (
	AnswerYes = "y"
	AnswerNo  = "n"
)
