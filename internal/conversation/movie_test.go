package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

func movieResults() []models.Entity {
	return []models.Entity{
		&models.Movie{ID: 1, Title: "The Great Escape", Popularity: 90},
		&models.Movie{ID: 2, Title: "Escape from Alcatraz", Popularity: 70},
	}
}

func startMovieConversation(t *testing.T, browser *fakeMovieBrowser) (*MovieConversation, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	conv := NewMovieConversation(1, browser, sender, testLog())
	stage := conv.FindByName(update{chat: 1}, "escape", 5, "popularity")
	require.Equal(t, StageQueryDetailsConfirm, stage)
	return conv, sender
}

func TestMovieSearchShowsResultsAndAsksForDetails(t *testing.T) {
	browser := &fakeMovieBrowser{results: movieResults()}
	_, sender := startMovieConversation(t, browser)

	require.Len(t, sender.sent, 3)
	assert.Equal(t, msgHangOn, sender.sent[0].text)
	assert.Contains(t, sender.sent[1].text, "The Great Escape")
	assert.Contains(t, sender.sent[1].text, "Escape from Alcatraz")
	assert.Equal(t, "binary", sender.sent[2].kind)
	assert.Equal(t, msgQueryMovieDetails, sender.sent[2].text)
}

func TestMovieSearchWithoutResultsEndsConversation(t *testing.T) {
	sender := &fakeSender{}
	conv := NewMovieConversation(1, &fakeMovieBrowser{}, sender, testLog())

	stage := conv.FindByName(update{chat: 1}, "zzzz", 5, "")
	assert.Equal(t, StageTerminal, stage)
	assert.Equal(t, msgMoviesNotFound, sender.last().text)
}

func TestMovieDetailsFlow(t *testing.T) {
	browser := &fakeMovieBrowser{
		results: movieResults(),
		details: map[int]*models.Movie{
			1: {ID: 1, Title: "The Great Escape", Overview: "POWs dig tunnels.", Runtime: 172 * time.Minute},
		},
	}
	conv, sender := startMovieConversation(t, browser)

	// Yes -> the bot offers the found names as a choice.
	stage := conv.Advance(answer(AnswerYes))
	require.Equal(t, StageDisplayDetails, stage)
	assert.Equal(t, "choice", sender.last().kind)
	assert.Equal(t, []string{"The Great Escape", "Escape from Alcatraz"}, sender.last().options)

	// Picking a name shows its details and moves on to the trailer
	// question.
	stage = conv.Advance(reply("The Great Escape"))
	require.Equal(t, StageQueryTrailerConfirm, stage)
	require.Len(t, sender.sent, 6)
	assert.Contains(t, sender.sent[4].text, "POWs dig tunnels.")
	assert.Equal(t, msgQueryMovieTrailer, sender.last().text)
}

func TestMovieUnknownNameRepromptsWithoutLeavingStage(t *testing.T) {
	browser := &fakeMovieBrowser{results: movieResults()}
	conv, sender := startMovieConversation(t, browser)

	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("No Such Movie"))

	assert.Equal(t, StageDisplayDetails, stage)
	assert.Equal(t, msgCouldNotUnderstand, sender.last().text)

	// Result names match exactly, not case-insensitively.
	stage = conv.Advance(reply("the great escape"))
	assert.Equal(t, StageDisplayDetails, stage)
}

func TestMovieDecliningDetailsFirstTimeOffersTrailer(t *testing.T) {
	browser := &fakeMovieBrowser{results: movieResults()}
	conv, sender := startMovieConversation(t, browser)

	stage := conv.Advance(answer(AnswerNo))
	assert.Equal(t, StageQueryTrailerConfirm, stage)
	assert.Equal(t, msgQueryMovieTrailer, sender.last().text)
}

func TestMovieDecliningOnRepeatClosesConversation(t *testing.T) {
	browser := &fakeMovieBrowser{
		results: movieResults(),
		trailer: "https://www.youtube.com/watch?v=abc",
	}
	conv, sender := startMovieConversation(t, browser)

	conv.Advance(answer(AnswerNo))          // no details -> trailer question
	conv.Advance(answer(AnswerYes))         // yes trailer -> choose name
	stage := conv.Advance(reply("The Great Escape"))
	require.Equal(t, StageQueryDetailsConfirm, stage)
	assert.True(t, conv.Session().Repeat)

	// Declining on the repeat round ends the conversation with the
	// closing message edited over the last prompt.
	stage = conv.Advance(answer(AnswerNo))
	assert.Equal(t, StageTerminal, stage)
	assert.False(t, conv.Session().Repeat)
	assert.Equal(t, "edit", sender.last().kind)
	assert.Equal(t, msgClosing, sender.last().text)
}

func TestMovieTrailerFound(t *testing.T) {
	browser := &fakeMovieBrowser{
		results: movieResults(),
		trailer: "https://www.youtube.com/watch?v=abc",
	}
	conv, sender := startMovieConversation(t, browser)

	conv.Advance(answer(AnswerNo))
	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("Escape from Alcatraz"))

	require.Equal(t, StageQueryDetailsConfirm, stage)
	assert.Equal(t, "[Escape from Alcatraz - (Trailer)](https://www.youtube.com/watch?v=abc)", sender.sent[len(sender.sent)-2].text)
}

func TestMovieTrailerMissing(t *testing.T) {
	browser := &fakeMovieBrowser{results: movieResults()}
	conv, sender := startMovieConversation(t, browser)

	conv.Advance(answer(AnswerNo))
	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("Escape from Alcatraz"))

	// A missing trailer is reported and the repeat loop still starts.
	require.Equal(t, StageQueryDetailsConfirm, stage)
	assert.Equal(t, `Could not find trailer for "Escape from Alcatraz"`, sender.sent[len(sender.sent)-2].text)
}

func TestMovieServiceFailureApologizesAndTerminates(t *testing.T) {
	sender := &fakeSender{}
	browser := &fakeMovieBrowser{err: errors.New("status 500")}
	conv := NewMovieConversation(1, browser, sender, testLog())

	stage := conv.FindByName(update{chat: 1}, "escape", 5, "")
	assert.Equal(t, StageTerminal, stage)
	assert.Equal(t, msgApology, sender.last().text)
	// The apology never leaks the underlying failure.
	assert.NotContains(t, sender.last().text, "500")
}
