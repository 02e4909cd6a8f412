package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuyAfik/MrKnowledgeBot/internal/discover"
	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

type fakeTVShowBrowser struct {
	results []models.Entity
	details map[int]*models.TVShow
	trailer string
	err     error
}

func (f *fakeTVShowBrowser) FindByName(name string, limit int, sortBy string) ([]models.Entity, error) {
	return f.results, f.err
}

func (f *fakeTVShowBrowser) Discover(filters discover.Filters, limit int) ([]models.Entity, error) {
	return f.results, f.err
}

func (f *fakeTVShowBrowser) Details(id int) (*models.TVShow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.details[id], nil
}

func (f *fakeTVShowBrowser) Trailer(id int) (string, error) {
	return f.trailer, f.err
}

func tvBrowserWithSeasons() *fakeTVShowBrowser {
	return &fakeTVShowBrowser{
		results: []models.Entity{&models.TVShow{ID: 100, Name: "Breaking Bad"}},
		details: map[int]*models.TVShow{
			100: {
				ID:           100,
				Name:         "Breaking Bad",
				Overview:     "A chemistry teacher turns to crime.",
				EpisodeCount: 62,
				Seasons: []models.Season{
					{ID: 1, Name: "Season 1", EpisodeCount: 7, AirDate: "2008-01-20", SeasonNumber: 1},
					{ID: 2, Name: "Season 2", EpisodeCount: 13, AirDate: "2009-03-08", SeasonNumber: 2},
				},
			},
		},
	}
}

func startTVConversation(t *testing.T, browser *fakeTVShowBrowser) (*TVShowConversation, *fakeSender) {
	t.Helper()
	sender := &fakeSender{}
	conv := NewTVShowConversation(1, browser, sender, testLog())
	stage := conv.FindByName(update{chat: 1}, "breaking", 5, "")
	require.Equal(t, StageQueryDetailsConfirm, stage)
	return conv, sender
}

func TestTVShowDetailsLeadToSeasonQuestion(t *testing.T) {
	conv, sender := startTVConversation(t, tvBrowserWithSeasons())

	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("Breaking Bad"))

	require.Equal(t, StageQuerySeasonConfirm, stage)
	assert.Equal(t, msgQuerySeason, sender.last().text)
	assert.Len(t, conv.Session().Seasons, 2)
}

func TestTVShowWithoutSeasonsSkipsToTrailer(t *testing.T) {
	browser := tvBrowserWithSeasons()
	browser.details[100].Seasons = nil
	conv, sender := startTVConversation(t, browser)

	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("Breaking Bad"))

	assert.Equal(t, StageQueryTrailerConfirm, stage)
	assert.Equal(t, msgQueryTVShowTrailer, sender.last().text)
}

func TestTVSeasonChoiceOffersSeasonNumbers(t *testing.T) {
	conv, sender := startTVConversation(t, tvBrowserWithSeasons())

	conv.Advance(answer(AnswerYes))
	conv.Advance(reply("Breaking Bad"))
	stage := conv.Advance(answer(AnswerYes))

	require.Equal(t, StageDisplaySeason, stage)
	assert.Equal(t, "choice", sender.last().kind)
	assert.Equal(t, []string{"1", "2"}, sender.last().options)
}

func TestTVSeasonDetailsLoop(t *testing.T) {
	conv, sender := startTVConversation(t, tvBrowserWithSeasons())

	conv.Advance(answer(AnswerYes))
	conv.Advance(reply("Breaking Bad"))
	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("2"))

	// Season details are shown, then the bot offers another season.
	require.Equal(t, StageQuerySeasonConfirm, stage)
	assert.Equal(t, 2, conv.Session().ChosenSeason)
	assert.Contains(t, sender.sent[len(sender.sent)-2].text, "13")
	assert.Equal(t, msgQueryMoreSeasons, sender.last().text)
}

func TestTVSeasonBadChoiceReprompts(t *testing.T) {
	conv, sender := startTVConversation(t, tvBrowserWithSeasons())

	conv.Advance(answer(AnswerYes))
	conv.Advance(reply("Breaking Bad"))
	conv.Advance(answer(AnswerYes))

	// Not a number at all.
	stage := conv.Advance(reply("second"))
	assert.Equal(t, StageDisplaySeason, stage)
	assert.Equal(t, msgCouldNotUnderstand, sender.last().text)

	// A number outside the season list.
	stage = conv.Advance(reply("9"))
	assert.Equal(t, StageDisplaySeason, stage)
	assert.Equal(t, msgCouldNotUnderstand, sender.last().text)
}

func TestTVDecliningSeasonsMovesToTrailer(t *testing.T) {
	conv, sender := startTVConversation(t, tvBrowserWithSeasons())

	conv.Advance(answer(AnswerYes))
	conv.Advance(reply("Breaking Bad"))
	stage := conv.Advance(answer(AnswerNo))

	assert.Equal(t, StageQueryTrailerConfirm, stage)
	assert.Equal(t, msgQueryTVShowTrailer, sender.last().text)
}

func TestTVTrailerAndRepeatLoop(t *testing.T) {
	browser := tvBrowserWithSeasons()
	browser.trailer = "https://www.youtube.com/watch?v=tv1"
	conv, sender := startTVConversation(t, browser)

	conv.Advance(answer(AnswerNo)) // no details -> trailer question
	conv.Advance(answer(AnswerYes))
	stage := conv.Advance(reply("Breaking Bad"))

	require.Equal(t, StageQueryDetailsConfirm, stage)
	assert.True(t, conv.Session().Repeat)
	assert.Equal(t, "[Breaking Bad - (Trailer)](https://www.youtube.com/watch?v=tv1)", sender.sent[len(sender.sent)-2].text)

	stage = conv.Advance(answer(AnswerNo))
	assert.Equal(t, StageTerminal, stage)
	assert.Equal(t, msgClosing, sender.last().text)
}

func TestTVSearchWithoutResultsEndsConversation(t *testing.T) {
	sender := &fakeSender{}
	conv := NewTVShowConversation(1, &fakeTVShowBrowser{}, sender, testLog())

	stage := conv.FindByName(update{chat: 1}, "zzzz", 5, "")
	assert.Equal(t, StageTerminal, stage)
	assert.Equal(t, msgTVShowsNotFound, sender.last().text)
}
