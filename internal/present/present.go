// Package present formats entities into the text blocks the bot sends
// to users. Absent fields are omitted, never rendered empty.
package present

import (
	"fmt"
	"strings"

	"github.com/GuyAfik/MrKnowledgeBot/internal/models"
)

// Names renders a result set as one display name per line.
func Names(entities []models.Entity) string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.DisplayName())
	}
	return strings.Join(names, "\n")
}

// MovieDetails renders the detail block for a movie.
func MovieDetails(m *models.Movie) string {
	var b strings.Builder
	if m.Overview != "" {
		fmt.Fprintf(&b, "*%s - (Overview)*\n\n%s", m.Title, m.Overview)
	}
	if runtime := models.FormatRuntime(m.Runtime); runtime != "" {
		appendField(&b, "Duration", runtime)
	}
	appendField(&b, "Homepage", m.Homepage)
	appendField(&b, "Status", m.Status)
	appendField(&b, "Release date", m.ReleaseDate)
	return b.String()
}

// TVShowDetails renders the detail block for a TV show.
func TVShowDetails(t *models.TVShow) string {
	var b strings.Builder
	if t.Overview != "" {
		fmt.Fprintf(&b, "*%s - (Overview)*\n\n%s", t.Name, t.Overview)
	}
	appendField(&b, "Homepage", t.Homepage)
	appendField(&b, "Status", t.Status)
	appendField(&b, "Release date", t.FirstAirDate)
	if len(t.Seasons) > 0 {
		appendField(&b, "Number Of Seasons", fmt.Sprintf("%d", len(t.Seasons)))
	}
	if t.EpisodeCount > 0 {
		appendField(&b, "Number Of Episodes", fmt.Sprintf("%d", t.EpisodeCount))
	}
	return b.String()
}

// SeasonDetails renders the detail block for a single season.
func SeasonDetails(s *models.Season) string {
	var b strings.Builder
	if s.Overview != "" {
		fmt.Fprintf(&b, "*%s - (Overview)*\n\n%s", s.Name, s.Overview)
	}
	if s.EpisodeCount > 0 {
		appendField(&b, "Number Of Episodes", fmt.Sprintf("%d", s.EpisodeCount))
	}
	appendField(&b, "Air date", s.AirDate)
	return b.String()
}

// Trailer renders a markdown link to a trailer.
func Trailer(name, url string) string {
	return fmt.Sprintf("[%s - (Trailer)](%s)", name, url)
}

// GenreList renders genre names one per line.
func GenreList(names []string) string {
	return strings.Join(names, "\n")
}

func appendField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	fmt.Fprintf(b, "*%s:* %s", label, value)
}
