package bot

import (
	"strconv"
	"strings"
)

// Args holds the parsed arguments of an entry command. Zero values
// mean "not provided".
type Args struct {
	Name          string
	Limit         int
	SortBy        string
	BeforeDate    string
	AfterDate     string
	WithGenres    []string
	WithoutGenres []string
	BeforeRuntime int
	AfterRuntime  int
	WithStatus    string
	NotReleased   bool
}

// ParseCommand splits a "/command key=value ..." message into the
// command name and its arguments. Values may be quoted to carry
// spaces; list values are comma-separated. Unknown keys are ignored.
func ParseCommand(text string) (string, Args) {
	fields := splitQuoted(strings.TrimPrefix(text, "/"))
	if len(fields) == 0 {
		return "", Args{}
	}
	name := fields[0]

	var args Args
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "name", "n":
			args.Name = value
		case "limit", "l":
			if parsed, err := strconv.Atoi(value); err == nil {
				args.Limit = parsed
			}
		case "sort_by", "s":
			args.SortBy = value
		case "before_date":
			args.BeforeDate = value
		case "after_date":
			args.AfterDate = value
		case "with_genres":
			args.WithGenres = splitList(value)
		case "without_genres":
			args.WithoutGenres = splitList(value)
		case "before_runtime":
			if parsed, err := strconv.Atoi(value); err == nil {
				args.BeforeRuntime = parsed
			}
		case "after_runtime":
			if parsed, err := strconv.Atoi(value); err == nil {
				args.AfterRuntime = parsed
			}
		case "with_status":
			args.WithStatus = value
		case "not_released":
			if parsed, err := strconv.ParseBool(value); err == nil {
				args.NotReleased = parsed
			}
		}
	}
	return name, args
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// splitQuoted splits on spaces while keeping "quoted values" (and
// key="quoted values") intact.
func splitQuoted(s string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}
	return fields
}
