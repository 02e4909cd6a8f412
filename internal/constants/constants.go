// Package constants defines application-wide constants and default values.
package constants

const (
	// Bot metadata
	BotName        = "MrKnowledgeBot"
	BotDescription = "Conversational movie and TV show discovery over The Movie DB"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultBaseURL  = "https://api.themoviedb.org/3"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting against The Movie DB
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity

	// Result aggregation
	DefaultPageLimit   = 500 // pagination cap per search/discover call
	DefaultResultLimit = 20  // results shown per command
	MaxResultLimit     = 100 // hard ceiling a command may request
)
