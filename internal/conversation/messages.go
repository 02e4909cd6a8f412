package conversation

// Fixed user-facing texts. The apology deliberately carries no error
// internals.
const (
	msgHangOn = "Hang on while I am thinking, a bot needs to think too 🤓..."

	msgMoviesFound     = "Found the following movies for you 😀\n\n%s"
	msgMoviesNotFound  = "Could not find any movies for you 😞"
	msgTVShowsFound    = "Found the following tv-shows for you 😀\n\n%s"
	msgTVShowsNotFound = "Could not find any tv-shows for you 😞"

	msgQueryMovieDetails  = "Would you like to get details of one of the movies 🎬?"
	msgQueryTVShowDetails = "Would you like to get a general information about one of the tv-shows 🎬?"
	msgChooseMovieDetails = "Please choose a movie from the list to get its overview 🎬"
	msgChooseTVDetails    = "Please choose a tv-show from the list to get its overview 🎬"

	msgQuerySeason      = "Would you like to get information about one of the seasons 🎬?"
	msgQueryMoreSeasons = "Would you like to get information about another season 🎬?"
	msgChooseSeason     = "Please choose a season number from the list 🎬"

	msgQueryMovieTrailer  = "Would you like to view a trailer for one of the movies? 🎬"
	msgQueryTVShowTrailer = "Would you like to view a trailer for one of the tv-shows? 🎬"
	msgChooseMovieTrailer = "Please choose a movie from the list to get its trailer 🎬"
	msgChooseTVTrailer    = "Please choose a tv-show from the list to get its trailer 🎬"
	msgTrailerNotFound    = `Could not find trailer for "%s"`

	msgQueryMoreMovies  = "Would you like to get details of any other of the found movies? 🎬"
	msgQueryMoreTVShows = "Would you like to get details of any other of the found tv-shows? 🎬"

	msgCouldNotUnderstand = "I could not understand which one you meant 🤔, please choose again from the list."
	msgClosing            = "Thank you! If you want to see additional commands, run /help"
	msgApology            = "I am terribly sorry, something went wrong on my side 🙏 please try again later."
)
