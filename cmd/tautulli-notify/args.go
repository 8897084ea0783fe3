package main

import (
	"flag"
	"io"

	"github.com/slipstream/tautulli-notify/internal/notification/types"
)

// stringFlag binds a Tautulli script argument to a request field. Each flag is
// registered under its short name and, when set, its long alias.
type stringFlag struct {
	short  string
	long   string
	target *string
	usage  string
}

// parseArgs reads the Tautulli script arguments. Tautulli passes single-dash
// multi-letter flags such as -servn, which the flag package accepts as is.
func parseArgs(args []string, output io.Writer) (types.Request, string, error) {
	var req types.Request
	var mediaType, configPath string

	fs := flag.NewFlagSet("tautulli-notify", flag.ContinueOnError)
	fs.SetOutput(output)

	flags := []stringFlag{
		{"servn", "server_name", &req.ServerName, "Plex server name"},
		{"ds", "datestamp", &req.Datestamp, "Date stamp"},
		{"med", "media_type", &mediaType, "Media type (movie, episode, show, season)"},
		{"tt", "title", &req.Title, "Title"},
		{"sn", "show_name", &req.ShowName, "Show name"},
		{"ena", "episode_name", &req.EpisodeName, "Episode name"},
		{"ssn", "season_num", &req.SeasonNum, "Season number"},
		{"enu", "episode_num", &req.EpisodeNum, "Episode number"},
		{"dur", "duration", &req.Duration, "Duration in minutes"},
		{"dt", "duration_time", &req.DurationTime, "Duration as time"},
		{"genres", "", &req.Genres, "Genres"},
		{"rating", "", &req.Rating, "Rating"},
		{"summary", "", &req.Summary, "Summary"},
		{"year", "", &req.Year, "Year"},
		{"lname", "library_name", &req.LibraryName, "Library name"},
		{"pos", "poster", &req.Poster, "Poster URL"},
		{"cr", "content_rating", &req.ContentRating, "Content rating"},
		{"st", "studio", &req.Studio, "Studio"},
		{"di", "directors", &req.Directors, "Directors"},
		{"ac", "actors", &req.Actors, "Actors"},
		{"vw", "video_width", &req.VideoWidth, "Video width"},
		{"vh", "video_height", &req.VideoHeight, "Video height"},
		{"vr", "video_resolution", &req.VideoResolution, "Video resolution"},
		{"fs", "file_size", &req.FileSize, "File size"},
		{"sy", "show_year", &req.ShowYear, "Show year"},
		{"rk", "rating_key", &req.RatingKey, "Plex rating key, used for the audio track lookup"},
	}
	for _, f := range flags {
		fs.StringVar(f.target, f.short, "", f.usage)
		if f.long != "" {
			fs.StringVar(f.target, f.long, "", f.usage)
		}
	}

	fs.BoolVar(&req.LogEnabled, "log", false, "Write to the log file")
	fs.BoolVar(&req.LogEnabled, "log_enabled", false, "Write to the log file")
	fs.BoolVar(&req.AuthEnabled, "auth", false, "Send the Authorization header to the WhatsApp bridge")
	fs.StringVar(&configPath, "config", "", "Path to config file")

	if err := fs.Parse(args); err != nil {
		return types.Request{}, "", err
	}

	req.MediaType = types.MediaType(mediaType)
	return req, configPath, nil
}
