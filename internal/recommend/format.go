package recommend

import (
	"fmt"
	"strings"

	"github.com/zmb3/spotify/v2"
)

// PlaceholderCover is used when a catalog record has no album art.
const PlaceholderCover = "/placeholder.svg"

// Track is a display-ready catalog entry.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`   // comma-separated, catalog order
	Duration string `json:"duration"` // m:ss
	Cover    string `json:"cover"`
	URI      string `json:"uri,omitempty"` // empty when the record is not playable
}

// Linkable reports whether the track has a playable external reference.
func (t Track) Linkable() bool {
	return t.URI != ""
}

// FormatTracks converts catalog records to tracks, one per record, in order.
// Records with missing art or URI are kept with placeholder values.
func FormatTracks(records []spotify.FullTrack) []Track {
	tracks := make([]Track, len(records))
	for i, r := range records {
		tracks[i] = formatTrack(r)
	}
	return tracks
}

func formatTrack(r spotify.FullTrack) Track {
	artists := make([]string, len(r.Artists))
	for i, a := range r.Artists {
		artists[i] = a.Name
	}

	cover := PlaceholderCover
	if len(r.Album.Images) > 0 && r.Album.Images[0].URL != "" {
		cover = r.Album.Images[0].URL
	}

	return Track{
		ID:       r.ID.String(),
		Title:    r.Name,
		Artist:   strings.Join(artists, ", "),
		Duration: formatDuration(int(r.Duration)),
		Cover:    cover,
		URI:      string(r.URI),
	}
}

// formatDuration renders milliseconds as m:ss. Minutes are not capped at 59.
func formatDuration(ms int) string {
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
