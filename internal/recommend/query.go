package recommend

import (
	"net/url"
	"strings"

	"github.com/justestif/go-spotify-mood-finder/internal/mood"
)

// BuildQuery joins rawInput (if non-empty) and the profile tags with single
// spaces and percent-encodes the result for use as the q parameter.
// Tags keep their order and are neither deduplicated nor truncated.
func BuildQuery(p mood.Profile, rawInput string) string {
	parts := make([]string, 0, len(p.Tags)+1)
	if rawInput != "" {
		parts = append(parts, rawInput)
	}
	parts = append(parts, p.Tags...)

	return encodeComponent(strings.Join(parts, " "))
}

// encodeComponent percent-encodes s with spaces as %20 rather than +.
// Unlike encodeURIComponent it also escapes !'()*, which Spotify accepts.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
