package recommend

import (
	"net/url"
	"testing"

	"github.com/justestif/go-spotify-mood-finder/internal/mood"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		profile  mood.Profile
		rawInput string
		want     string
	}{
		{
			name:     "raw input then tags",
			profile:  mood.Profile{Tags: []string{"Relaxing", "Meditative"}},
			rawInput: "so calm",
			want:     "so%20calm%20Relaxing%20Meditative",
		},
		{
			name:    "absent raw input",
			profile: mood.Profile{Tags: []string{"Hip Hop", "Rap"}},
			want:    "Hip%20Hop%20Rap",
		},
		{
			name:    "reserved characters escaped",
			profile: mood.Profile{Tags: []string{"R&B", "Soul"}},
			want:    "R%26B%20Soul",
		},
		{
			name:     "duplicates preserved",
			profile:  mood.Profile{Tags: []string{"lofi", "Music"}},
			rawInput: "lofi",
			want:     "lofi%20lofi%20Music",
		},
		{
			name:     "plus sign kept distinct from space",
			profile:  mood.Profile{Tags: []string{"a+b"}},
			rawInput: "c d",
			want:     "c%20d%20a%2Bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.profile, tt.rawInput); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQueryPreservesTagOrder(t *testing.T) {
	profile := mood.ClassifyText("angry")

	got, err := url.PathUnescape(BuildQuery(profile, "angry"))
	if err != nil {
		t.Fatalf("PathUnescape() error = %v", err)
	}

	want := "angry Heavy Metal Hard Rock Aggressive Intense Powerful"
	if got != want {
		t.Errorf("decoded query = %q, want %q", got, want)
	}
}
