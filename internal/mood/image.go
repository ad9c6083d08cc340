package mood

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// ImageSignals are the cheap facts known about an uploaded image.
// The pixels themselves are never inspected.
type ImageSignals struct {
	Filename  string       `json:"filename"`
	SizeBytes int64        `json:"sizeBytes"`
	Hour      int          `json:"hour"`    // 0..23
	Weekday   time.Weekday `json:"weekday"` // 0 = Sunday
}

// SignalsFrom derives signals for an upload received at now.
func SignalsFrom(filename string, sizeBytes int64, now time.Time) ImageSignals {
	return ImageSignals{
		Filename:  filename,
		SizeBytes: sizeBytes,
		Hour:      now.Hour(),
		Weekday:   now.Weekday(),
	}
}

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// NewRandomPicker returns a Picker seeded from the current time.
func NewRandomPicker() Picker {
	seed := uint64(time.Now().UnixNano())
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed>>32|1))}
}

// imageRule matches on filename keywords or, when set, on a time predicate.
type imageRule struct {
	keywords []string
	when     func(ImageSignals) bool
	profile  Profile
}

func (r imageRule) matches(filename string, s ImageSignals) bool {
	for _, k := range r.keywords {
		if strings.Contains(filename, k) {
			return true
		}
	}
	return r.when != nil && r.when(s)
}

var imageRules = []imageRule{
	{
		keywords: []string{"sunset", "evening"},
		when:     func(s ImageSignals) bool { return s.Hour > 18 },
		profile: Profile{
			Label:  "Golden hour serenity",
			Tags:   []string{"peaceful", "warm", "contemplative", "nostalgic", "dreamy"},
			Color:  "Golden warm tones",
			Energy: Medium,
		},
	},
	{
		keywords: []string{"city", "urban", "street"},
		profile: Profile{
			Label:  "Urban energy and motion",
			Tags:   []string{"dynamic", "bustling", "modern", "rhythmic", "vibrant"},
			Color:  "Cool urban blues",
			Energy: High,
		},
	},
	{
		keywords: []string{"nature", "forest", "mountain"},
		profile: Profile{
			Label:  "Natural tranquility",
			Tags:   []string{"organic", "fresh", "grounding", "spacious", "pure"},
			Color:  "Earth greens",
			Energy: Low,
		},
	},
	{
		keywords: []string{"beach", "ocean", "water"},
		profile: Profile{
			Label:  "Oceanic flow and freedom",
			Tags:   []string{"flowing", "expansive", "refreshing", "meditative", "fluid"},
			Color:  "Ocean blues",
			Energy: Medium,
		},
	},
	{
		when: func(s ImageSignals) bool { return s.Hour >= 6 && s.Hour < 12 },
		profile: Profile{
			Label:  "Morning energy and optimism",
			Tags:   []string{"fresh", "energetic", "hopeful", "bright", "awakening"},
			Color:  "Bright morning light",
			Energy: High,
		},
	},
	{
		when: func(s ImageSignals) bool { return s.Weekday == time.Saturday || s.Weekday == time.Sunday },
		profile: Profile{
			Label:  "Weekend relaxation vibes",
			Tags:   []string{"laid-back", "comfortable", "easygoing", "casual", "content"},
			Color:  "Soft comfortable tones",
			Energy: Medium,
		},
	},
}

// defaultImageProfiles is sampled uniformly when no rule matches.
var defaultImageProfiles = []Profile{
	{
		Label:  "Artistic inspiration and creativity",
		Tags:   []string{"creative", "expressive", "imaginative", "flowing", "colorful"},
		Color:  "Vibrant artistic palette",
		Energy: High,
	},
	{
		Label:  "Minimalist elegance and focus",
		Tags:   []string{"clean", "focused", "sophisticated", "calm", "precise"},
		Color:  "Monochromatic elegance",
		Energy: Medium,
	},
	{
		Label:  "Cozy intimate atmosphere",
		Tags:   []string{"warm", "intimate", "comforting", "personal", "gentle"},
		Color:  "Warm amber tones",
		Energy: Low,
	},
	{
		Label:  "Adventure and exploration spirit",
		Tags:   []string{"adventurous", "bold", "exploring", "dynamic", "exciting"},
		Color:  "Bold adventure colors",
		Energy: VeryHigh,
	},
}

// ImageClassifier guesses a mood for an image from its context.
//
// The result is a heuristic: only the filename and the upload time are
// considered, never the image content. Rules are checked in order (filename
// keywords, then time of day, then weekday) and the first match wins. When
// nothing matches, one of four default profiles is chosen by the Picker.
type ImageClassifier struct {
	picker Picker
}

// NewImageClassifier creates a classifier. A nil picker uses NewRandomPicker.
func NewImageClassifier(picker Picker) *ImageClassifier {
	if picker == nil {
		picker = NewRandomPicker()
	}
	return &ImageClassifier{picker: picker}
}

// Classify returns the profile for the given signals. It never fails.
func (c *ImageClassifier) Classify(s ImageSignals) Profile {
	filename := strings.ToLower(s.Filename)
	for _, rule := range imageRules {
		if rule.matches(filename, s) {
			return rule.profile.clone()
		}
	}

	i := c.picker.IntN(len(defaultImageProfiles))
	return defaultImageProfiles[i].clone()
}
