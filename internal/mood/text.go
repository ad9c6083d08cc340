package mood

import "strings"

// textRule maps any of its triggers to a fixed profile.
type textRule struct {
	triggers []string
	profile  Profile
}

// matches reports whether the case-folded input contains any trigger.
func (r textRule) matches(lowered string) bool {
	for _, t := range r.triggers {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// textRules is evaluated top to bottom and the first match wins.
// Vocabulary overlaps between rules ("pumped" vs "happy"), so the order
// here decides ties and must not be changed.
var textRules = []textRule{
	{
		triggers: []string{"angry", "rage", "enraged", "furious", "mad"},
		profile: Profile{
			Label:  "Angry & Intense",
			Tags:   []string{"Heavy Metal", "Hard Rock", "Aggressive", "Intense", "Powerful"},
			Color:  "Fiery Red",
			Energy: VeryHigh,
		},
	},
	{
		triggers: []string{"anxious", "nervous", "stressed", "worried"},
		profile: Profile{
			Label:  "Anxious & Tense",
			Tags:   []string{"Alternative", "Indie", "Emotional", "Raw"},
			Color:  "Dark Gray",
			Energy: High,
		},
	},
	{
		triggers: []string{"romantic", "love", "crush"},
		profile: Profile{
			Label:  "Romantic & Loving",
			Tags:   []string{"Love Songs", "R&B", "Soul", "Romantic"},
			Color:  "Soft Pink",
			Energy: Medium,
		},
	},
	{
		triggers: []string{"nostalgic", "memories", "throwback"},
		profile: Profile{
			Label:  "Nostalgic & Reflective",
			Tags:   []string{"Classic", "Retro", "Throwback", "Memories"},
			Color:  "Warm Amber",
			Energy: Medium,
		},
	},
	{
		triggers: []string{"confident", "powerful", "boss"},
		profile: Profile{
			Label:  "Confident & Empowered",
			Tags:   []string{"Hip Hop", "Rap", "Confident", "Bold"},
			Color:  "Gold",
			Energy: High,
		},
	},
	{
		triggers: []string{"chill", "vibe", "laid back"},
		profile: Profile{
			Label:  "Chill & Laid Back",
			Tags:   []string{"Lo-fi", "Chill", "Smooth", "Relaxed"},
			Color:  "Teal",
			Energy: Low,
		},
	},
	{
		triggers: []string{"party", "dance", "club"},
		profile: Profile{
			Label:  "Party & Dance",
			Tags:   []string{"EDM", "Dance", "Party", "Electronic"},
			Color:  "Neon Purple",
			Energy: VeryHigh,
		},
	},
	{
		triggers: []string{"happy", "joy", "excited"},
		profile: Profile{
			Label:  "Joyful & Uplifting",
			Tags:   []string{"Happy", "Energetic", "Positive", "Upbeat"},
			Color:  "Bright Yellow",
			Energy: High,
		},
	},
	{
		triggers: []string{"sad", "melancholic", "down", "depressed"},
		profile: Profile{
			Label:  "Melancholic & Reflective",
			Tags:   []string{"Sad", "Emotional", "Introspective", "Mellow"},
			Color:  "Deep Blue",
			Energy: Low,
		},
	},
	{
		triggers: []string{"calm", "relax", "peaceful", "serene"},
		profile: Profile{
			Label:  "Calm & Peaceful",
			Tags:   []string{"Relaxing", "Meditative", "Gentle", "Soothing"},
			Color:  "Soft Blue",
			Energy: Low,
		},
	},
	{
		triggers: []string{"energetic", "pump", "workout", "motivated"},
		profile: Profile{
			Label:  "Energetic & Motivated",
			Tags:   []string{"Workout", "Powerful", "Intense", "Dynamic"},
			Color:  "Vibrant Red",
			Energy: VeryHigh,
		},
	},
	{
		triggers: []string{"focus", "concentrate", "study", "productive"},
		profile: Profile{
			Label:  "Focused & Productive",
			Tags:   []string{"Concentration", "Ambient", "Minimal", "Flow"},
			Color:  "Cool Purple",
			Energy: Medium,
		},
	},
}

// ClassifyText maps a free-text mood to a profile using substring triggers.
//
// Matching is case-insensitive and first-match-wins over a fixed priority
// list, so "angry but happy" is always "Angry & Intense". Input that matches
// nothing yields a fallback profile built from the input itself:
//
//	ClassifyText("lofi sunday") // Label "Lofi sunday", Tags ["lofi sunday", "Music"]
//
// ClassifyText never fails. Rejecting empty input is left to the caller.
func ClassifyText(text string) Profile {
	lowered := strings.ToLower(text)
	for _, rule := range textRules {
		if rule.matches(lowered) {
			return rule.profile.clone()
		}
	}
	return fallbackProfile(text)
}
