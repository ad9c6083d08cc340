// Package mood classifies free-text moods and image context into mood profiles.
package mood

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Energy is the ordinal musical intensity of a profile.
type Energy int

const (
	Low Energy = iota
	Medium
	High
	VeryHigh
)

var energyNames = map[Energy]string{
	Low:      "Low",
	Medium:   "Medium",
	High:     "High",
	VeryHigh: "Very High",
}

// String returns the display name, e.g. "Very High".
func (e Energy) String() string {
	if name, ok := energyNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Energy(%d)", int(e))
}

// MarshalText encodes the energy as its display name.
func (e Energy) MarshalText() ([]byte, error) {
	name, ok := energyNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown energy level %d", int(e))
	}
	return []byte(name), nil
}

// UnmarshalText accepts display names ("Very High") and identifiers ("VeryHigh").
func (e *Energy) UnmarshalText(text []byte) error {
	normalized := strings.ReplaceAll(strings.ToLower(string(text)), " ", "")
	for level, name := range energyNames {
		if strings.ReplaceAll(strings.ToLower(name), " ", "") == normalized {
			*e = level
			return nil
		}
	}
	return fmt.Errorf("unknown energy level %q", text)
}

// Profile is the result of classifying a mood.
// Profiles are values: callers receive their own copy of Tags.
type Profile struct {
	Label  string   `json:"mood"`
	Tags   []string `json:"tags"`
	Color  string   `json:"color"`
	Energy Energy   `json:"energy"`
}

// clone returns a copy whose Tags do not share storage with p.
func (p Profile) clone() Profile {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// fallbackProfile builds the profile used when no rule matches.
// The label keeps the input's casing except for an uppercased first rune.
func fallbackProfile(input string) Profile {
	return Profile{
		Label:  capitalize(input),
		Tags:   []string{input, "Music"},
		Color:  "Multicolor",
		Energy: Medium,
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
