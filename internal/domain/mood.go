package domain

import "strings"

// Mood is the emotional state driving how a day gets shaped.
type Mood string

const (
	MoodStressed  Mood = "stressed"
	MoodEnergized Mood = "energized"
	MoodAnxious   Mood = "anxious"
	MoodFocused   Mood = "focused"
	MoodSad       Mood = "sad"
	MoodTired     Mood = "tired"
	MoodHappy     Mood = "happy"
	MoodUnknown   Mood = "unknown"
)

// validMoods is the canonical set of accepted mood strings.
var validMoods = map[Mood]bool{
	MoodStressed: true, MoodEnergized: true, MoodAnxious: true,
	MoodFocused: true, MoodSad: true, MoodTired: true,
	MoodHappy: true, MoodUnknown: true,
}

// Valid returns true if the mood is a known value.
func (m Mood) Valid() bool {
	return validMoods[m]
}

// ParseMood normalizes a raw mood string, case- and
// whitespace-insensitively. Anything outside the canonical set maps to
// MoodUnknown.
func ParseMood(s string) Mood {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if m.Valid() {
		return m
	}
	return MoodUnknown
}
