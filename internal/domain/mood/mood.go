package mood

import (
	"fmt"
	"strings"
)

// MoodType is the fixed set of moods a user can log.
type MoodType string

const (
	MoodHappy   MoodType = "HAPPY"
	MoodSad     MoodType = "SAD"
	MoodAngry   MoodType = "ANGRY"
	MoodNeutral MoodType = "NEUTRAL"
	MoodAnxious MoodType = "ANXIOUS"
)

// AllMoods lists every mood in declaration order. Tie-breaks walk this slice.
var AllMoods = []MoodType{MoodHappy, MoodSad, MoodAngry, MoodNeutral, MoodAnxious}

// MoodScores maps each mood to its sentiment weight.
var MoodScores = map[MoodType]int{
	MoodHappy:   5,
	MoodNeutral: 3,
	MoodAnxious: 2,
	MoodSad:     1,
	MoodAngry:   0,
}

const MaxMoodScore = 5

func (m MoodType) Valid() bool {
	_, ok := MoodScores[m]
	return ok
}

// Score returns the weight for m, 0 for unknown values.
func (m MoodType) Score() int {
	return MoodScores[m]
}

func (m MoodType) String() string { return string(m) }

// ParseMoodType accepts any casing and surrounding whitespace.
func ParseMoodType(s string) (MoodType, error) {
	m := MoodType(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}
