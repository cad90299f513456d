package domain

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency tier used to pick the text difficulty.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// DefaultLevel is applied until the user picks something else.
const DefaultLevel = LevelB1

// Levels lists all tiers in ascending difficulty order.
func Levels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

// ParseLevel accepts any casing ("b1", "B1") and rejects unknown tiers.
func ParseLevel(value string) (Level, error) {
	candidate := Level(strings.ToUpper(strings.TrimSpace(value)))
	for _, l := range Levels() {
		if candidate == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown CEFR level %q", value)
}

// Normalize maps arbitrary casing onto the canonical constant; unknown
// values pass through unchanged so Variant lookups simply miss.
func (l Level) Normalize() Level {
	return Level(strings.ToUpper(strings.TrimSpace(string(l))))
}

// Key is the lowercase form used in wire field names (content_b1).
func (l Level) Key() string {
	return strings.ToLower(strings.TrimSpace(string(l)))
}

// Next cycles to the following tier, wrapping from C2 back to A1.
func (l Level) Next() Level {
	levels := Levels()
	for i, candidate := range levels {
		if candidate == l.Normalize() {
			return levels[(i+1)%len(levels)]
		}
	}
	return DefaultLevel
}
