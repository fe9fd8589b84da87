package emotion

import (
	"fmt"
	"strings"
)

// Emotion is one of the fixed set of emotions a patient can report.
type Emotion string

const (
	EmotionHappy   Emotion = "HAPPY"
	EmotionSad     Emotion = "SAD"
	EmotionExcited Emotion = "EXCITED"
	EmotionAngry   Emotion = "ANGRY"
	EmotionAnxious Emotion = "ANXIOUS"
	EmotionGrouchy Emotion = "GROUCHY"
	EmotionRelaxed Emotion = "RELAXED"
)

// Emotions returns the full closed set of emotion kinds.
func Emotions() []Emotion {
	return []Emotion{
		EmotionHappy, EmotionSad, EmotionExcited, EmotionAngry,
		EmotionAnxious, EmotionGrouchy, EmotionRelaxed,
	}
}

// EmotionNames returns a comma-separated list of all emotion names.
func EmotionNames() string {
	names := make([]string, 0, 7)
	for _, e := range Emotions() {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}

// ParseEmotion converts a string into an Emotion, case-insensitively.
func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(strings.ToUpper(s))
	for _, known := range Emotions() {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("invalid emotion %q, valid emotions: %s", s, EmotionNames())
}
