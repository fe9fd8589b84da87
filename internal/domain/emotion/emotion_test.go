package emotion

import "testing"

func TestParseEmotion(t *testing.T) {
	for _, s := range []string{"HAPPY", "happy", "Happy"} {
		e, err := ParseEmotion(s)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", s, err)
		}
		if e != EmotionHappy {
			t.Errorf("ParseEmotion(%q) = %s, want HAPPY", s, e)
		}
	}

	if _, err := ParseEmotion("BORED"); err == nil {
		t.Error("expected error for unknown emotion")
	}
}

func TestEmotions_ClosedSet(t *testing.T) {
	all := Emotions()
	if len(all) != 7 {
		t.Fatalf("expected 7 emotions, got %d", len(all))
	}
	seen := map[Emotion]bool{}
	for _, e := range all {
		if seen[e] {
			t.Errorf("duplicate emotion %s", e)
		}
		seen[e] = true
	}
}
