package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

var canonicalLabels = []string{"5.9", "5.10", "5.11", "5.11+", "5.12"}

func TestParseDifficultyRating_RoundTrip(t *testing.T) {
	for _, label := range canonicalLabels {
		g, err := ParseDifficultyRating(label)
		if err != nil {
			t.Fatalf("parse %q: %v", label, err)
		}
		if got := g.String(); got != label {
			t.Fatalf("display(parse(%q)) = %q", label, got)
		}
		again, err := ParseDifficultyRating(g.String())
		if err != nil {
			t.Fatalf("re-parse %q: %v", g.String(), err)
		}
		if again != g {
			t.Fatalf("round-trip mismatch for %q: %v != %v", label, again, g)
		}
	}
}

func TestParseDifficultyRating_Unknown(t *testing.T) {
	for _, label := range []string{"5.13", "", "5.11 ", "5.9a", "V5", "5.11+ "} {
		g, err := ParseDifficultyRating(label)
		if !errors.Is(err, ErrParseDifficultyRating) {
			t.Fatalf("parse %q: expected ErrParseDifficultyRating, got %v (grade %v)", label, err, g)
		}
		if g != 0 {
			t.Fatalf("parse %q: expected zero grade on failure, got %v", label, g)
		}
	}
}

func TestDifficultyRating_JSON(t *testing.T) {
	b, err := json.Marshal(Grade511Plus)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"5.11+"` {
		t.Fatalf("unexpected JSON: %s", b)
	}

	var g DifficultyRating
	if err := json.Unmarshal([]byte(`"5.12"`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g != Grade512 {
		t.Fatalf("expected Grade512, got %v", g)
	}

	if err := json.Unmarshal([]byte(`"5.13"`), &g); !errors.Is(err, ErrParseDifficultyRating) {
		t.Fatalf("expected parse failure for 5.13, got %v", err)
	}
	if err := json.Unmarshal([]byte(`7`), &g); !errors.Is(err, ErrParseDifficultyRating) {
		t.Fatalf("expected parse failure for numeric difficulty, got %v", err)
	}
}

func TestDifficultyRating_MarshalInvalidZero(t *testing.T) {
	if _, err := json.Marshal(DifficultyRating(0)); err == nil {
		t.Fatalf("expected error marshaling zero grade")
	}
}

func TestDifficultyRating_SQLCodec(t *testing.T) {
	v, err := Grade510.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "5.10" {
		t.Fatalf("expected label column value, got %v", v)
	}

	var g DifficultyRating
	if err := g.Scan("5.11+"); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if g != Grade511Plus {
		t.Fatalf("expected Grade511Plus, got %v", g)
	}
	if err := g.Scan([]byte("5.9")); err != nil || g != Grade59 {
		t.Fatalf("scan bytes: %v (grade %v)", err, g)
	}

	// Corrupt stored label must surface as a parse failure, not a default.
	if err := g.Scan("6.0"); !errors.Is(err, ErrParseDifficultyRating) {
		t.Fatalf("expected parse failure for corrupt label, got %v", err)
	}
	if err := g.Scan(42); !errors.Is(err, ErrParseDifficultyRating) {
		t.Fatalf("expected parse failure for non-text column, got %v", err)
	}
}
