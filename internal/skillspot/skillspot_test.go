package skillspot

import (
	"strings"
	"testing"
)

func TestSpotMultiWordAndOrder(t *testing.T) {
	text := "Worked on Machine Learning pipelines in Python; strong SQL and data   analysis."
	got := Default().Spot(text)

	want := []string{"Machine Learning", "Python", "SQL", "Data Analysis"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSpotWholeWordsOnly(t *testing.T) {
	got := Default().Spot("JavaScript developer")

	if len(got) != 1 || got[0] != "JavaScript" {
		t.Fatalf("expected only JavaScript, got %v", got)
	}
}

func TestSpotDeduplicates(t *testing.T) {
	got := Default().Spot("python PYTHON Python, excel")

	if len(got) != 2 {
		t.Fatalf("expected 2 skills, got %v", got)
	}
}

func TestSpotFallback(t *testing.T) {
	got := Default().Spot("I like long walks")

	if strings.Join(got, ",") != "Communication,Project Management" {
		t.Errorf("expected fallback skills, got %v", got)
	}

	// Callers must not be able to modify the shared fallback.
	got[0] = "changed"
	if DefaultFallback[0] != "Communication" {
		t.Error("fallback slice was aliased")
	}
}

func TestSpotNoFallback(t *testing.T) {
	s := New(map[string]string{"Go": "Go"})

	if got := s.Spot("rust only"); len(got) != 0 {
		t.Errorf("expected no skills, got %v", got)
	}
	if got := s.Spot("golang and go"); len(got) != 1 || got[0] != "Go" {
		t.Errorf("expected [Go], got %v", got)
	}
}

func TestSpotEmptyInput(t *testing.T) {
	s := New(map[string]string{"go": "Go", "  ": "blank"})

	if got := s.Spot(""); len(got) != 0 {
		t.Errorf("expected 0 skills for empty input, got %v", got)
	}
}
