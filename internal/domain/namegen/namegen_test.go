package namegen

import (
	"math/rand"
	"testing"
)

func TestVariations_IncludesKeywordFirst(t *testing.T) {
	vars := Variations("nova", 20)
	if len(vars) == 0 {
		t.Fatal("expected variations")
	}
	if vars[0] != "nova" {
		t.Errorf("keyword itself must come first, got %q", vars[0])
	}
}

func TestVariations_Leetspeak(t *testing.T) {
	vars := Variations("tesla", 20)
	found := false
	for _, v := range vars {
		if v == "73514" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected leetspeak variant 73514, got %v", vars)
	}
}

func TestVariations_RespectsMaxLength(t *testing.T) {
	vars := Variations("nova", 5)
	for _, v := range vars {
		if len(v) > 5 {
			t.Errorf("variation %q exceeds max length", v)
		}
	}
}

func TestVariations_DoubledLastLetter(t *testing.T) {
	vars := Variations("nova", 20)
	found := false
	for _, v := range vars {
		if v == "novaa" {
			found = true
		}
	}
	if !found {
		t.Error("expected doubled-last-letter variant novaa")
	}
}

func TestVariations_EmptyKeyword(t *testing.T) {
	if vars := Variations("", 10); vars != nil {
		t.Errorf("expected nil for empty keyword, got %v", vars)
	}
}

func TestVariations_Deterministic(t *testing.T) {
	a := Variations("nova", 12)
	b := Variations("nova", 12)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("order not stable at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestRandomCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	got := RandomCandidates(5, 10, rng)
	if len(got) != 10 {
		t.Fatalf("expected 10 candidates, got %d", len(got))
	}
	seen := make(map[string]bool)
	for _, c := range got {
		if len(c) != 5 {
			t.Errorf("candidate %q has wrong length", c)
		}
		if seen[c] {
			t.Errorf("duplicate candidate %q", c)
		}
		seen[c] = true
		for i := 0; i < len(c); i++ {
			ch := c[i]
			if !(ch >= 'a' && ch <= 'z') && !(ch >= '0' && ch <= '9') {
				t.Errorf("candidate %q contains invalid byte %q", c, ch)
			}
		}
	}
}

func TestRandomCandidates_InvalidArgs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := RandomCandidates(0, 10, rng); got != nil {
		t.Errorf("expected nil for zero length, got %v", got)
	}
	if got := RandomCandidates(5, 0, rng); got != nil {
		t.Errorf("expected nil for zero count, got %v", got)
	}
}
