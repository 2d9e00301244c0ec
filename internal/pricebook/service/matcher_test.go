package service

import (
	"strings"
	"testing"

	"estimate_backend/internal/pricebook/repository"
)

func TestMatchReturnsRelevantEntries(t *testing.T) {
	m := NewMatcher(repository.New())

	groups, err := m.Match("replace the kitchen faucet and install a new sink")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(groups) == 0 {
		t.Fatal("expected at least one matched category")
	}

	found := false
	for _, g := range groups {
		for _, e := range g.Entries {
			if e.Code == "PLB-001" {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected faucet entry PLB-001 in matched set")
	}
}

func TestMatchEmptyDescription(t *testing.T) {
	m := NewMatcher(repository.New())

	groups, err := m.Match("")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected empty result, got %d groups", len(groups))
	}
}

func TestMatchIrrelevantDescription(t *testing.T) {
	m := NewMatcher(repository.New())

	groups, err := m.Match("zzz qqq xyzzy")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no matches, got %d groups", len(groups))
	}
}

func TestMatchCategoryMention(t *testing.T) {
	m := NewMatcher(repository.New())

	groups, err := m.Match("full painting job in the living room")
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	var painting *CategoryGroup
	for i := range groups {
		if groups[i].Category == "Painting" {
			painting = &groups[i]
		}
	}
	if painting == nil {
		t.Fatal("expected Painting category in matched set")
	}
	if len(painting.Entries) == 0 {
		t.Fatal("expected painting entries")
	}
}

func TestMatchCapsResultSize(t *testing.T) {
	m := NewMatcher(repository.New())

	// A description touching every trade should still produce a bounded set.
	desc := strings.Join([]string{
		"demolition", "carpentry", "plumbing", "electrical", "plastering",
		"tiling", "painting", "flooring", "kitchen", "bathroom", "roofing",
		"remove", "install", "replace", "paint", "tiles", "floor", "wall",
	}, " ")
	groups, err := m.Match(desc)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}

	total := 0
	for _, g := range groups {
		if len(g.Entries) > maxEntriesPerCategory {
			t.Errorf("category %s exceeds per-category cap: %d", g.Category, len(g.Entries))
		}
		total += len(g.Entries)
	}
	if total > maxTotalEntries {
		t.Errorf("total matched entries %d exceeds cap %d", total, maxTotalEntries)
	}
}
