package platform

import "testing"

func testCatalog() Catalog {
	return NewCatalog([]string{"TikTok", "Instagram", "GitHub", "Twitch", "Reddit", "Pinterest"})
}

func TestNewCatalog_DropsEmptyAndDuplicates(t *testing.T) {
	c := NewCatalog([]string{"GitHub", "", "Twitch", "GitHub"})
	if c.Len() != 2 {
		t.Fatalf("expected 2 identifiers, got %d", c.Len())
	}
	ids := c.IDs()
	if ids[0] != "GitHub" || ids[1] != "Twitch" {
		t.Errorf("order not preserved: %v", ids)
	}
}

func TestNewSelection_AllSelectedByDefault(t *testing.T) {
	c := testCatalog()
	s := NewSelection(c)
	if got := len(s.Selected()); got != c.Len() {
		t.Errorf("expected all %d selected, got %d", c.Len(), got)
	}
}

func TestToggle(t *testing.T) {
	s := NewSelection(testCatalog())

	s.Toggle("GitHub")
	for _, id := range s.Selected() {
		if id == "GitHub" {
			t.Error("GitHub should be deselected after toggle")
		}
	}

	s.Toggle("GitHub")
	found := false
	for _, id := range s.Selected() {
		if id == "GitHub" {
			found = true
		}
	}
	if !found {
		t.Error("GitHub should be selected again after second toggle")
	}
}

func TestToggle_UnknownIdentifierIsNoOp(t *testing.T) {
	s := NewSelection(testCatalog())
	before := len(s.Selected())
	s.Toggle("MySpace")
	if len(s.Selected()) != before {
		t.Error("toggling an unknown identifier must not change the selection")
	}
}

func TestDeselectAllThenSelectAll_YieldsFullCatalog(t *testing.T) {
	c := testCatalog()
	s := NewSelection(c)
	s.Toggle("Twitch")
	s.Toggle("Reddit")

	s.DeselectAll()
	if !s.IsEmpty() {
		t.Fatal("expected empty selection after DeselectAll")
	}

	s.SelectAll()
	got := s.Selected()
	want := c.IDs()
	if len(got) != len(want) {
		t.Fatalf("expected %d selected, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection order diverges from catalog at %d: %q != %q", i, got[i], want[i])
		}
	}
}

func TestRestore(t *testing.T) {
	s := NewSelection(testCatalog())
	s.Restore([]string{"Reddit", "Twitch", "MySpace"})

	got := s.Selected()
	// Catalog order: Twitch before Reddit; MySpace dropped.
	if len(got) != 2 || got[0] != "Twitch" || got[1] != "Reddit" {
		t.Errorf("unexpected restored selection: %v", got)
	}
}

func TestSelected_CatalogOrder(t *testing.T) {
	s := NewSelection(testCatalog())
	s.DeselectAll()
	s.Toggle("Reddit")
	s.Toggle("TikTok")

	got := s.Selected()
	if len(got) != 2 || got[0] != "TikTok" || got[1] != "Reddit" {
		t.Errorf("selection must follow catalog order, got %v", got)
	}
}
