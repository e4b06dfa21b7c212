package platform

// Catalog is the ordered set of platform identifiers fetched once at startup.
// Immutable for the lifetime of the session.
type Catalog struct {
	ids []string
}

// NewCatalog creates a catalog preserving order; empty identifiers are dropped.
func NewCatalog(ids []string) Catalog {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return Catalog{ids: out}
}

// IDs returns the identifiers in catalog order. The slice is a copy.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Contains reports whether the identifier is part of the catalog.
func (c *Catalog) Contains(id string) bool {
	for _, v := range c.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the catalog size.
func (c *Catalog) Len() int { return len(c.ids) }

// Selection is a mutable subset of the catalog. It is owned by the session
// and read (never mutated) by the payload builder at submission time.
type Selection struct {
	catalog  Catalog
	selected map[string]bool
}

// NewSelection seeds the selection to "all selected".
func NewSelection(catalog Catalog) *Selection {
	s := &Selection{catalog: catalog}
	s.SelectAll()
	return s
}

// Toggle flips membership of one identifier; no-op when absent from the catalog.
func (s *Selection) Toggle(id string) {
	if !s.catalog.Contains(id) {
		return
	}
	s.selected[id] = !s.selected[id]
}

// SelectAll sets the selection to the full catalog.
func (s *Selection) SelectAll() {
	s.selected = make(map[string]bool, s.catalog.Len())
	for _, id := range s.catalog.ids {
		s.selected[id] = true
	}
}

// DeselectAll empties the selection.
func (s *Selection) DeselectAll() {
	s.selected = make(map[string]bool, s.catalog.Len())
}

// Restore marks exactly the given identifiers as selected, everything else
// deselected. Identifiers absent from the catalog are ignored, mirroring Toggle.
func (s *Selection) Restore(ids []string) {
	s.DeselectAll()
	for _, id := range ids {
		if s.catalog.Contains(id) {
			s.selected[id] = true
		}
	}
}

// Selected returns the chosen identifiers in catalog order. The slice is a copy.
func (s *Selection) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for _, id := range s.catalog.ids {
		if s.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// IsEmpty reports whether nothing is selected.
func (s *Selection) IsEmpty() bool { return len(s.Selected()) == 0 }
