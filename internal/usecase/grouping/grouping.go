// Package grouping shapes raw dispatch results for display: per-username
// merging and ranking for list results, ordering and availability filtering
// for map results.
package grouping

import (
	"sort"
	"time"

	"github.com/seeklab/handlescout/internal/domain/search/mode"
	"github.com/seeklab/handlescout/internal/domain/search/result"
)

// Status is a display entry for map-shaped results.
type Status struct {
	Identifier string `json:"identifier"`
	Available  bool   `json:"available"`
}

// View is the display-ready shape of one search outcome.
// NoResults marks an empty outcome so callers render an absence message
// instead of a blank list.
type View struct {
	Mode      mode.Mode      `json:"mode"`
	Groups    []result.Group `json:"-"`
	Matrix    []Status       `json:"matrix,omitempty"`
	Domains   []Status       `json:"domains,omitempty"`
	Statement string         `json:"statement,omitempty"`
	Elapsed   time.Duration  `json:"elapsed"`
	Count     int            `json:"count"`
	NoResults bool           `json:"no_results"`
}

// Render transforms an envelope into its mode's display shape.
func Render(env result.Envelope) View {
	v := View{Mode: env.Mode(), Elapsed: env.Elapsed(), Count: env.Count()}

	switch env.Mode() {
	case mode.Smart:
		v.Groups = GroupItems(env.Items())
		v.Domains = AvailableOnly(env.Domains())
		v.NoResults = len(v.Groups) == 0
	case mode.Random:
		v.Groups = GroupItems(env.Items())
		v.NoResults = len(v.Groups) == 0
	case mode.Matrix:
		// The matrix's purpose is the full status grid, so taken entries stay.
		v.Matrix = SortStatuses(env.Statuses())
		v.NoResults = len(v.Matrix) == 0
	case mode.Domain:
		v.Domains = AvailableOnly(env.Statuses())
		v.NoResults = len(v.Domains) == 0
	case mode.Forecast:
		v.Statement = env.Statement()
		v.NoResults = v.Statement == ""
	}

	return v
}

// GroupItems merges availability hits by username and ranks the result:
// descending quality, ties broken by ascending username.
// Quality is taken from the first item seen for a username; the collaborator
// contract keeps it consistent across platforms.
func GroupItems(items []result.Item) []result.Group {
	type entry struct {
		platforms []string
		quality   int
	}

	merged := make(map[string]*entry)
	order := make([]string, 0, len(items))

	for i := range items {
		it := &items[i]
		e, ok := merged[it.Username()]
		if !ok {
			e = &entry{quality: it.Quality()}
			merged[it.Username()] = e
			order = append(order, it.Username())
		}
		e.platforms = append(e.platforms, it.Platform())
	}

	groups := make([]result.Group, 0, len(merged))
	for _, username := range order {
		e := merged[username]
		groups = append(groups, result.NewGroup(username, e.platforms, e.quality))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Quality() != groups[j].Quality() {
			return groups[i].Quality() > groups[j].Quality()
		}
		return groups[i].Username() < groups[j].Username()
	})

	return groups
}

// SortStatuses orders map entries ascending lexicographically by identifier.
func SortStatuses(m result.StatusMap) []Status {
	out := make([]Status, 0, len(m))
	for id, available := range m {
		out = append(out, Status{Identifier: id, Available: available})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}

// AvailableOnly drops unavailable entries and orders the rest lexicographically.
func AvailableOnly(m result.StatusMap) []Status {
	out := make([]Status, 0, len(m))
	for id, available := range m {
		if available {
			out = append(out, Status{Identifier: id, Available: true})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identifier < out[j].Identifier })
	return out
}
