package grouping

import (
	"testing"
	"time"

	"github.com/seeklab/handlescout/internal/domain/search/mode"
	"github.com/seeklab/handlescout/internal/domain/search/result"
)

func TestGroupItems_MergesByUsername(t *testing.T) {
	items := []result.Item{
		result.NewItem("Twitch", "nova_x", 4),
		result.NewItem("Reddit", "nova_x", 4),
		result.NewItem("Reddit", "novax", 2),
	}

	groups := GroupItems(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	first := groups[0]
	if first.Username() != "nova_x" {
		t.Errorf("expected nova_x ranked first, got %q", first.Username())
	}
	if got := first.Platforms(); len(got) != 2 || got[0] != "Twitch" || got[1] != "Reddit" {
		t.Errorf("expected platforms [Twitch Reddit], got %v", got)
	}
	if first.Quality() != 4 {
		t.Errorf("expected quality 4, got %d", first.Quality())
	}

	second := groups[1]
	if second.Username() != "novax" || second.Quality() != 2 {
		t.Errorf("unexpected second group: %q/%d", second.Username(), second.Quality())
	}
}

func TestGroupItems_RankingProperty(t *testing.T) {
	items := []result.Item{
		result.NewItem("Twitch", "bbb", 3),
		result.NewItem("Reddit", "aaa", 3),
		result.NewItem("GitHub", "ccc", 5),
		result.NewItem("Reddit", "ddd", 1),
	}

	groups := GroupItems(items)
	for i := 1; i < len(groups); i++ {
		prev, cur := &groups[i-1], &groups[i]
		descending := prev.Quality() > cur.Quality()
		tieBreak := prev.Quality() == cur.Quality() && prev.Username() <= cur.Username()
		if !descending && !tieBreak {
			t.Errorf("rank order violated at %d: %q/%d before %q/%d",
				i, prev.Username(), prev.Quality(), cur.Username(), cur.Quality())
		}
	}
}

func TestGroupItems_FirstSeenQualityWins(t *testing.T) {
	// The collaborator contract keeps quality consistent per username; if it
	// ever diverges, the first-seen value is kept.
	items := []result.Item{
		result.NewItem("Twitch", "nova", 4),
		result.NewItem("Reddit", "nova", 2),
	}

	groups := GroupItems(items)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Quality() != 4 {
		t.Errorf("expected first-seen quality 4, got %d", groups[0].Quality())
	}
}

func TestGroupItems_IdempotentOnGroupedInput(t *testing.T) {
	items := []result.Item{
		result.NewItem("Twitch", "nova_x", 4),
		result.NewItem("Reddit", "nova_x", 4),
		result.NewItem("Reddit", "novax", 2),
	}
	once := GroupItems(items)

	// Flatten the grouped structure back into singleton-quality items.
	var flat []result.Item
	for i := range once {
		g := &once[i]
		for _, p := range g.Platforms() {
			flat = append(flat, result.NewItem(p, g.Username(), g.Quality()))
		}
	}

	twice := GroupItems(flat)
	if len(twice) != len(once) {
		t.Fatalf("regrouping changed group count: %d vs %d", len(twice), len(once))
	}
	for i := range once {
		a, b := &once[i], &twice[i]
		if a.Username() != b.Username() || a.Quality() != b.Quality() {
			t.Errorf("group %d diverged: %q/%d vs %q/%d",
				i, a.Username(), a.Quality(), b.Username(), b.Quality())
		}
		ap, bp := a.Platforms(), b.Platforms()
		if len(ap) != len(bp) {
			t.Fatalf("group %d platform count diverged", i)
		}
		for j := range ap {
			if ap[j] != bp[j] {
				t.Errorf("group %d platform order diverged at %d", i, j)
			}
		}
	}
}

func TestSortStatuses_Lexicographic(t *testing.T) {
	statuses := SortStatuses(result.StatusMap{"Reddit": true, "GitHub": false})
	if len(statuses) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(statuses))
	}
	if statuses[0].Identifier != "GitHub" || statuses[0].Available {
		t.Errorf("expected GitHub (taken) first, got %+v", statuses[0])
	}
	if statuses[1].Identifier != "Reddit" || !statuses[1].Available {
		t.Errorf("expected Reddit (available) second, got %+v", statuses[1])
	}
}

func TestAvailableOnly_FiltersAndSorts(t *testing.T) {
	domains := AvailableOnly(result.StatusMap{"a.com": true, "b.com": false, "c.com": true})
	if len(domains) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(domains))
	}
	if domains[0].Identifier != "a.com" || domains[1].Identifier != "c.com" {
		t.Errorf("expected [a.com c.com], got %+v", domains)
	}
}

func TestRender_SmartScenario(t *testing.T) {
	items := []result.Item{
		result.NewItem("Twitch", "nova_x", 4),
		result.NewItem("Reddit", "nova_x", 4),
		result.NewItem("Reddit", "novax", 2),
	}
	env := result.ListEnvelope(mode.Smart, items, result.StatusMap{"nova.dev": true},
		result.SecondaryOK, 80*time.Millisecond, 1)

	v := Render(env)
	if v.NoResults {
		t.Fatal("expected results")
	}
	if len(v.Groups) != 2 || v.Groups[0].Username() != "nova_x" {
		t.Errorf("unexpected groups: %+v", v.Groups)
	}
	if len(v.Domains) != 1 || v.Domains[0].Identifier != "nova.dev" {
		t.Errorf("unexpected domain suggestions: %+v", v.Domains)
	}
	if v.Count != 3 {
		t.Errorf("expected count=3 (primary items), got %d", v.Count)
	}
}

func TestRender_MatrixScenario(t *testing.T) {
	env := result.MapEnvelope(mode.Matrix, result.StatusMap{"Reddit": true, "GitHub": false}, time.Millisecond, 1)

	v := Render(env)
	if v.NoResults {
		t.Fatal("a matrix with entries is never empty")
	}
	if len(v.Matrix) != 2 || v.Matrix[0].Identifier != "GitHub" || v.Matrix[1].Identifier != "Reddit" {
		t.Errorf("unexpected matrix order: %+v", v.Matrix)
	}
}

func TestRender_DomainAllTakenIsNoResults(t *testing.T) {
	env := result.MapEnvelope(mode.Domain, result.StatusMap{"x.io": false}, time.Millisecond, 1)

	v := Render(env)
	if !v.NoResults {
		t.Error("an all-taken domain map must render the no-results sentinel")
	}
	if len(v.Domains) != 0 {
		t.Errorf("expected no surfaced domains, got %+v", v.Domains)
	}
}

func TestRender_EmptyListIsNoResults(t *testing.T) {
	env := result.ListEnvelope(mode.Random, nil, nil, result.SecondaryNone, time.Millisecond, 1)

	v := Render(env)
	if !v.NoResults {
		t.Error("an empty list must render the no-results sentinel")
	}
}

func TestRender_Forecast(t *testing.T) {
	env := result.StatementEnvelope(mode.Forecast, "nova leans cosmic", 0, 1)

	v := Render(env)
	if v.NoResults || v.Statement == "" {
		t.Errorf("expected forecast statement, got %+v", v)
	}
}
