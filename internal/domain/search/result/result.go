package result

import (
	"time"

	"github.com/seeklab/handlescout/internal/domain/search/mode"
)

// MaxQuality is the upper bound of the collaborator's desirability rating.
const MaxQuality = 5

// Item is a single availability hit for a candidate username on one platform.
type Item struct {
	platform string
	username string
	quality  int
}

// NewItem creates an availability hit. Quality is clamped to [0, MaxQuality].
func NewItem(platform, username string, quality int) Item {
	if quality < 0 {
		quality = 0
	}
	if quality > MaxQuality {
		quality = MaxQuality
	}
	return Item{platform: platform, username: username, quality: quality}
}

// Platform returns the reporting platform identifier.
func (i *Item) Platform() string { return i.platform }

// Username returns the candidate username.
func (i *Item) Username() string { return i.username }

// Quality returns the desirability rating in [0, MaxQuality].
func (i *Item) Quality() int { return i.quality }

// StatusMap is a map-shaped result: identifier to availability.
type StatusMap map[string]bool

// Availability is the primary collaborator response: list-shaped for
// smart/random, map-shaped for matrix.
type Availability struct {
	items    []Item
	statuses StatusMap
}

// ListAvailability wraps a list-shaped response.
func ListAvailability(items []Item) Availability {
	return Availability{items: items}
}

// MapAvailability wraps a map-shaped response.
func MapAvailability(statuses StatusMap) Availability {
	return Availability{statuses: statuses}
}

// Items returns the list-shaped hits (nil for map-shaped responses).
func (a *Availability) Items() []Item { return a.items }

// Statuses returns the map-shaped statuses (nil for list-shaped responses).
func (a *Availability) Statuses() StatusMap { return a.statuses }

// Group is the per-username merge of availability hits used for display.
type Group struct {
	username  string
	platforms []string
	quality   int
}

// NewGroup creates a grouped entry.
func NewGroup(username string, platforms []string, quality int) Group {
	return Group{username: username, platforms: platforms, quality: quality}
}

// Username returns the candidate username.
func (g *Group) Username() string { return g.username }

// Platforms returns the platforms reporting availability, in first-seen order.
func (g *Group) Platforms() []string { return g.platforms }

// Quality returns the rating carried over from the merged items.
func (g *Group) Quality() int { return g.quality }

// SecondaryOutcome tags how the smart mode's secondary domain call settled.
type SecondaryOutcome string

// Secondary call outcomes.
const (
	// SecondaryNone means the mode has no secondary call.
	SecondaryNone SecondaryOutcome = "none"
	// SecondaryOK means the secondary call succeeded.
	SecondaryOK SecondaryOutcome = "ok"
	// SecondaryDegraded means the secondary call failed and was tolerated.
	SecondaryDegraded SecondaryOutcome = "degraded"
)

// Envelope is the unified dispatch result: payload-kind-tagged data plus
// elapsed time and primary item count.
type Envelope struct {
	searchMode mode.Mode
	items      []Item
	statuses   StatusMap
	statement  string
	domains    StatusMap
	secondary  SecondaryOutcome
	elapsed    time.Duration
	count      int
	generation uint64
}

// ListEnvelope wraps a list-shaped primary result with optional domain suggestions.
func ListEnvelope(
	m mode.Mode, items []Item, domains StatusMap,
	secondary SecondaryOutcome, elapsed time.Duration, generation uint64,
) Envelope {
	return Envelope{
		searchMode: m,
		items:      items,
		domains:    domains,
		secondary:  secondary,
		elapsed:    elapsed,
		count:      len(items),
		generation: generation,
	}
}

// MapEnvelope wraps a map-shaped primary result.
func MapEnvelope(m mode.Mode, statuses StatusMap, elapsed time.Duration, generation uint64) Envelope {
	return Envelope{
		searchMode: m,
		statuses:   statuses,
		secondary:  SecondaryNone,
		elapsed:    elapsed,
		count:      len(statuses),
		generation: generation,
	}
}

// StatementEnvelope wraps a locally synthesized forecast statement.
func StatementEnvelope(m mode.Mode, statement string, elapsed time.Duration, generation uint64) Envelope {
	return Envelope{
		searchMode: m,
		statement:  statement,
		secondary:  SecondaryNone,
		elapsed:    elapsed,
		count:      1,
		generation: generation,
	}
}

// Mode returns the mode the envelope was produced for.
func (e *Envelope) Mode() mode.Mode { return e.searchMode }

// Items returns the list-shaped primary result.
func (e *Envelope) Items() []Item { return e.items }

// Statuses returns the map-shaped primary result.
func (e *Envelope) Statuses() StatusMap { return e.statuses }

// Statement returns the forecast statement.
func (e *Envelope) Statement() string { return e.statement }

// Domains returns the secondary domain suggestions (smart mode only).
func (e *Envelope) Domains() StatusMap { return e.domains }

// Secondary returns how the secondary call settled.
func (e *Envelope) Secondary() SecondaryOutcome { return e.secondary }

// Elapsed returns the submission-to-settlement duration across all calls.
func (e *Envelope) Elapsed() time.Duration { return e.elapsed }

// Count returns the primary result size (list length or map entry count).
func (e *Envelope) Count() int { return e.count }

// Generation returns the request-generation token stamped at dispatch.
func (e *Envelope) Generation() uint64 { return e.generation }
