// Package session owns the per-session search state: the active mode, the
// platform selection, the last rendered view, and the guards that keep
// concurrent submissions and stale responses from corrupting it.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/seeklab/handlescout/internal/domain"
	"github.com/seeklab/handlescout/internal/domain/platform"
	"github.com/seeklab/handlescout/internal/domain/search/mode"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
	"github.com/seeklab/handlescout/internal/domain/search/result"
	"github.com/seeklab/handlescout/internal/logger"
	"github.com/seeklab/handlescout/internal/usecase/grouping"
)

// Dispatcher runs a payload's network calls and returns the raw envelope.
type Dispatcher interface {
	Dispatch(ctx context.Context, p *payload.Payload, generation uint64) (result.Envelope, error)
}

// Recorder is the history capability the session depends on.
type Recorder interface {
	Record(ctx context.Context, p *payload.Payload) error
	List(ctx context.Context) ([]payload.Payload, error)
	Entry(ctx context.Context, index int) (payload.Payload, error)
}

// PlatformState is one catalog entry with its current selection flag.
type PlatformState struct {
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// Service is the session controller. All state transitions go through it.
type Service struct {
	dispatcher Dispatcher
	history    Recorder

	mu         sync.Mutex
	modes      []mode.Mode
	active     mode.Mode
	catalog    platform.Catalog
	selection  *platform.Selection
	generation uint64
	inFlight   bool
	view       *grouping.View
}

// New creates a session seeded to the first registered mode with the full
// catalog selected.
func New(dispatcher Dispatcher, history Recorder, modes []mode.Mode, catalog platform.Catalog) (*Service, error) {
	if len(modes) == 0 {
		return nil, fmt.Errorf("session: no search modes registered")
	}
	for _, m := range modes {
		if !m.IsValid() {
			return nil, fmt.Errorf("session: unknown search mode %q", m)
		}
	}
	return &Service{
		dispatcher: dispatcher,
		history:    history,
		modes:      modes,
		active:     modes[0],
		catalog:    catalog,
		selection:  platform.NewSelection(catalog),
	}, nil
}

// Modes returns the registered modes in registration order.
func (s *Service) Modes() []mode.Mode {
	out := make([]mode.Mode, len(s.modes))
	copy(out, s.modes)
	return out
}

// ActiveMode returns the currently selected mode.
func (s *Service) ActiveMode() mode.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SetMode switches the active mode. The previous view is cleared and the
// generation advances so any response still in flight is discarded on arrival.
func (s *Service) SetMode(m mode.Mode) error {
	if !s.registered(m) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidMode, m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = m
	s.view = nil
	s.generation++
	return nil
}

func (s *Service) registered(m mode.Mode) bool {
	for _, v := range s.modes {
		if v == m {
			return true
		}
	}
	return false
}

// Platforms returns the catalog with per-platform selection flags.
func (s *Service) Platforms() []PlatformState {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := make(map[string]bool)
	for _, id := range s.selection.Selected() {
		selected[id] = true
	}
	out := make([]PlatformState, 0, s.catalog.Len())
	for _, id := range s.catalog.IDs() {
		out = append(out, PlatformState{Name: id, Selected: selected[id]})
	}
	return out
}

// TogglePlatform flips one platform's selection; unknown names are ignored.
func (s *Service) TogglePlatform(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Toggle(name)
}

// SelectAllPlatforms selects the full catalog.
func (s *Service) SelectAllPlatforms() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectAll()
}

// DeselectAllPlatforms empties the selection.
func (s *Service) DeselectAllPlatforms() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.DeselectAll()
}

// View returns the last rendered view, or false when no search has completed
// since the session started or the mode last changed.
func (s *Service) View() (grouping.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return grouping.View{}, false
	}
	return *s.view, true
}

// History lists the recorded payloads, most recent first.
func (s *Service) History(ctx context.Context) ([]payload.Payload, error) {
	return s.history.List(ctx)
}

// Submit validates the raw fields against the active mode, records the
// payload, dispatches, and stores the rendered view. Exactly one submission
// runs at a time; a second concurrent call fails with ErrSearchInFlight.
func (s *Service) Submit(ctx context.Context, raw payload.RawFields) (grouping.View, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return grouping.View{}, domain.ErrSearchInFlight
	}

	// Validation happens before the in-flight guard engages, so a rejected
	// form never blocks the next attempt.
	p, err := payload.Build(s.active, raw, s.selection.Selected())
	if err != nil {
		s.mu.Unlock()
		return grouping.View{}, err
	}

	s.inFlight = true
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// History failures degrade silently; the search itself proceeds.
	if err := s.history.Record(ctx, &p); err != nil {
		logger.FromContext(ctx).Warn("history record failed", zap.Error(err))
	}

	env, err := s.dispatcher.Dispatch(ctx, &p, gen)
	if err != nil {
		return grouping.View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if env.Generation() != s.generation {
		// The session moved on while this response was in flight.
		return grouping.View{}, domain.ErrStaleResponse
	}
	v := grouping.Render(env)
	s.view = &v
	return v, nil
}

// Replay restores the mode and platform selection from a history entry and
// re-submits it. Platforms no longer in the catalog are dropped.
func (s *Service) Replay(ctx context.Context, index int) (grouping.View, error) {
	p, err := s.history.Entry(ctx, index)
	if err != nil {
		return grouping.View{}, err
	}

	s.mu.Lock()
	s.active = p.Mode()
	s.view = nil
	s.generation++
	if platforms := p.Platforms(); len(platforms) > 0 {
		s.selection.Restore(platforms)
	}
	s.mu.Unlock()

	return s.Submit(ctx, p.Raw())
}
