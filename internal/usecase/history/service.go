package history

import (
	"context"
	"fmt"

	"github.com/seeklab/handlescout/internal/domain"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
)

// DefaultLimit caps the history at the most recent entries.
const DefaultLimit = 5

// Service maintains the bounded, deduplicated log of past search payloads.
type Service struct {
	repo  Repository
	limit int
}

// New creates a history service. limit <= 0 falls back to DefaultLimit.
func New(repo Repository, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{repo: repo, limit: limit}
}

// Record prepends the payload unless it is structurally identical to the
// current head, then truncates to the limit and persists.
func (s *Service) Record(ctx context.Context, p *payload.Payload) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(entries) > 0 && entries[0].Equal(p) {
		return nil
	}

	entries = append([]payload.Payload{*p}, entries...)
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// List returns the stored entries most-recent-first.
func (s *Service) List(ctx context.Context) ([]payload.Payload, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return entries, nil
}

// Entry returns the entry at the given position (0 = most recent).
func (s *Service) Entry(ctx context.Context, index int) (payload.Payload, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return payload.Payload{}, fmt.Errorf("load history: %w", err)
	}
	if index < 0 || index >= len(entries) {
		return payload.Payload{}, domain.ErrHistoryEntryNotFound
	}
	return entries[index], nil
}
