package history

import (
	"context"

	"github.com/seeklab/handlescout/internal/domain/search/payload"
)

// Repository persists the ordered history list under a fixed key.
type Repository interface {
	// Load returns the stored entries most-recent-first.
	// Absent or unparseable data loads as an empty list.
	Load(ctx context.Context) ([]payload.Payload, error)

	// Save replaces the stored list.
	Save(ctx context.Context, entries []payload.Payload) error
}
