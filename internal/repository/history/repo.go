package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seeklab/handlescout/internal/db"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
)

// store is the consumer interface for history persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo persists the history list as a JSON array under a fixed key.
type Repo struct {
	store store
	key   string
}

// New creates a history repository.
func New(s store, key string) *Repo {
	return &Repo{store: s, key: key}
}

// Load reads the stored list. A missing key or unparseable data loads as
// empty; only store failures surface as errors.
func (r *Repo) Load(ctx context.Context) ([]payload.Payload, error) {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("history GET %s: %w", r.key, err)
	}

	var entries []payload.Payload
	if err := json.Unmarshal(data, &entries); err != nil {
		// Malformed stored data is treated as an empty history.
		return nil, nil
	}
	return entries, nil
}

// Save replaces the stored list.
func (r *Repo) Save(ctx context.Context, entries []payload.Payload) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("history marshal: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("history SET %s: %w", r.key, err)
	}
	return nil
}
