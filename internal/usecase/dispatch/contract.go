package dispatch

import (
	"context"

	"github.com/seeklab/handlescout/internal/domain/search/payload"
	"github.com/seeklab/handlescout/internal/domain/search/result"
)

// Checker is the availability collaborator contract.
type Checker interface {
	// CheckAvailability runs the mode's primary availability query.
	// List-shaped for smart/random, map-shaped for matrix.
	CheckAvailability(ctx context.Context, p *payload.Payload) (result.Availability, error)

	// CheckDomains checks domain-name availability seeded by a keyword.
	// Primary call for domain mode, secondary suggestion call for smart mode.
	CheckDomains(ctx context.Context, keyword string) (result.StatusMap, error)
}
