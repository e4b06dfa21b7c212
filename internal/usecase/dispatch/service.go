package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seeklab/handlescout/internal/domain/search/mode"
	"github.com/seeklab/handlescout/internal/domain/search/payload"
	"github.com/seeklab/handlescout/internal/domain/search/result"
	"github.com/seeklab/handlescout/internal/logger"
	"github.com/seeklab/handlescout/internal/metrics"
)

// Service issues the mode's network calls and joins them into one envelope.
type Service struct {
	checker Checker
	vibes   map[string]string
}

// New creates a dispatch service.
func New(checker Checker) *Service {
	return &Service{checker: checker}
}

// WithVibes attaches the vibe table used by forecast statements.
// The capability is optional; a nil table degrades to a neutral vibe.
func (s *Service) WithVibes(vibes map[string]string) *Service {
	s.vibes = vibes
	return s
}

// Dispatch runs the payload's calls and returns a unified envelope stamped
// with the request-generation token. A primary call failure is fatal; the
// smart mode's secondary failure degrades to an empty suggestion section.
func (s *Service) Dispatch(ctx context.Context, p *payload.Payload, generation uint64) (result.Envelope, error) {
	start := time.Now()

	env, err := s.dispatch(ctx, p, generation, start)

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.SearchesTotal.WithLabelValues(string(p.Mode()), status).Inc()
	if err == nil {
		metrics.SearchDuration.WithLabelValues(string(p.Mode())).Observe(env.Elapsed().Seconds())
	}
	return env, err
}

func (s *Service) dispatch(
	ctx context.Context, p *payload.Payload, generation uint64, start time.Time,
) (result.Envelope, error) {
	switch p.Mode() {
	case mode.Smart:
		return s.dispatchSmart(ctx, p, generation, start)
	case mode.Matrix:
		avail, err := s.checker.CheckAvailability(ctx, p)
		if err != nil {
			return result.Envelope{}, fmt.Errorf("check availability: %w", err)
		}
		return result.MapEnvelope(mode.Matrix, avail.Statuses(), time.Since(start), generation), nil
	case mode.Domain:
		statuses, err := s.checker.CheckDomains(ctx, p.Keyword())
		if err != nil {
			return result.Envelope{}, fmt.Errorf("check domains: %w", err)
		}
		return result.MapEnvelope(mode.Domain, statuses, time.Since(start), generation), nil
	case mode.Random:
		avail, err := s.checker.CheckAvailability(ctx, p)
		if err != nil {
			return result.Envelope{}, fmt.Errorf("check availability: %w", err)
		}
		return result.ListEnvelope(
			mode.Random, avail.Items(), nil, result.SecondaryNone, time.Since(start), generation,
		), nil
	case mode.Forecast:
		// Client-only capability: no network call.
		return result.StatementEnvelope(mode.Forecast, s.forecast(p), time.Since(start), generation), nil
	default:
		return result.Envelope{}, fmt.Errorf("unsupported search mode: %s", p.Mode())
	}
}

type secondarySettled struct {
	domains result.StatusMap
	err     error
}

// dispatchSmart fires the primary availability call and the domain-suggestion
// call concurrently and waits for both to settle. The secondary call is best
// effort: its failure empties the suggestion section and nothing more.
func (s *Service) dispatchSmart(
	ctx context.Context, p *payload.Payload, generation uint64, start time.Time,
) (result.Envelope, error) {
	secondaryCh := make(chan secondarySettled, 1)
	go func() {
		domains, err := s.checker.CheckDomains(ctx, p.Keyword())
		secondaryCh <- secondarySettled{domains: domains, err: err}
	}()

	avail, primaryErr := s.checker.CheckAvailability(ctx, p)
	secondary := <-secondaryCh

	if primaryErr != nil {
		return result.Envelope{}, fmt.Errorf("check availability: %w", primaryErr)
	}

	outcome := result.SecondaryOK
	domains := secondary.domains
	if secondary.err != nil {
		logger.FromContext(ctx).Warn("domain suggestions degraded",
			zap.String("keyword", p.Keyword()),
			zap.Error(secondary.err),
		)
		metrics.SecondaryDegradedTotal.Inc()
		outcome = result.SecondaryDegraded
		domains = nil
	}

	return result.ListEnvelope(
		mode.Smart, avail.Items(), domains, outcome, time.Since(start), generation,
	), nil
}
