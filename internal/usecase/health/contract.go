package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CheckerPinger checks collaborator service availability.
type CheckerPinger interface {
	HealthCheck(ctx context.Context) error
}
