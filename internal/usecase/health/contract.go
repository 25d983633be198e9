package health

import "context"

// DataPinger checks knowledge-source availability (NAS directory or Redis).
type DataPinger interface {
	Ping(ctx context.Context) error
}

// GeneratorChecker checks chat-model provider availability.
type GeneratorChecker interface {
	HealthCheck(ctx context.Context) error
}
