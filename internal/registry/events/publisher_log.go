package events

import (
	"context"
	"log/slog"
	"time"
)

// LogPublisher writes events to the structured log. It is the default sink
// when Kafka is not configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.logger.InfoContext(ctx, "registry event",
		"type", event.Type,
		"certificate_id", event.CertificateID,
		"admin", event.Admin,
		"actor", event.Actor,
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
