package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/runpro/internal/ingest"
)

// Provider processes Alpha Progression CSV exports.
type Provider struct {
	sink ingest.Appender
	log  *slog.Logger
}

// NewProvider creates a new Alpha Progression ingest provider.
func NewProvider(sink ingest.Appender, log *slog.Logger) *Provider {
	return &Provider{sink: sink, log: log}
}

// Ingest parses a CSV export and appends one strength workout per session.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	result := &ingest.Result{}
	for _, s := range sessions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.WorkoutsReceived++

		c, ok := ToCandidate(s)
		if !ok {
			result.Skip("empty session")
			continue
		}
		if _, err := p.sink.Append(c); err != nil {
			p.log.Warn("rejecting session", "name", s.Name, "date", c.Date, "error", err)
			result.WorkoutsRejected++
			continue
		}
		result.WorkoutsInserted++
	}
	p.log.Info("alpha import", "sessions", len(sessions), "inserted", result.WorkoutsInserted)
	return result, nil
}
