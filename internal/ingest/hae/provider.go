package hae

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/claude/runpro/internal/ingest"
	"github.com/claude/runpro/internal/models"
)

// LongRunKm is the distance from which an imported run counts as a Long Run.
const LongRunKm = 15.0

// Provider converts Health Auto Export workout payloads into log entries.
type Provider struct {
	sink ingest.Appender
	log  *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewProvider creates a new HAE ingest provider.
func NewProvider(sink ingest.Appender, log *slog.Logger) *Provider {
	return &Provider{sink: sink, log: log, seen: make(map[string]struct{})}
}

// Ingest appends the running and walking workouts of payload. Other
// activities are skipped; workouts already imported by HAE id are skipped
// too so re-sending an export does not double the log.
func (p *Provider) Ingest(ctx context.Context, payload *models.HAEPayload) (*ingest.Result, error) {
	result := &ingest.Result{}

	for _, w := range payload.Data.Workouts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.WorkoutsReceived++

		if !p.reserve(w.ID) {
			result.Skip("duplicate")
			continue
		}

		c, ok, err := Convert(w)
		if !ok {
			p.release(w.ID)
			result.Skip(w.Name)
			continue
		}
		if err != nil {
			p.release(w.ID)
			p.log.Warn("rejecting workout", "id", w.ID, "name", w.Name, "error", err)
			result.WorkoutsRejected++
			continue
		}

		if _, err := p.sink.Append(c); err != nil {
			p.release(w.ID)
			p.log.Warn("rejecting workout", "id", w.ID, "name", w.Name, "error", err)
			result.WorkoutsRejected++
			continue
		}
		result.WorkoutsInserted++
	}

	if result.WorkoutsRejected > 0 {
		result.Message = fmt.Sprintf("%d workouts could not be converted; see server log", result.WorkoutsRejected)
	}
	return result, nil
}

// reserve claims id for this ingest. It reports false when the id was already
// imported or another ingest holds it. Workouts without an id are never
// deduplicated.
func (p *Provider) reserve(id string) bool {
	if id == "" {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.seen[id]; ok {
		return false
	}
	p.seen[id] = struct{}{}
	return true
}

func (p *Provider) release(id string) {
	if id == "" {
		return
	}
	p.mu.Lock()
	delete(p.seen, id)
	p.mu.Unlock()
}

// Convert maps a HAE workout to a candidate. ok is false for activities that
// are not runs or walks.
func Convert(w models.HAEWorkout) (c models.WorkoutCandidate, ok bool, err error) {
	kind := DetectActivity(w.Name)
	if kind == KindOther {
		return models.WorkoutCandidate{}, false, nil
	}

	km, err := DistanceKm(w.Distance)
	if err != nil {
		return models.WorkoutCandidate{}, true, err
	}
	if w.Start.IsZero() {
		return models.WorkoutCandidate{}, true, fmt.Errorf("workout has no start time")
	}

	secs := w.Duration
	if secs <= 0 && !w.End.IsZero() {
		secs = w.End.Sub(w.Start.Time).Seconds()
	}
	total := int(math.Round(secs))
	if total <= 0 {
		return models.WorkoutCandidate{}, true, fmt.Errorf("workout has no duration")
	}

	c = models.WorkoutCandidate{
		Date:      w.Start.Format(models.DateLayout),
		Mileage:   math.Round(km*100) / 100,
		Hours:     total / 3600,
		Minutes:   total % 3600 / 60,
		Seconds:   total % 60,
		Type:      models.WorkoutEasy,
		Intensity: models.IntensityMedium,
	}
	switch {
	case kind == KindWalk:
		c.Intensity = models.IntensityLow
	case km >= LongRunKm:
		c.Type = models.WorkoutLong
	}
	return c, true, nil
}
