package pipeline

import (
	"context"
	"log/slog"

	"github.com/tacit-labs/tacit/internal/extraction/domain"
	"github.com/tacit-labs/tacit/internal/extraction/resolver"
	"github.com/tacit-labs/tacit/internal/extraction/timeparse"
	"github.com/tacit-labs/tacit/pkg/observability"
)

// Assembler runs the full extraction pipeline for one communication.
// It holds no mutable state across calls and is safe for concurrent
// use once constructed.
type Assembler struct {
	recognizer domain.Recognizer
	times      *timeparse.Resolver
	policy     SchedulePolicy
	logger     *slog.Logger
	metrics    observability.Metrics
}

func NewAssembler(recognizer domain.Recognizer, policy SchedulePolicy, logger *slog.Logger, metrics observability.Metrics) *Assembler {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Assembler{
		recognizer: recognizer,
		times:      timeparse.NewResolver(),
		policy:     policy,
		logger:     logger,
		metrics:    metrics,
	}
}

// Extract produces zero or more commitments from a communication.
// Empty content and missing intent phrases short-circuit before any
// recognizer call. A failure inside one segment is logged and that
// segment yields nothing; sibling segments are unaffected.
func (a *Assembler) Extract(ctx context.Context, comm domain.Communication) []*domain.Commitment {
	if comm.IsEmpty() {
		a.metrics.Counter(observability.MetricCommunicationsSkipped, 1, observability.T("reason", "empty"))
		return nil
	}
	if !HasCommitmentIntent(comm.Content()) {
		a.metrics.Counter(observability.MetricCommunicationsSkipped, 1, observability.T("reason", "no_intent"))
		return nil
	}

	var commitments []*domain.Commitment
	for _, segment := range Segment(comm.Content()) {
		commitment, err := a.extractSegment(ctx, segment, comm)
		if err != nil {
			a.metrics.Counter(observability.MetricSegmentFailures, 1)
			a.logger.WarnContext(ctx, "segment extraction failed",
				slog.String("segment", segment),
				slog.String("error", err.Error()))
			continue
		}
		if commitment != nil {
			commitments = append(commitments, commitment)
		}
	}

	a.metrics.Counter(observability.MetricCommitmentsExtracted, int64(len(commitments)))
	return commitments
}

// Process extracts commitments and schedules one reminder per
// commitment using the configured policy.
func (a *Assembler) Process(ctx context.Context, comm domain.Communication) []*domain.Reminder {
	commitments := a.Extract(ctx, comm)

	reminders := make([]*domain.Reminder, 0, len(commitments))
	for _, commitment := range commitments {
		reminder, err := a.policy.Schedule(commitment, comm.Timestamp())
		if err != nil {
			a.logger.WarnContext(ctx, "reminder scheduling failed",
				slog.String("commitment", commitment.String()),
				slog.String("error", err.Error()))
			continue
		}
		reminders = append(reminders, reminder)
	}

	a.metrics.Counter(observability.MetricRemindersScheduled, int64(len(reminders)))
	return reminders
}

func (a *Assembler) extractSegment(ctx context.Context, segment string, comm domain.Communication) (*domain.Commitment, error) {
	a.metrics.Counter(observability.MetricRecognizerCalls, 1)
	entities, err := a.recognizer.Recognize(ctx, segment)
	if err != nil {
		a.metrics.Counter(observability.MetricRecognizerErrors, 1)
		return nil, err
	}

	// Time is mandatory; everything else has a fallback.
	best, ok := timeparse.Best(a.times.Resolve(segment, comm.Timestamp()))
	if !ok {
		return nil, nil
	}

	who, ok := resolver.ResolvePerson(entities)
	if !ok {
		who = comm.Recipient()
	}
	what := resolver.ClassifyActivity(segment)
	where, ok := resolver.ResolveLocation(segment, entities)
	if !ok {
		where = domain.UnspecifiedLocation
	}

	start, end := resolver.Window(best, what, segment)
	return domain.NewCommitment(start, end, who, what, where)
}
