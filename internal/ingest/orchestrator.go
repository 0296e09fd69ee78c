// Package ingest turns a Garmin push batch into downstream writes: a
// notification publish, a trainings-log row, and a weekly aggregate merge per
// activity.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"

	"example.com/ingest/internal/domain"
	"example.com/ingest/internal/garmin"
	"example.com/ingest/internal/identity"
)

// Notifier publishes the activity_processed event for one session.
type Notifier interface {
	Publish(ctx context.Context, event domain.NotificationEvent) error
}

// LogStore appends one row per processed session.
type LogStore interface {
	InsertLogRecord(ctx context.Context, rec domain.LogRecord) error
}

// AggregateStore merges additive deltas into the weekly totals.
type AggregateStore interface {
	ApplyAggregateUpdate(ctx context.Context, upd domain.AggregateUpdate) error
}

// Result is the batch-level outcome returned to the boundary. Per-activity
// failures are not reported here; they surface only in logs and metrics.
type Result struct {
	StatusCode int
	Message    string
}

// InvalidFormatMessage is returned when the batch envelope is structurally
// unusable.
const InvalidFormatMessage = "Invalid request format: 'activityDetails' is missing or not an array"

// ProcessedMessage is returned once the per-activity loop completes,
// regardless of how many activities were skipped or failed.
const ProcessedMessage = "Processed successfully"

// Option configures optional behaviour for the Orchestrator.
type Option func(*Orchestrator)

// WithLogger overrides the logger used to report per-activity failures.
func WithLogger(logger *log.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator processes batches sequentially, isolating failures per
// activity: one activity's resolution or dispatch failure never aborts the
// batch or affects its siblings.
type Orchestrator struct {
	cache      *identity.Cache
	resolver   identity.Resolver
	notifier   Notifier
	logs       LogStore
	aggregates AggregateStore
	logger     *log.Logger
}

// NewOrchestrator wires the orchestrator with its collaborators. The cache is
// shared process-wide and injected so tests can isolate it.
func NewOrchestrator(cache *identity.Cache, resolver identity.Resolver, notifier Notifier, logs LogStore, aggregates AggregateStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cache:      cache,
		resolver:   resolver,
		notifier:   notifier,
		logs:       logs,
		aggregates: aggregates,
		logger:     log.New(log.Writer(), "[ingest] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessBatch validates the envelope and walks the activities one at a time.
// A structurally unusable envelope fails the whole batch with a 400-equivalent
// result before any downstream call is made; everything else ends in a 200
// result once the loop completes.
func (o *Orchestrator) ProcessBatch(ctx context.Context, body []byte) Result {
	var envelope struct {
		ActivityDetails json.RawMessage `json:"activityDetails"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.ActivityDetails) == 0 {
		recordBatch("invalid")
		return Result{StatusCode: http.StatusBadRequest, Message: InvalidFormatMessage}
	}

	var activities []garmin.Activity
	if err := json.Unmarshal(envelope.ActivityDetails, &activities); err != nil || activities == nil {
		recordBatch("invalid")
		return Result{StatusCode: http.StatusBadRequest, Message: InvalidFormatMessage}
	}

	batchID := uuid.NewString()
	for i, activity := range activities {
		vendorID := activity.UserID
		if vendorID == "" {
			o.logger.Printf("batch %s: activity %d has no userId, skipping", batchID, i)
			recordSkippedMissingUser()
			continue
		}

		userID, cached := o.cache.Get(vendorID)
		if !cached {
			resolved, err := o.resolver.Resolve(ctx, vendorID)
			if err != nil {
				o.logger.Printf("batch %s: resolving vendor id %s: %v", batchID, vendorID, err)
				recordResolutionError()
				continue
			}
			o.cache.Put(vendorID, resolved)
			userID = resolved
		}

		session := garmin.FromActivity(activity, userID)

		if err := o.dispatch(ctx, session); err != nil {
			o.logger.Printf("batch %s: session %d for user %s: %v", batchID, session.SessionID, userID, err)
			recordDispatchError()
			continue
		}
		recordProcessed(session.ActivityType)
	}

	recordBatch("ok")
	return Result{StatusCode: http.StatusOK, Message: ProcessedMessage}
}

// dispatch issues the three downstream writes in fixed order: notification,
// log row, aggregate merge. The first failure abandons the remaining writes
// for this session; the caller keeps the batch going.
func (o *Orchestrator) dispatch(ctx context.Context, session domain.TrainingSession) error {
	if err := o.notifier.Publish(ctx, session.BuildNotification()); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	if err := o.logs.InsertLogRecord(ctx, session.BuildLogRecord()); err != nil {
		return fmt.Errorf("insert log record: %w", err)
	}
	if err := o.aggregates.ApplyAggregateUpdate(ctx, session.BuildAggregateUpdate()); err != nil {
		return fmt.Errorf("apply aggregate update: %w", err)
	}
	return nil
}
