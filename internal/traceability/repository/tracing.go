package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

var tracer = otel.Tracer("traceability-repository")

// TracingBatchRepository wraps a BatchRepository with tracing. The batch
// and event stores sit on every engine and traversal path, so these two
// get spans; the entity catalogs do not.
type TracingBatchRepository struct {
	inner domain.BatchRepository
}

// NewTracingBatchRepository creates a new batch repository with tracing
func NewTracingBatchRepository(inner domain.BatchRepository) *TracingBatchRepository {
	return &TracingBatchRepository{inner: inner}
}

// Create with tracing
func (r *TracingBatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	ctx, span := tracer.Start(ctx, "repository.Batch.Create",
		trace.WithAttributes(
			attribute.String("batch.id", batch.ID),
			attribute.String("batch.actor_id", batch.ActorID),
			attribute.String("batch.item_id", batch.ItemID),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, batch); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindByID with tracing
func (r *TracingBatchRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Batch, error) {
	ctx, span := tracer.Start(ctx, "repository.Batch.FindByID",
		trace.WithAttributes(
			attribute.String("batch.id", id),
			attribute.String("batch.actor_id", actorID),
		),
	)
	defer span.End()

	batch, err := r.inner.FindByID(ctx, actorID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("batch.status", batch.Status))
	return batch, nil
}

// FindAll with tracing
func (r *TracingBatchRepository) FindAll(ctx context.Context, actorID string, filter domain.BatchFilter) ([]domain.Batch, error) {
	ctx, span := tracer.Start(ctx, "repository.Batch.FindAll",
		trace.WithAttributes(
			attribute.String("batch.actor_id", actorID),
			attribute.String("query.status", filter.Status),
			attribute.String("query.item_id", filter.ItemID),
		),
	)
	defer span.End()

	batches, err := r.inner.FindAll(ctx, actorID, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(batches)))
	return batches, nil
}

// Update with tracing
func (r *TracingBatchRepository) Update(ctx context.Context, batch *domain.Batch) error {
	ctx, span := tracer.Start(ctx, "repository.Batch.Update",
		trace.WithAttributes(
			attribute.String("batch.id", batch.ID),
			attribute.String("batch.actor_id", batch.ActorID),
			attribute.String("batch.status", batch.Status),
		),
	)
	defer span.End()

	if err := r.inner.Update(ctx, batch); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Delete with tracing
func (r *TracingBatchRepository) Delete(ctx context.Context, actorID, id string) error {
	ctx, span := tracer.Start(ctx, "repository.Batch.Delete",
		trace.WithAttributes(
			attribute.String("batch.id", id),
			attribute.String("batch.actor_id", actorID),
		),
	)
	defer span.End()

	if err := r.inner.Delete(ctx, actorID, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// DeleteByActor with tracing
func (r *TracingBatchRepository) DeleteByActor(ctx context.Context, actorID string) error {
	ctx, span := tracer.Start(ctx, "repository.Batch.DeleteByActor",
		trace.WithAttributes(
			attribute.String("batch.actor_id", actorID),
		),
	)
	defer span.End()

	if err := r.inner.DeleteByActor(ctx, actorID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// TracingEventRepository wraps an EventRepository with tracing
type TracingEventRepository struct {
	inner domain.EventRepository
}

// NewTracingEventRepository creates a new event repository with tracing
func NewTracingEventRepository(inner domain.EventRepository) *TracingEventRepository {
	return &TracingEventRepository{inner: inner}
}

// Create with tracing
func (r *TracingEventRepository) Create(ctx context.Context, event *domain.Event) error {
	ctx, span := tracer.Start(ctx, "repository.Event.Create",
		trace.WithAttributes(
			attribute.String("event.id", event.ID),
			attribute.String("event.actor_id", event.ActorID),
			attribute.String("event.type", event.EventType),
			attribute.Int("event.inputs", len(event.Inputs)),
			attribute.Int("event.outputs", len(event.Outputs)),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindByID with tracing
func (r *TracingEventRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Event, error) {
	ctx, span := tracer.Start(ctx, "repository.Event.FindByID",
		trace.WithAttributes(
			attribute.String("event.id", id),
			attribute.String("event.actor_id", actorID),
		),
	)
	defer span.End()

	event, err := r.inner.FindByID(ctx, actorID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("event.type", event.EventType))
	return event, nil
}

// FindAll with tracing
func (r *TracingEventRepository) FindAll(ctx context.Context, actorID string, filter domain.EventFilter) ([]domain.Event, error) {
	ctx, span := tracer.Start(ctx, "repository.Event.FindAll",
		trace.WithAttributes(
			attribute.String("event.actor_id", actorID),
			attribute.String("query.event_type", filter.EventType),
		),
	)
	defer span.End()

	events, err := r.inner.FindAll(ctx, actorID, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(events)))
	return events, nil
}

// FindConsuming with tracing
func (r *TracingEventRepository) FindConsuming(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	ctx, span := tracer.Start(ctx, "repository.Event.FindConsuming",
		trace.WithAttributes(
			attribute.String("event.actor_id", actorID),
			attribute.String("batch.id", batchID),
		),
	)
	defer span.End()

	events, err := r.inner.FindConsuming(ctx, actorID, batchID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(events)))
	return events, nil
}

// FindProducing with tracing
func (r *TracingEventRepository) FindProducing(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	ctx, span := tracer.Start(ctx, "repository.Event.FindProducing",
		trace.WithAttributes(
			attribute.String("event.actor_id", actorID),
			attribute.String("batch.id", batchID),
		),
	)
	defer span.End()

	events, err := r.inner.FindProducing(ctx, actorID, batchID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(events)))
	return events, nil
}

// Update with tracing
func (r *TracingEventRepository) Update(ctx context.Context, event *domain.Event) error {
	ctx, span := tracer.Start(ctx, "repository.Event.Update",
		trace.WithAttributes(
			attribute.String("event.id", event.ID),
			attribute.String("event.actor_id", event.ActorID),
		),
	)
	defer span.End()

	if err := r.inner.Update(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// DeleteByActor with tracing
func (r *TracingEventRepository) DeleteByActor(ctx context.Context, actorID string) error {
	ctx, span := tracer.Start(ctx, "repository.Event.DeleteByActor",
		trace.WithAttributes(
			attribute.String("event.actor_id", actorID),
		),
	)
	defer span.End()

	if err := r.inner.DeleteByActor(ctx, actorID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
