package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormEventRepository persists events in PostgreSQL. Each event's batch
// references are flattened into event_edges rows so FindConsuming and
// FindProducing are index lookups.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new event repository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func eventToRow(event *domain.Event) (*EventRow, error) {
	doc, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	return &EventRow{
		ID:        event.ID,
		ActorID:   event.ActorID,
		EventType: event.EventType,
		Timestamp: event.Timestamp,
		Doc:       doc,
	}, nil
}

func eventFromRow(row *EventRow) (*domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(row.Doc, &event); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", row.ID, err)
	}
	return &event, nil
}

// edgeRowsFor flattens the event's batch references into adjacency rows.
func edgeRowsFor(event *domain.Event) []EventEdgeRow {
	edges := make([]EventEdgeRow, 0, len(event.Inputs)+len(event.Outputs))
	for _, ref := range event.Inputs {
		if ref.BatchID == "" {
			continue
		}
		edges = append(edges, EventEdgeRow{
			ActorID: event.ActorID,
			EventID: event.ID,
			BatchID: ref.BatchID,
			Role:    domain.EdgeRoleInput,
		})
	}
	for _, ref := range event.Outputs {
		if ref.BatchID == "" {
			continue
		}
		edges = append(edges, EventEdgeRow{
			ActorID: event.ActorID,
			EventID: event.ID,
			BatchID: ref.BatchID,
			Role:    domain.EdgeRoleOutput,
		})
	}
	return edges
}

func (r *GormEventRepository) Create(ctx context.Context, event *domain.Event) error {
	row, err := eventToRow(event)
	if err != nil {
		return err
	}
	db := dbFrom(ctx, r.db).WithContext(ctx)
	if err := db.Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("event", event.ID)
		}
		return err
	}
	if edges := edgeRowsFor(event); len(edges) > 0 {
		if err := db.Create(&edges).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormEventRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Event, error) {
	var row EventRow
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("event", id)
		}
		return nil, err
	}
	return eventFromRow(&row)
}

func (r *GormEventRepository) FindAll(ctx context.Context, actorID string, filter domain.EventFilter) ([]domain.Event, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Where("actor_id = ?", actorID)
	if filter.EventType != "" {
		db = db.Where("event_type = ?", filter.EventType)
	}
	db = db.Order("timestamp DESC, pk DESC")
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}
	var rows []EventRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return eventsFromRows(rows)
}

func (r *GormEventRepository) FindConsuming(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	return r.findByEdge(ctx, actorID, batchID, domain.EdgeRoleInput)
}

func (r *GormEventRepository) FindProducing(ctx context.Context, actorID, batchID string) ([]domain.Event, error) {
	return r.findByEdge(ctx, actorID, batchID, domain.EdgeRoleOutput)
}

// findByEdge resolves edge rows to events, earliest first.
func (r *GormEventRepository) findByEdge(ctx context.Context, actorID, batchID, role string) ([]domain.Event, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx)
	var edges []EventEdgeRow
	err := db.Where("actor_id = ? AND batch_id = ? AND role = ?", actorID, batchID, role).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return []domain.Event{}, nil
	}
	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.EventID)
	}
	var rows []EventRow
	err = db.Where("actor_id = ? AND id IN ?", actorID, ids).
		Order("timestamp ASC, pk ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return eventsFromRows(rows)
}

func eventsFromRows(rows []EventRow) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(rows))
	for i := range rows {
		event, err := eventFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, nil
}

func (r *GormEventRepository) Update(ctx context.Context, event *domain.Event) error {
	row, err := eventToRow(event)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&EventRow{}).
		Where("actor_id = ? AND id = ?", event.ActorID, event.ID).
		Updates(map[string]interface{}{
			"timestamp": row.Timestamp,
			"jsonb_doc": row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("event", event.ID)
	}
	return nil
}

func (r *GormEventRepository) DeleteByActor(ctx context.Context, actorID string) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)
	if err := db.Where("actor_id = ?", actorID).Delete(&EventEdgeRow{}).Error; err != nil {
		return err
	}
	return db.Where("actor_id = ?", actorID).Delete(&EventRow{}).Error
}
