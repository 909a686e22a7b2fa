package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormProcessRepository persists processes in PostgreSQL.
type GormProcessRepository struct {
	db *gorm.DB
}

// NewGormProcessRepository creates a new process repository
func NewGormProcessRepository(db *gorm.DB) *GormProcessRepository {
	return &GormProcessRepository{db: db}
}

func processToRow(process *domain.Process) (*ProcessRow, error) {
	doc, err := json.Marshal(process)
	if err != nil {
		return nil, fmt.Errorf("encode process %s: %w", process.ID, err)
	}
	return &ProcessRow{
		ID:      process.ID,
		ActorID: process.ActorID,
		Name:    process.Name,
		Kind:    process.Kind,
		Version: process.Version,
		Doc:     doc,
	}, nil
}

func processFromRow(row *ProcessRow) (*domain.Process, error) {
	var process domain.Process
	if err := json.Unmarshal(row.Doc, &process); err != nil {
		return nil, fmt.Errorf("decode process %s: %w", row.ID, err)
	}
	return &process, nil
}

func (r *GormProcessRepository) Create(ctx context.Context, process *domain.Process) error {
	row, err := processToRow(process)
	if err != nil {
		return err
	}
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("process", process.ID)
		}
		return err
	}
	return nil
}

func (r *GormProcessRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Process, error) {
	var row ProcessRow
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("process", id)
		}
		return nil, err
	}
	return processFromRow(&row)
}

func (r *GormProcessRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Process, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Order("pk ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	var rows []ProcessRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	processes := make([]domain.Process, 0, len(rows))
	for i := range rows {
		process, err := processFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		processes = append(processes, *process)
	}
	return processes, nil
}

func (r *GormProcessRepository) Update(ctx context.Context, process *domain.Process) error {
	row, err := processToRow(process)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&ProcessRow{}).
		Where("actor_id = ? AND id = ?", process.ActorID, process.ID).
		Updates(map[string]interface{}{
			"name":      row.Name,
			"kind":      row.Kind,
			"version":   row.Version,
			"jsonb_doc": row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("process", process.ID)
	}
	return nil
}

func (r *GormProcessRepository) Delete(ctx context.Context, actorID, id string) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).Delete(&ProcessRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("process", id)
	}
	return nil
}

func (r *GormProcessRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Delete(&ProcessRow{}).Error
}
