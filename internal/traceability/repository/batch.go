package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormBatchRepository persists batches in PostgreSQL.
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new batch repository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

func batchToRow(batch *domain.Batch) (*BatchRow, error) {
	doc, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("encode batch %s: %w", batch.ID, err)
	}
	return &BatchRow{
		ID:             batch.ID,
		ActorID:        batch.ActorID,
		ItemID:         batch.ItemID,
		Status:         batch.Status,
		ProductionDate: batch.ProductionDate,
		ExpirationDate: batch.ExpirationDate,
		IsMockRecall:   batch.IsMockRecall,
		Doc:            doc,
	}, nil
}

func batchFromRow(row *BatchRow) (*domain.Batch, error) {
	var batch domain.Batch
	if err := json.Unmarshal(row.Doc, &batch); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", row.ID, err)
	}
	return &batch, nil
}

func (r *GormBatchRepository) Create(ctx context.Context, batch *domain.Batch) error {
	row, err := batchToRow(batch)
	if err != nil {
		return err
	}
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("batch", batch.ID)
		}
		return err
	}
	return nil
}

func (r *GormBatchRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Batch, error) {
	var row BatchRow
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("batch", id)
		}
		return nil, err
	}
	return batchFromRow(&row)
}

func (r *GormBatchRepository) FindAll(ctx context.Context, actorID string, filter domain.BatchFilter) ([]domain.Batch, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Where("actor_id = ?", actorID)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ItemID != "" {
		db = db.Where("item_id = ?", filter.ItemID)
	}
	db = db.Order("production_date DESC, pk DESC")
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}
	var rows []BatchRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	batches := make([]domain.Batch, 0, len(rows))
	for i := range rows {
		batch, err := batchFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		batches = append(batches, *batch)
	}
	return batches, nil
}

func (r *GormBatchRepository) Update(ctx context.Context, batch *domain.Batch) error {
	row, err := batchToRow(batch)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&BatchRow{}).
		Where("actor_id = ? AND id = ?", batch.ActorID, batch.ID).
		Updates(map[string]interface{}{
			"item_id":         row.ItemID,
			"status":          row.Status,
			"production_date": row.ProductionDate,
			"expiration_date": row.ExpirationDate,
			"is_mock_recall":  row.IsMockRecall,
			"jsonb_doc":       row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("batch", batch.ID)
	}
	return nil
}

func (r *GormBatchRepository) Delete(ctx context.Context, actorID, id string) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).Delete(&BatchRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("batch", id)
	}
	return nil
}

func (r *GormBatchRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Delete(&BatchRow{}).Error
}
