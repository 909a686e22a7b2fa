package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormItemRepository persists items in PostgreSQL.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new item repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func itemToRow(item *domain.Item) (*ItemRow, error) {
	doc, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item %s: %w", item.ID, err)
	}
	return &ItemRow{
		ID:       item.ID,
		ActorID:  item.ActorID,
		Name:     item.Name,
		Category: item.Category,
		Doc:      doc,
	}, nil
}

func itemFromRow(row *ItemRow) (*domain.Item, error) {
	var item domain.Item
	if err := json.Unmarshal(row.Doc, &item); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", row.ID, err)
	}
	return &item, nil
}

func (r *GormItemRepository) Create(ctx context.Context, item *domain.Item) error {
	row, err := itemToRow(item)
	if err != nil {
		return err
	}
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("item", item.ID)
		}
		return err
	}
	return nil
}

func (r *GormItemRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Item, error) {
	var row ItemRow
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("item", id)
		}
		return nil, err
	}
	return itemFromRow(&row)
}

func (r *GormItemRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Item, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Order("pk ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	var rows []ItemRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(rows))
	for i := range rows {
		item, err := itemFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

func (r *GormItemRepository) Update(ctx context.Context, item *domain.Item) error {
	row, err := itemToRow(item)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&ItemRow{}).
		Where("actor_id = ? AND id = ?", item.ActorID, item.ID).
		Updates(map[string]interface{}{
			"name":      row.Name,
			"category":  row.Category,
			"jsonb_doc": row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("item", item.ID)
	}
	return nil
}

func (r *GormItemRepository) Delete(ctx context.Context, actorID, id string) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).Delete(&ItemRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("item", id)
	}
	return nil
}

func (r *GormItemRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Delete(&ItemRow{}).Error
}
