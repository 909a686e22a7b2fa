package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormLocationRepository persists locations in PostgreSQL.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new location repository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func locationToRow(location *domain.Location) (*LocationRow, error) {
	doc, err := json.Marshal(location)
	if err != nil {
		return nil, fmt.Errorf("encode location %s: %w", location.ID, err)
	}
	return &LocationRow{
		ID:      location.ID,
		ActorID: location.ActorID,
		Name:    location.Name,
		Kind:    location.Kind,
		Doc:     doc,
	}, nil
}

func locationFromRow(row *LocationRow) (*domain.Location, error) {
	var location domain.Location
	if err := json.Unmarshal(row.Doc, &location); err != nil {
		return nil, fmt.Errorf("decode location %s: %w", row.ID, err)
	}
	return &location, nil
}

func (r *GormLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	row, err := locationToRow(location)
	if err != nil {
		return err
	}
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("location", location.ID)
		}
		return err
	}
	return nil
}

func (r *GormLocationRepository) FindByID(ctx context.Context, actorID, id string) (*domain.Location, error) {
	var row LocationRow
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("location", id)
		}
		return nil, err
	}
	return locationFromRow(&row)
}

func (r *GormLocationRepository) FindAll(ctx context.Context, actorID string, limit, offset int) ([]domain.Location, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Order("pk ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	var rows []LocationRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	locations := make([]domain.Location, 0, len(rows))
	for i := range rows {
		location, err := locationFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		locations = append(locations, *location)
	}
	return locations, nil
}

func (r *GormLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	row, err := locationToRow(location)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&LocationRow{}).
		Where("actor_id = ? AND id = ?", location.ActorID, location.ID).
		Updates(map[string]interface{}{
			"name":      row.Name,
			"kind":      row.Kind,
			"jsonb_doc": row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("location", location.ID)
	}
	return nil
}

func (r *GormLocationRepository) Delete(ctx context.Context, actorID, id string) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ? AND id = ?", actorID, id).Delete(&LocationRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("location", id)
	}
	return nil
}

func (r *GormLocationRepository) DeleteByActor(ctx context.Context, actorID string) error {
	return dbFrom(ctx, r.db).WithContext(ctx).
		Where("actor_id = ?", actorID).Delete(&LocationRow{}).Error
}
