package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openorigin/traceability/internal/traceability/domain"
)

// GormActorRepository persists actors in PostgreSQL.
type GormActorRepository struct {
	db *gorm.DB
}

// NewGormActorRepository creates a new actor repository
func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

func actorToRow(actor *domain.Actor) (*ActorRow, error) {
	doc, err := json.Marshal(actor)
	if err != nil {
		return nil, fmt.Errorf("encode actor %s: %w", actor.ID, err)
	}
	return &ActorRow{
		ID:   actor.ID,
		Name: actor.Name,
		Kind: actor.Kind,
		Doc:  doc,
	}, nil
}

func actorFromRow(row *ActorRow) (*domain.Actor, error) {
	var actor domain.Actor
	if err := json.Unmarshal(row.Doc, &actor); err != nil {
		return nil, fmt.Errorf("decode actor %s: %w", row.ID, err)
	}
	return &actor, nil
}

func (r *GormActorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	row, err := actorToRow(actor)
	if err != nil {
		return err
	}
	if err := dbFrom(ctx, r.db).WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicate(err) {
			return domain.Conflict("actor", actor.ID)
		}
		return err
	}
	return nil
}

func (r *GormActorRepository) FindByID(ctx context.Context, id string) (*domain.Actor, error) {
	var row ActorRow
	err := dbFrom(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("actor", id)
		}
		return nil, err
	}
	return actorFromRow(&row)
}

func (r *GormActorRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Actor, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Order("pk ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	var rows []ActorRow
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	actors := make([]domain.Actor, 0, len(rows))
	for i := range rows {
		actor, err := actorFromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		actors = append(actors, *actor)
	}
	return actors, nil
}

func (r *GormActorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	row, err := actorToRow(actor)
	if err != nil {
		return err
	}
	res := dbFrom(ctx, r.db).WithContext(ctx).Model(&ActorRow{}).
		Where("id = ?", actor.ID).
		Updates(map[string]interface{}{
			"name":      row.Name,
			"kind":      row.Kind,
			"jsonb_doc": row.Doc,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("actor", actor.ID)
	}
	return nil
}

func (r *GormActorRepository) Delete(ctx context.Context, id string) error {
	res := dbFrom(ctx, r.db).WithContext(ctx).Where("id = ?", id).Delete(&ActorRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("actor", id)
	}
	return nil
}
