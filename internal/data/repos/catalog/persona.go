package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type PersonaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) ([]*types.Persona, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Persona, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Persona, error)
	Update(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) error
}

type personaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	repoLog := baseLog.With("repo", "PersonaRepo")
	return &personaRepo{db: db, log: repoLog}
}

func (r *personaRepo) Create(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(personas) == 0 {
		return []*types.Persona{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&personas).Error; err != nil {
		return nil, err
	}
	return personas, nil
}

func (r *personaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) ([]*types.Persona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Persona
	if len(personaIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", personaIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personaRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Persona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Persona
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *personaRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Persona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Persona
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *personaRepo) Update(ctx context.Context, tx *gorm.DB, personas []*types.Persona) ([]*types.Persona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(personas) == 0 {
		return []*types.Persona{}, nil
	}

	for _, persona := range personas {
		if err := transaction.WithContext(ctx).Save(persona).Error; err != nil {
			return nil, err
		}
	}
	return personas, nil
}

func (r *personaRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, personaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(personaIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", personaIDs).
		Delete(&types.Persona{}).Error; err != nil {
		return err
	}
	return nil
}
