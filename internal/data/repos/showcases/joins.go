package showcases

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type ShowcasePersonaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcasePersona) ([]*types.ShowcasePersona, error)
	GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcasePersona, error)
	DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error
}

type showcasePersonaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShowcasePersonaRepo(db *gorm.DB, baseLog *logger.Logger) ShowcasePersonaRepo {
	repoLog := baseLog.With("repo", "ShowcasePersonaRepo")
	return &showcasePersonaRepo{db: db, log: repoLog}
}

func (r *showcasePersonaRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcasePersona) ([]*types.ShowcasePersona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.ShowcasePersona{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *showcasePersonaRepo) GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcasePersona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ShowcasePersona
	if len(showcaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcasePersonaRepo) DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcaseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Delete(&types.ShowcasePersona{}).Error; err != nil {
		return err
	}
	return nil
}

type ShowcaseScenarioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcaseScenario) ([]*types.ShowcaseScenario, error)
	GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcaseScenario, error)
	DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error
}

type showcaseScenarioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShowcaseScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseScenarioRepo {
	repoLog := baseLog.With("repo", "ShowcaseScenarioRepo")
	return &showcaseScenarioRepo{db: db, log: repoLog}
}

func (r *showcaseScenarioRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcaseScenario) ([]*types.ShowcaseScenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.ShowcaseScenario{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *showcaseScenarioRepo) GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcaseScenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ShowcaseScenario
	if len(showcaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcaseScenarioRepo) DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcaseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Delete(&types.ShowcaseScenario{}).Error; err != nil {
		return err
	}
	return nil
}

type ShowcaseCredentialDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcaseCredentialDefinition) ([]*types.ShowcaseCredentialDefinition, error)
	GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcaseCredentialDefinition, error)
	DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error
}

type showcaseCredentialDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShowcaseCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseCredentialDefinitionRepo {
	repoLog := baseLog.With("repo", "ShowcaseCredentialDefinitionRepo")
	return &showcaseCredentialDefinitionRepo{db: db, log: repoLog}
}

func (r *showcaseCredentialDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ShowcaseCredentialDefinition) ([]*types.ShowcaseCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.ShowcaseCredentialDefinition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *showcaseCredentialDefinitionRepo) GetByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.ShowcaseCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ShowcaseCredentialDefinition
	if len(showcaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcaseCredentialDefinitionRepo) DeleteByShowcaseIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcaseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("showcase_id IN ?", showcaseIDs).
		Delete(&types.ShowcaseCredentialDefinition{}).Error; err != nil {
		return err
	}
	return nil
}
