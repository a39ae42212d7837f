package scenarios

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type ScenarioPersonaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, links []*types.ScenarioPersona) ([]*types.ScenarioPersona, error)
	GetByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.ScenarioPersona, error)
	DeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error
}

type scenarioPersonaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScenarioPersonaRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioPersonaRepo {
	repoLog := baseLog.With("repo", "ScenarioPersonaRepo")
	return &scenarioPersonaRepo{db: db, log: repoLog}
}

func (r *scenarioPersonaRepo) Create(ctx context.Context, tx *gorm.DB, links []*types.ScenarioPersona) ([]*types.ScenarioPersona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(links) == 0 {
		return []*types.ScenarioPersona{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *scenarioPersonaRepo) GetByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.ScenarioPersona, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScenarioPersona
	if len(scenarioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("scenario_id IN ?", scenarioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scenarioPersonaRepo) DeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scenarioIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("scenario_id IN ?", scenarioIDs).
		Delete(&types.ScenarioPersona{}).Error; err != nil {
		return err
	}
	return nil
}
