package scenarios

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type StepRepo interface {
	Create(ctx context.Context, tx *gorm.DB, steps []*types.Step) ([]*types.Step, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.Step, error)
	GetByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Step, error)
	DeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error
}

type stepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	repoLog := baseLog.With("repo", "StepRepo")
	return &stepRepo{db: db, log: repoLog}
}

func (r *stepRepo) Create(ctx context.Context, tx *gorm.DB, steps []*types.Step) ([]*types.Step, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(steps) == 0 {
		return []*types.Step{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *stepRepo) GetByIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.Step, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Step
	if len(stepIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", stepIDs).
		Order("step_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stepRepo) GetByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Step, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Step
	if len(scenarioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("scenario_id IN ?", scenarioIDs).
		Order("step_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stepRepo) DeleteByScenarioIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scenarioIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("scenario_id IN ?", scenarioIDs).
		Delete(&types.Step{}).Error; err != nil {
		return err
	}
	return nil
}
