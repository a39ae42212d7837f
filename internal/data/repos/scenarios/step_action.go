package scenarios

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type StepActionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, actions []*types.StepAction) ([]*types.StepAction, error)
	GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.StepAction, error)
	DeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error
}

type stepActionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStepActionRepo(db *gorm.DB, baseLog *logger.Logger) StepActionRepo {
	repoLog := baseLog.With("repo", "StepActionRepo")
	return &stepActionRepo{db: db, log: repoLog}
}

func (r *stepActionRepo) Create(ctx context.Context, tx *gorm.DB, actions []*types.StepAction) ([]*types.StepAction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(actions) == 0 {
		return []*types.StepAction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

func (r *stepActionRepo) GetByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) ([]*types.StepAction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StepAction
	if len(stepIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("step_id IN ?", stepIDs).
		Order("action_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *stepActionRepo) DeleteByStepIDs(ctx context.Context, tx *gorm.DB, stepIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(stepIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("step_id IN ?", stepIDs).
		Delete(&types.StepAction{}).Error; err != nil {
		return err
	}
	return nil
}
