package scenarios

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type ScenarioRepo interface {
	Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Scenario, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Scenario, error)
	Update(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error
}

type scenarioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioRepo {
	repoLog := baseLog.With("repo", "ScenarioRepo")
	return &scenarioRepo{db: db, log: repoLog}
}

func (r *scenarioRepo) Create(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scenarios) == 0 {
		return []*types.Scenario{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *scenarioRepo) GetByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Scenario
	if len(scenarioIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", scenarioIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scenarioRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Scenario
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

func (r *scenarioRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Scenario
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scenarioRepo) Update(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) ([]*types.Scenario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scenarios) == 0 {
		return []*types.Scenario{}, nil
	}

	for _, scenario := range scenarios {
		if err := transaction.WithContext(ctx).Save(scenario).Error; err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

func (r *scenarioRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, scenarioIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(scenarioIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", scenarioIDs).
		Delete(&types.Scenario{}).Error; err != nil {
		return err
	}
	return nil
}
