package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type TenantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tenants []*types.Tenant) ([]*types.Tenant, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) ([]*types.Tenant, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Tenant, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) error
}

type tenantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	repoLog := baseLog.With("repo", "TenantRepo")
	return &tenantRepo{db: db, log: repoLog}
}

func (r *tenantRepo) Create(ctx context.Context, tx *gorm.DB, tenants []*types.Tenant) ([]*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(tenants) == 0 {
		return []*types.Tenant{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *tenantRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) ([]*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Tenant
	if len(tenantIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", tenantIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *tenantRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Tenant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Tenant
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *tenantRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, tenantIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(tenantIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", tenantIDs).
		Delete(&types.Tenant{}).Error; err != nil {
		return err
	}
	return nil
}
