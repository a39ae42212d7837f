package credentials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type IssuerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, issuers []*types.Issuer) ([]*types.Issuer, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.Issuer, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Issuer, error)
	Update(ctx context.Context, tx *gorm.DB, issuers []*types.Issuer) ([]*types.Issuer, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error
}

type issuerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIssuerRepo(db *gorm.DB, baseLog *logger.Logger) IssuerRepo {
	repoLog := baseLog.With("repo", "IssuerRepo")
	return &issuerRepo{db: db, log: repoLog}
}

func (r *issuerRepo) Create(ctx context.Context, tx *gorm.DB, issuers []*types.Issuer) ([]*types.Issuer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(issuers) == 0 {
		return []*types.Issuer{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&issuers).Error; err != nil {
		return nil, err
	}
	return issuers, nil
}

func (r *issuerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.Issuer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Issuer
	if len(issuerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", issuerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *issuerRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Issuer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Issuer
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *issuerRepo) Update(ctx context.Context, tx *gorm.DB, issuers []*types.Issuer) ([]*types.Issuer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(issuers) == 0 {
		return []*types.Issuer{}, nil
	}

	for _, issuer := range issuers {
		if err := transaction.WithContext(ctx).Save(issuer).Error; err != nil {
			return nil, err
		}
	}
	return issuers, nil
}

func (r *issuerRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(issuerIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", issuerIDs).
		Delete(&types.Issuer{}).Error; err != nil {
		return err
	}
	return nil
}
