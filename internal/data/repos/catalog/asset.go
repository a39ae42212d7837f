package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type AssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error)
	Update(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	repoLog := baseLog.With("repo", "AssetRepo")
	return &assetRepo{db: db, log: repoLog}
}

func (r *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepo) GetByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Asset
	if len(assetIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", assetIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Asset
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assetRepo) Update(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}

	for _, asset := range assets {
		if err := transaction.WithContext(ctx).Save(asset).Error; err != nil {
			return nil, err
		}
	}
	return assets, nil
}

func (r *assetRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, assetIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(assetIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", assetIDs).
		Delete(&types.Asset{}).Error; err != nil {
		return err
	}
	return nil
}
