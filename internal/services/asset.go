package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// AssetService stores references to externally hosted media. Binary
// content never passes through here.
type AssetService interface {
	Create(ctx context.Context, input *types.Asset) (*types.Asset, error)
	Update(ctx context.Context, id uuid.UUID, input *types.Asset) (*types.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	List(ctx context.Context) ([]*types.Asset, error)
}

type assetService struct {
	db        *gorm.DB
	log       *logger.Logger
	assetRepo repos.AssetRepo
}

func NewAssetService(db *gorm.DB, baseLog *logger.Logger, assetRepo repos.AssetRepo) AssetService {
	serviceLog := baseLog.With("service", "AssetService")
	return &assetService{db: db, log: serviceLog, assetRepo: assetRepo}
}

func (s *assetService) Create(ctx context.Context, input *types.Asset) (*types.Asset, error) {
	const op = "AssetService.Create"

	if input == nil || input.MediaType == "" {
		return nil, apperr.Validation(op, "media type is required")
	}
	if input.StorageKey == "" {
		return nil, apperr.Validation(op, "storage key is required")
	}

	asset := *input
	asset.ID = uuid.New()
	if _, err := s.assetRepo.Create(ctx, nil, []*types.Asset{&asset}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &asset, nil
}

func (s *assetService) Update(ctx context.Context, id uuid.UUID, input *types.Asset) (*types.Asset, error) {
	const op = "AssetService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input == nil || input.MediaType == "" {
		return nil, apperr.Validation(op, "media type is required")
	}
	if input.StorageKey == "" {
		return nil, apperr.Validation(op, "storage key is required")
	}

	asset := *input
	asset.ID = id
	asset.CreatedAt = existing.CreatedAt
	if _, err := s.assetRepo.Update(ctx, nil, []*types.Asset{&asset}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &asset, nil
}

func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "AssetService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.assetRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *assetService) GetByID(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	const op = "AssetService.GetByID"

	assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(assets) == 0 {
		return nil, apperr.NotFound(op, "asset", id)
	}
	return assets[0], nil
}

func (s *assetService) List(ctx context.Context) ([]*types.Asset, error) {
	const op = "AssetService.List"

	assets, err := s.assetRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return assets, nil
}
