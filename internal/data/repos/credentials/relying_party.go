package credentials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type RelyingPartyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, parties []*types.RelyingParty) ([]*types.RelyingParty, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) ([]*types.RelyingParty, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.RelyingParty, error)
	Update(ctx context.Context, tx *gorm.DB, parties []*types.RelyingParty) ([]*types.RelyingParty, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) error
}

type relyingPartyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelyingPartyRepo(db *gorm.DB, baseLog *logger.Logger) RelyingPartyRepo {
	repoLog := baseLog.With("repo", "RelyingPartyRepo")
	return &relyingPartyRepo{db: db, log: repoLog}
}

func (r *relyingPartyRepo) Create(ctx context.Context, tx *gorm.DB, parties []*types.RelyingParty) ([]*types.RelyingParty, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(parties) == 0 {
		return []*types.RelyingParty{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&parties).Error; err != nil {
		return nil, err
	}
	return parties, nil
}

func (r *relyingPartyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) ([]*types.RelyingParty, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RelyingParty
	if len(partyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", partyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *relyingPartyRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.RelyingParty, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RelyingParty
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *relyingPartyRepo) Update(ctx context.Context, tx *gorm.DB, parties []*types.RelyingParty) ([]*types.RelyingParty, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(parties) == 0 {
		return []*types.RelyingParty{}, nil
	}

	for _, party := range parties {
		if err := transaction.WithContext(ctx).Save(party).Error; err != nil {
			return nil, err
		}
	}
	return parties, nil
}

func (r *relyingPartyRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(partyIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", partyIDs).
		Delete(&types.RelyingParty{}).Error; err != nil {
		return err
	}
	return nil
}
