package showcases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type ShowcaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, showcases []*types.Showcase) ([]*types.Showcase, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.Showcase, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Showcase, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Showcase, error)
	ListUnapproved(ctx context.Context, tx *gorm.DB) ([]*types.Showcase, error)
	Update(ctx context.Context, tx *gorm.DB, showcases []*types.Showcase) ([]*types.Showcase, error)
	SetApproval(ctx context.Context, tx *gorm.DB, showcaseID uuid.UUID, approverID uuid.UUID, approvedAt time.Time) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error
}

type showcaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShowcaseRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseRepo {
	repoLog := baseLog.With("repo", "ShowcaseRepo")
	return &showcaseRepo{db: db, log: repoLog}
}

func (r *showcaseRepo) Create(ctx context.Context, tx *gorm.DB, showcases []*types.Showcase) ([]*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcases) == 0 {
		return []*types.Showcase{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&showcases).Error; err != nil {
		return nil, err
	}
	return showcases, nil
}

func (r *showcaseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) ([]*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Showcase
	if len(showcaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", showcaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcaseRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Showcase
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

func (r *showcaseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Showcase
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcaseRepo) ListUnapproved(ctx context.Context, tx *gorm.DB) ([]*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Showcase
	if err := transaction.WithContext(ctx).
		Where("approved_at IS NULL").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *showcaseRepo) Update(ctx context.Context, tx *gorm.DB, showcases []*types.Showcase) ([]*types.Showcase, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcases) == 0 {
		return []*types.Showcase{}, nil
	}

	for _, showcase := range showcases {
		if err := transaction.WithContext(ctx).Save(showcase).Error; err != nil {
			return nil, err
		}
	}
	return showcases, nil
}

func (r *showcaseRepo) SetApproval(ctx context.Context, tx *gorm.DB, showcaseID uuid.UUID, approverID uuid.UUID, approvedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Showcase{}).
		Where("id = ?", showcaseID).
		Updates(map[string]interface{}{
			"approved_by_id": approverID,
			"approved_at":    approvedAt,
		}).Error; err != nil {
		return err
	}
	return nil
}

func (r *showcaseRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, showcaseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(showcaseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", showcaseIDs).
		Delete(&types.Showcase{}).Error; err != nil {
		return err
	}
	return nil
}
