package credentials

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type CredentialDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, defs []*types.CredentialDefinition) ([]*types.CredentialDefinition, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) ([]*types.CredentialDefinition, error)
	GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier, identifierType string) (*types.CredentialDefinition, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CredentialDefinition, error)
	ListUnapproved(ctx context.Context, tx *gorm.DB) ([]*types.CredentialDefinition, error)
	Update(ctx context.Context, tx *gorm.DB, defs []*types.CredentialDefinition) ([]*types.CredentialDefinition, error)
	SetApproval(ctx context.Context, tx *gorm.DB, defID, approverID uuid.UUID, approvedAt time.Time) error
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) error
}

type credentialDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) CredentialDefinitionRepo {
	repoLog := baseLog.With("repo", "CredentialDefinitionRepo")
	return &credentialDefinitionRepo{db: db, log: repoLog}
}

func (r *credentialDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, defs []*types.CredentialDefinition) ([]*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(defs) == 0 {
		return []*types.CredentialDefinition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&defs).Error; err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *credentialDefinitionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) ([]*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialDefinition
	if len(defIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", defIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialDefinitionRepo) GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier, identifierType string) (*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialDefinition
	if err := transaction.WithContext(ctx).
		Where("identifier = ? AND identifier_type = ?", identifier, identifierType).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *credentialDefinitionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialDefinition
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialDefinitionRepo) ListUnapproved(ctx context.Context, tx *gorm.DB) ([]*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialDefinition
	if err := transaction.WithContext(ctx).
		Where("approved_at IS NULL").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialDefinitionRepo) Update(ctx context.Context, tx *gorm.DB, defs []*types.CredentialDefinition) ([]*types.CredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(defs) == 0 {
		return []*types.CredentialDefinition{}, nil
	}

	for _, def := range defs {
		if err := transaction.WithContext(ctx).Save(def).Error; err != nil {
			return nil, err
		}
	}
	return defs, nil
}

func (r *credentialDefinitionRepo) SetApproval(ctx context.Context, tx *gorm.DB, defID, approverID uuid.UUID, approvedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.CredentialDefinition{}).
		Where("id = ?", defID).
		Updates(map[string]interface{}{
			"approved_by_id": approverID,
			"approved_at":    approvedAt,
			"updated_at":     approvedAt,
		}).Error; err != nil {
		return err
	}
	return nil
}

func (r *credentialDefinitionRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(defIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", defIDs).
		Delete(&types.CredentialDefinition{}).Error; err != nil {
		return err
	}
	return nil
}
