package credentials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// Child rows (attributes, revocation info) live and die with their parent;
// updates replace them wholesale inside the parent's transaction.

type CredentialAttributeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attrs []*types.CredentialAttribute) ([]*types.CredentialAttribute, error)
	GetBySchemaIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) ([]*types.CredentialAttribute, error)
	DeleteBySchemaIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) error
}

type credentialAttributeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCredentialAttributeRepo(db *gorm.DB, baseLog *logger.Logger) CredentialAttributeRepo {
	repoLog := baseLog.With("repo", "CredentialAttributeRepo")
	return &credentialAttributeRepo{db: db, log: repoLog}
}

func (r *credentialAttributeRepo) Create(ctx context.Context, tx *gorm.DB, attrs []*types.CredentialAttribute) ([]*types.CredentialAttribute, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(attrs) == 0 {
		return []*types.CredentialAttribute{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

func (r *credentialAttributeRepo) GetBySchemaIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) ([]*types.CredentialAttribute, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialAttribute
	if len(schemaIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("credential_schema_id IN ?", schemaIDs).
		Order("attribute_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialAttributeRepo) DeleteBySchemaIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(schemaIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("credential_schema_id IN ?", schemaIDs).
		Delete(&types.CredentialAttribute{}).Error; err != nil {
		return err
	}
	return nil
}

type CredentialRevocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, revocations []*types.CredentialRevocation) ([]*types.CredentialRevocation, error)
	GetByDefinitionIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) ([]*types.CredentialRevocation, error)
	DeleteByDefinitionIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) error
}

type credentialRevocationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCredentialRevocationRepo(db *gorm.DB, baseLog *logger.Logger) CredentialRevocationRepo {
	repoLog := baseLog.With("repo", "CredentialRevocationRepo")
	return &credentialRevocationRepo{db: db, log: repoLog}
}

func (r *credentialRevocationRepo) Create(ctx context.Context, tx *gorm.DB, revocations []*types.CredentialRevocation) ([]*types.CredentialRevocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(revocations) == 0 {
		return []*types.CredentialRevocation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&revocations).Error; err != nil {
		return nil, err
	}
	return revocations, nil
}

func (r *credentialRevocationRepo) GetByDefinitionIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) ([]*types.CredentialRevocation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialRevocation
	if len(defIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("credential_definition_id IN ?", defIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialRevocationRepo) DeleteByDefinitionIDs(ctx context.Context, tx *gorm.DB, defIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(defIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("credential_definition_id IN ?", defIDs).
		Delete(&types.CredentialRevocation{}).Error; err != nil {
		return err
	}
	return nil
}
