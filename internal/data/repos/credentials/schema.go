package credentials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type CredentialSchemaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, schemas []*types.CredentialSchema) ([]*types.CredentialSchema, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) ([]*types.CredentialSchema, error)
	GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier, identifierType string) (*types.CredentialSchema, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.CredentialSchema, error)
	Update(ctx context.Context, tx *gorm.DB, schemas []*types.CredentialSchema) ([]*types.CredentialSchema, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) error
}

type credentialSchemaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCredentialSchemaRepo(db *gorm.DB, baseLog *logger.Logger) CredentialSchemaRepo {
	repoLog := baseLog.With("repo", "CredentialSchemaRepo")
	return &credentialSchemaRepo{db: db, log: repoLog}
}

func (r *credentialSchemaRepo) Create(ctx context.Context, tx *gorm.DB, schemas []*types.CredentialSchema) ([]*types.CredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(schemas) == 0 {
		return []*types.CredentialSchema{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&schemas).Error; err != nil {
		return nil, err
	}
	return schemas, nil
}

func (r *credentialSchemaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) ([]*types.CredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialSchema
	if len(schemaIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", schemaIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialSchemaRepo) GetByIdentifier(ctx context.Context, tx *gorm.DB, identifier, identifierType string) (*types.CredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialSchema
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

func (r *credentialSchemaRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CredentialSchema
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *credentialSchemaRepo) Update(ctx context.Context, tx *gorm.DB, schemas []*types.CredentialSchema) ([]*types.CredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(schemas) == 0 {
		return []*types.CredentialSchema{}, nil
	}

	for _, schema := range schemas {
		if err := transaction.WithContext(ctx).Save(schema).Error; err != nil {
			return nil, err
		}
	}
	return schemas, nil
}

func (r *credentialSchemaRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, schemaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(schemaIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", schemaIDs).
		Delete(&types.CredentialSchema{}).Error; err != nil {
		return err
	}
	return nil
}
