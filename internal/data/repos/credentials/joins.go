package credentials

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type IssuerCredentialDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, joins []*types.IssuerCredentialDefinition) ([]*types.IssuerCredentialDefinition, error)
	GetByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.IssuerCredentialDefinition, error)
	DeleteByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error
}

type issuerCredentialDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIssuerCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) IssuerCredentialDefinitionRepo {
	repoLog := baseLog.With("repo", "IssuerCredentialDefinitionRepo")
	return &issuerCredentialDefinitionRepo{db: db, log: repoLog}
}

func (r *issuerCredentialDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, joins []*types.IssuerCredentialDefinition) ([]*types.IssuerCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(joins) == 0 {
		return []*types.IssuerCredentialDefinition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&joins).Error; err != nil {
		return nil, err
	}
	return joins, nil
}

func (r *issuerCredentialDefinitionRepo) GetByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.IssuerCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.IssuerCredentialDefinition
	if len(issuerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("issuer_id IN ?", issuerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *issuerCredentialDefinitionRepo) DeleteByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(issuerIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("issuer_id IN ?", issuerIDs).
		Delete(&types.IssuerCredentialDefinition{}).Error; err != nil {
		return err
	}
	return nil
}

type IssuerCredentialSchemaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, joins []*types.IssuerCredentialSchema) ([]*types.IssuerCredentialSchema, error)
	GetByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.IssuerCredentialSchema, error)
	DeleteByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error
}

type issuerCredentialSchemaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIssuerCredentialSchemaRepo(db *gorm.DB, baseLog *logger.Logger) IssuerCredentialSchemaRepo {
	repoLog := baseLog.With("repo", "IssuerCredentialSchemaRepo")
	return &issuerCredentialSchemaRepo{db: db, log: repoLog}
}

func (r *issuerCredentialSchemaRepo) Create(ctx context.Context, tx *gorm.DB, joins []*types.IssuerCredentialSchema) ([]*types.IssuerCredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(joins) == 0 {
		return []*types.IssuerCredentialSchema{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&joins).Error; err != nil {
		return nil, err
	}
	return joins, nil
}

func (r *issuerCredentialSchemaRepo) GetByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) ([]*types.IssuerCredentialSchema, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.IssuerCredentialSchema
	if len(issuerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("issuer_id IN ?", issuerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *issuerCredentialSchemaRepo) DeleteByIssuerIDs(ctx context.Context, tx *gorm.DB, issuerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(issuerIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("issuer_id IN ?", issuerIDs).
		Delete(&types.IssuerCredentialSchema{}).Error; err != nil {
		return err
	}
	return nil
}

type RelyingPartyCredentialDefinitionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, joins []*types.RelyingPartyCredentialDefinition) ([]*types.RelyingPartyCredentialDefinition, error)
	GetByRelyingPartyIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) ([]*types.RelyingPartyCredentialDefinition, error)
	DeleteByRelyingPartyIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) error
}

type relyingPartyCredentialDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelyingPartyCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) RelyingPartyCredentialDefinitionRepo {
	repoLog := baseLog.With("repo", "RelyingPartyCredentialDefinitionRepo")
	return &relyingPartyCredentialDefinitionRepo{db: db, log: repoLog}
}

func (r *relyingPartyCredentialDefinitionRepo) Create(ctx context.Context, tx *gorm.DB, joins []*types.RelyingPartyCredentialDefinition) ([]*types.RelyingPartyCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(joins) == 0 {
		return []*types.RelyingPartyCredentialDefinition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&joins).Error; err != nil {
		return nil, err
	}
	return joins, nil
}

func (r *relyingPartyCredentialDefinitionRepo) GetByRelyingPartyIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) ([]*types.RelyingPartyCredentialDefinition, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RelyingPartyCredentialDefinition
	if len(partyIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("relying_party_id IN ?", partyIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *relyingPartyCredentialDefinitionRepo) DeleteByRelyingPartyIDs(ctx context.Context, tx *gorm.DB, partyIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(partyIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("relying_party_id IN ?", partyIDs).
		Delete(&types.RelyingPartyCredentialDefinition{}).Error; err != nil {
		return err
	}
	return nil
}
