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

// CredentialSchemaService owns schemas and their ordered attributes.
// Attributes have no lifecycle of their own; updates replace the whole set
// inside the schema's transaction.
type CredentialSchemaService interface {
	Create(ctx context.Context, input *types.CredentialSchema) (*types.CredentialSchema, error)
	Update(ctx context.Context, id uuid.UUID, input *types.CredentialSchema) (*types.CredentialSchema, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.CredentialSchema, error)
	GetByIdentifier(ctx context.Context, identifier, identifierType string) (*types.CredentialSchema, error)
	List(ctx context.Context) ([]*types.CredentialSchema, error)
}

type credentialSchemaService struct {
	db         *gorm.DB
	log        *logger.Logger
	schemaRepo repos.CredentialSchemaRepo
	attrRepo   repos.CredentialAttributeRepo
	graph      *GraphAssembler
}

func NewCredentialSchemaService(
	db *gorm.DB,
	baseLog *logger.Logger,
	schemaRepo repos.CredentialSchemaRepo,
	attrRepo repos.CredentialAttributeRepo,
	graph *GraphAssembler,
) CredentialSchemaService {
	serviceLog := baseLog.With("service", "CredentialSchemaService")
	return &credentialSchemaService{
		db:         db,
		log:        serviceLog,
		schemaRepo: schemaRepo,
		attrRepo:   attrRepo,
		graph:      graph,
	}
}

func validateSchemaInput(op string, input *types.CredentialSchema) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}
	if input.Version == "" {
		return apperr.Validation(op, "version is required")
	}
	for _, attr := range input.Attributes {
		if attr == nil || attr.Name == "" {
			return apperr.Validation(op, "attribute name is required")
		}
		switch attr.Type {
		case types.AttributeTypeString, types.AttributeTypeInteger, types.AttributeTypeFloat,
			types.AttributeTypeBoolean, types.AttributeTypeDate:
		default:
			return apperr.Validation(op, "unknown attribute type: "+attr.Type)
		}
	}
	return nil
}

func (s *credentialSchemaService) Create(ctx context.Context, input *types.CredentialSchema) (*types.CredentialSchema, error) {
	const op = "CredentialSchemaService.Create"

	if err := validateSchemaInput(op, input); err != nil {
		return nil, err
	}

	schema := *input
	schema.ID = uuid.New()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := schema
		row.Attributes = nil
		if _, err := s.schemaRepo.Create(ctx, tx, []*types.CredentialSchema{&row}); err != nil {
			return err
		}
		return s.insertAttributes(ctx, tx, schema.ID, schema.Attributes)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, schema.ID)
}

func (s *credentialSchemaService) Update(ctx context.Context, id uuid.UUID, input *types.CredentialSchema) (*types.CredentialSchema, error) {
	const op = "CredentialSchemaService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateSchemaInput(op, input); err != nil {
		return nil, err
	}

	schema := *input
	schema.ID = id
	schema.CreatedAt = existing.CreatedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := schema
		row.Attributes = nil
		if _, err := s.schemaRepo.Update(ctx, tx, []*types.CredentialSchema{&row}); err != nil {
			return err
		}
		if err := s.attrRepo.DeleteBySchemaIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.insertAttributes(ctx, tx, id, schema.Attributes)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, id)
}

func (s *credentialSchemaService) insertAttributes(ctx context.Context, tx *gorm.DB, schemaID uuid.UUID, attrs []*types.CredentialAttribute) error {
	rows := make([]*types.CredentialAttribute, 0, len(attrs))
	for i, attr := range attrs {
		row := *attr
		row.ID = uuid.New()
		row.CredentialSchemaID = schemaID
		row.AttributeOrder = i
		rows = append(rows, &row)
	}
	_, err := s.attrRepo.Create(ctx, tx, rows)
	return err
}

func (s *credentialSchemaService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "CredentialSchemaService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attrRepo.DeleteBySchemaIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.schemaRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *credentialSchemaService) GetByID(ctx context.Context, id uuid.UUID) (*types.CredentialSchema, error) {
	const op = "CredentialSchemaService.GetByID"

	schemas, err := s.schemaRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(schemas) == 0 {
		return nil, apperr.NotFound(op, "credential schema", id)
	}
	if err := s.graph.ExpandSchemas(ctx, nil, schemas); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return schemas[0], nil
}

func (s *credentialSchemaService) GetByIdentifier(ctx context.Context, identifier, identifierType string) (*types.CredentialSchema, error) {
	const op = "CredentialSchemaService.GetByIdentifier"

	schema, err := s.schemaRepo.GetByIdentifier(ctx, nil, identifier, identifierType)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if schema == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, "credential schema not found: "+identifier, nil)
	}
	if err := s.graph.ExpandSchemas(ctx, nil, []*types.CredentialSchema{schema}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return schema, nil
}

func (s *credentialSchemaService) List(ctx context.Context) ([]*types.CredentialSchema, error) {
	const op = "CredentialSchemaService.List"

	schemas, err := s.schemaRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(schemas) == 0 {
		return schemas, nil
	}
	if err := s.graph.ExpandSchemas(ctx, nil, schemas); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return schemas, nil
}
