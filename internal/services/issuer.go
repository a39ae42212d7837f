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

// IssuerService owns issuers and their credential definition/schema join
// sets. Mutations notify the external adapter through the injected
// publisher; a nil publisher disables notification.
type IssuerService interface {
	Create(ctx context.Context, input *types.Issuer) (*types.Issuer, error)
	Update(ctx context.Context, id uuid.UUID, input *types.Issuer) (*types.Issuer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Issuer, error)
	List(ctx context.Context) ([]*types.Issuer, error)
}

type issuerService struct {
	db               *gorm.DB
	log              *logger.Logger
	issuerRepo       repos.IssuerRepo
	defRepo          repos.CredentialDefinitionRepo
	schemaRepo       repos.CredentialSchemaRepo
	assetRepo        repos.AssetRepo
	issuerDefRepo    repos.IssuerCredentialDefinitionRepo
	issuerSchemaRepo repos.IssuerCredentialSchemaRepo
	graph            *GraphAssembler
	publisher        ChangePublisher
}

func NewIssuerService(
	db *gorm.DB,
	baseLog *logger.Logger,
	issuerRepo repos.IssuerRepo,
	defRepo repos.CredentialDefinitionRepo,
	schemaRepo repos.CredentialSchemaRepo,
	assetRepo repos.AssetRepo,
	issuerDefRepo repos.IssuerCredentialDefinitionRepo,
	issuerSchemaRepo repos.IssuerCredentialSchemaRepo,
	graph *GraphAssembler,
	publisher ChangePublisher,
) IssuerService {
	serviceLog := baseLog.With("service", "IssuerService")
	return &issuerService{
		db:               db,
		log:              serviceLog,
		issuerRepo:       issuerRepo,
		defRepo:          defRepo,
		schemaRepo:       schemaRepo,
		assetRepo:        assetRepo,
		issuerDefRepo:    issuerDefRepo,
		issuerSchemaRepo: issuerSchemaRepo,
		graph:            graph,
		publisher:        publisher,
	}
}

func (s *issuerService) validate(ctx context.Context, op string, input *types.Issuer) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}
	if input.LogoID != nil {
		assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.LogoID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(assets) == 0 {
			return apperr.NotFound(op, "asset", *input.LogoID)
		}
	}
	for _, def := range input.CredentialDefinitions {
		found, err := s.defRepo.GetByIDs(ctx, nil, []uuid.UUID{def.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "credential definition", def.ID)
		}
	}
	for _, schema := range input.CredentialSchemas {
		found, err := s.schemaRepo.GetByIDs(ctx, nil, []uuid.UUID{schema.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "credential schema", schema.ID)
		}
	}
	return nil
}

func (s *issuerService) insertJoins(ctx context.Context, tx *gorm.DB, issuerID uuid.UUID, input *types.Issuer) error {
	defJoins := make([]*types.IssuerCredentialDefinition, 0, len(input.CredentialDefinitions))
	for _, def := range input.CredentialDefinitions {
		defJoins = append(defJoins, &types.IssuerCredentialDefinition{
			ID:                     uuid.New(),
			IssuerID:               issuerID,
			CredentialDefinitionID: def.ID,
		})
	}
	if _, err := s.issuerDefRepo.Create(ctx, tx, defJoins); err != nil {
		return err
	}

	schemaJoins := make([]*types.IssuerCredentialSchema, 0, len(input.CredentialSchemas))
	for _, schema := range input.CredentialSchemas {
		schemaJoins = append(schemaJoins, &types.IssuerCredentialSchema{
			ID:                 uuid.New(),
			IssuerID:           issuerID,
			CredentialSchemaID: schema.ID,
		})
	}
	_, err := s.issuerSchemaRepo.Create(ctx, tx, schemaJoins)
	return err
}

func (s *issuerService) Create(ctx context.Context, input *types.Issuer) (*types.Issuer, error) {
	const op = "IssuerService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	issuerID := uuid.New()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = issuerID
		row.Logo = nil
		row.CredentialDefinitions = nil
		row.CredentialSchemas = nil
		if _, err := s.issuerRepo.Create(ctx, tx, []*types.Issuer{&row}); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, issuerID, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}

	issuer, err := s.GetByID(ctx, issuerID)
	if err != nil {
		return nil, err
	}
	publishChange(ctx, s.log, s.publisher, "issuer", ChangeCreated, issuer)
	return issuer, nil
}

func (s *issuerService) Update(ctx context.Context, id uuid.UUID, input *types.Issuer) (*types.Issuer, error) {
	const op = "IssuerService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = id
		row.CreatedAt = existing.CreatedAt
		row.Logo = nil
		row.CredentialDefinitions = nil
		row.CredentialSchemas = nil
		if _, err := s.issuerRepo.Update(ctx, tx, []*types.Issuer{&row}); err != nil {
			return err
		}
		if err := s.issuerDefRepo.DeleteByIssuerIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		if err := s.issuerSchemaRepo.DeleteByIssuerIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, id, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}

	issuer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publishChange(ctx, s.log, s.publisher, "issuer", ChangeUpdated, issuer)
	return issuer, nil
}

func (s *issuerService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "IssuerService.Delete"

	issuer, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.issuerDefRepo.DeleteByIssuerIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		if err := s.issuerSchemaRepo.DeleteByIssuerIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.issuerRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	publishChange(ctx, s.log, s.publisher, "issuer", ChangeDeleted, issuer)
	return nil
}

func (s *issuerService) GetByID(ctx context.Context, id uuid.UUID) (*types.Issuer, error) {
	const op = "IssuerService.GetByID"

	issuers, err := s.issuerRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(issuers) == 0 {
		return nil, apperr.NotFound(op, "issuer", id)
	}
	if err := s.graph.ExpandIssuers(ctx, nil, issuers); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return issuers[0], nil
}

func (s *issuerService) List(ctx context.Context) ([]*types.Issuer, error) {
	const op = "IssuerService.List"

	issuers, err := s.issuerRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandIssuers(ctx, nil, issuers); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return issuers, nil
}
