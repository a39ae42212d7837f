package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// CredentialDefinitionService owns definitions, their optional revocation
// record, and the one-way approval transition.
type CredentialDefinitionService interface {
	Create(ctx context.Context, input *types.CredentialDefinition) (*types.CredentialDefinition, error)
	Update(ctx context.Context, id uuid.UUID, input *types.CredentialDefinition) (*types.CredentialDefinition, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.CredentialDefinition, error)
	GetByIdentifier(ctx context.Context, identifier, identifierType string) (*types.CredentialDefinition, error)
	List(ctx context.Context) ([]*types.CredentialDefinition, error)
	ListUnapproved(ctx context.Context) ([]*types.CredentialDefinition, error)
	Approve(ctx context.Context, id, approverID uuid.UUID) (*types.CredentialDefinition, error)
}

type credentialDefinitionService struct {
	db             *gorm.DB
	log            *logger.Logger
	defRepo        repos.CredentialDefinitionRepo
	schemaRepo     repos.CredentialSchemaRepo
	revocationRepo repos.CredentialRevocationRepo
	assetRepo      repos.AssetRepo
	userRepo       repos.UserRepo
	graph          *GraphAssembler
}

func NewCredentialDefinitionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	defRepo repos.CredentialDefinitionRepo,
	schemaRepo repos.CredentialSchemaRepo,
	revocationRepo repos.CredentialRevocationRepo,
	assetRepo repos.AssetRepo,
	userRepo repos.UserRepo,
	graph *GraphAssembler,
) CredentialDefinitionService {
	serviceLog := baseLog.With("service", "CredentialDefinitionService")
	return &credentialDefinitionService{
		db:             db,
		log:            serviceLog,
		defRepo:        defRepo,
		schemaRepo:     schemaRepo,
		revocationRepo: revocationRepo,
		assetRepo:      assetRepo,
		userRepo:       userRepo,
		graph:          graph,
	}
}

func (s *credentialDefinitionService) validate(ctx context.Context, op string, input *types.CredentialDefinition) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}
	if input.Version == "" {
		return apperr.Validation(op, "version is required")
	}
	if input.Type == "" {
		return apperr.Validation(op, "credential type is required")
	}

	schemas, err := s.schemaRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CredentialSchemaID})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	if len(schemas) == 0 {
		return apperr.NotFound(op, "credential schema", input.CredentialSchemaID)
	}

	if input.IconID != nil {
		assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.IconID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(assets) == 0 {
			return apperr.NotFound(op, "asset", *input.IconID)
		}
	}

	if input.Revocation != nil && input.Revocation.Title == "" {
		return apperr.Validation(op, "revocation title is required")
	}
	return nil
}

func (s *credentialDefinitionService) Create(ctx context.Context, input *types.CredentialDefinition) (*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	def := *input
	def.ID = uuid.New()
	def.ApprovedByID = nil
	def.ApprovedAt = nil

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := def
		row.Revocation = nil
		row.CredentialSchema = nil
		row.Icon = nil
		row.ApprovedBy = nil
		if _, err := s.defRepo.Create(ctx, tx, []*types.CredentialDefinition{&row}); err != nil {
			return err
		}
		return s.insertRevocation(ctx, tx, def.ID, def.Revocation)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, def.ID)
}

func (s *credentialDefinitionService) Update(ctx context.Context, id uuid.UUID, input *types.CredentialDefinition) (*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	def := *input
	def.ID = id
	def.CreatedAt = existing.CreatedAt
	// Approval never reverts through update.
	def.ApprovedByID = existing.ApprovedByID
	def.ApprovedAt = existing.ApprovedAt

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := def
		row.Revocation = nil
		row.CredentialSchema = nil
		row.Icon = nil
		row.ApprovedBy = nil
		if _, err := s.defRepo.Update(ctx, tx, []*types.CredentialDefinition{&row}); err != nil {
			return err
		}
		if err := s.revocationRepo.DeleteByDefinitionIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.insertRevocation(ctx, tx, id, def.Revocation)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, id)
}

func (s *credentialDefinitionService) insertRevocation(ctx context.Context, tx *gorm.DB, defID uuid.UUID, revocation *types.CredentialRevocation) error {
	if revocation == nil {
		return nil
	}
	row := *revocation
	row.ID = uuid.New()
	row.CredentialDefinitionID = defID
	_, err := s.revocationRepo.Create(ctx, tx, []*types.CredentialRevocation{&row})
	return err
}

func (s *credentialDefinitionService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "CredentialDefinitionService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.revocationRepo.DeleteByDefinitionIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.defRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *credentialDefinitionService) GetByID(ctx context.Context, id uuid.UUID) (*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.GetByID"

	defs, err := s.defRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(defs) == 0 {
		return nil, apperr.NotFound(op, "credential definition", id)
	}
	if err := s.graph.ExpandDefinitions(ctx, nil, defs); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return defs[0], nil
}

func (s *credentialDefinitionService) GetByIdentifier(ctx context.Context, identifier, identifierType string) (*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.GetByIdentifier"

	def, err := s.defRepo.GetByIdentifier(ctx, nil, identifier, identifierType)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if def == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, "credential definition not found: "+identifier, nil)
	}
	if err := s.graph.ExpandDefinitions(ctx, nil, []*types.CredentialDefinition{def}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return def, nil
}

func (s *credentialDefinitionService) List(ctx context.Context) ([]*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.List"

	defs, err := s.defRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandDefinitions(ctx, nil, defs); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return defs, nil
}

func (s *credentialDefinitionService) ListUnapproved(ctx context.Context) ([]*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.ListUnapproved"

	defs, err := s.defRepo.ListUnapproved(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandDefinitions(ctx, nil, defs); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return defs, nil
}

func (s *credentialDefinitionService) Approve(ctx context.Context, id, approverID uuid.UUID) (*types.CredentialDefinition, error) {
	const op = "CredentialDefinitionService.Approve"

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	approvers, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{approverID})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(approvers) == 0 {
		return nil, apperr.NotFound(op, "user", approverID)
	}

	if err := s.defRepo.SetApproval(ctx, nil, id, approverID, time.Now().UTC()); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, id)
}
