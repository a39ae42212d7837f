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

// RelyingPartyService owns relying parties and their credential definition
// join set. Mutations notify the external adapter like IssuerService.
type RelyingPartyService interface {
	Create(ctx context.Context, input *types.RelyingParty) (*types.RelyingParty, error)
	Update(ctx context.Context, id uuid.UUID, input *types.RelyingParty) (*types.RelyingParty, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.RelyingParty, error)
	List(ctx context.Context) ([]*types.RelyingParty, error)
}

type relyingPartyService struct {
	db           *gorm.DB
	log          *logger.Logger
	partyRepo    repos.RelyingPartyRepo
	defRepo      repos.CredentialDefinitionRepo
	assetRepo    repos.AssetRepo
	partyDefRepo repos.RelyingPartyCredentialDefinitionRepo
	graph        *GraphAssembler
	publisher    ChangePublisher
}

func NewRelyingPartyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	partyRepo repos.RelyingPartyRepo,
	defRepo repos.CredentialDefinitionRepo,
	assetRepo repos.AssetRepo,
	partyDefRepo repos.RelyingPartyCredentialDefinitionRepo,
	graph *GraphAssembler,
	publisher ChangePublisher,
) RelyingPartyService {
	serviceLog := baseLog.With("service", "RelyingPartyService")
	return &relyingPartyService{
		db:           db,
		log:          serviceLog,
		partyRepo:    partyRepo,
		defRepo:      defRepo,
		assetRepo:    assetRepo,
		partyDefRepo: partyDefRepo,
		graph:        graph,
		publisher:    publisher,
	}
}

func (s *relyingPartyService) validate(ctx context.Context, op string, input *types.RelyingParty) error {
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
	return nil
}

func (s *relyingPartyService) insertJoins(ctx context.Context, tx *gorm.DB, partyID uuid.UUID, input *types.RelyingParty) error {
	joins := make([]*types.RelyingPartyCredentialDefinition, 0, len(input.CredentialDefinitions))
	for _, def := range input.CredentialDefinitions {
		joins = append(joins, &types.RelyingPartyCredentialDefinition{
			ID:                     uuid.New(),
			RelyingPartyID:         partyID,
			CredentialDefinitionID: def.ID,
		})
	}
	_, err := s.partyDefRepo.Create(ctx, tx, joins)
	return err
}

func (s *relyingPartyService) Create(ctx context.Context, input *types.RelyingParty) (*types.RelyingParty, error) {
	const op = "RelyingPartyService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	partyID := uuid.New()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = partyID
		row.Logo = nil
		row.CredentialDefinitions = nil
		if _, err := s.partyRepo.Create(ctx, tx, []*types.RelyingParty{&row}); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, partyID, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}

	party, err := s.GetByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	publishChange(ctx, s.log, s.publisher, "relying_party", ChangeCreated, party)
	return party, nil
}

func (s *relyingPartyService) Update(ctx context.Context, id uuid.UUID, input *types.RelyingParty) (*types.RelyingParty, error) {
	const op = "RelyingPartyService.Update"

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
		if _, err := s.partyRepo.Update(ctx, tx, []*types.RelyingParty{&row}); err != nil {
			return err
		}
		if err := s.partyDefRepo.DeleteByRelyingPartyIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.insertJoins(ctx, tx, id, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}

	party, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publishChange(ctx, s.log, s.publisher, "relying_party", ChangeUpdated, party)
	return party, nil
}

func (s *relyingPartyService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "RelyingPartyService.Delete"

	party, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.partyDefRepo.DeleteByRelyingPartyIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.partyRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	publishChange(ctx, s.log, s.publisher, "relying_party", ChangeDeleted, party)
	return nil
}

func (s *relyingPartyService) GetByID(ctx context.Context, id uuid.UUID) (*types.RelyingParty, error) {
	const op = "RelyingPartyService.GetByID"

	parties, err := s.partyRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(parties) == 0 {
		return nil, apperr.NotFound(op, "relying party", id)
	}
	if err := s.graph.ExpandRelyingParties(ctx, nil, parties); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return parties[0], nil
}

func (s *relyingPartyService) List(ctx context.Context) ([]*types.RelyingParty, error) {
	const op = "RelyingPartyService.List"

	parties, err := s.partyRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandRelyingParties(ctx, nil, parties); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return parties, nil
}
