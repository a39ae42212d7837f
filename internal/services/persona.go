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

// PersonaService owns the demo characters referenced by scenarios and
// showcases. Image assets are referenced, never owned.
type PersonaService interface {
	Create(ctx context.Context, input *types.Persona) (*types.Persona, error)
	Update(ctx context.Context, id uuid.UUID, input *types.Persona) (*types.Persona, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Persona, error)
	List(ctx context.Context) ([]*types.Persona, error)
}

type personaService struct {
	db          *gorm.DB
	log         *logger.Logger
	personaRepo repos.PersonaRepo
	assetRepo   repos.AssetRepo
	slugService SlugService
	graph       *GraphAssembler
}

func NewPersonaService(
	db *gorm.DB,
	baseLog *logger.Logger,
	personaRepo repos.PersonaRepo,
	assetRepo repos.AssetRepo,
	slugService SlugService,
	graph *GraphAssembler,
) PersonaService {
	serviceLog := baseLog.With("service", "PersonaService")
	return &personaService{
		db:          db,
		log:         serviceLog,
		personaRepo: personaRepo,
		assetRepo:   assetRepo,
		slugService: slugService,
		graph:       graph,
	}
}

func (s *personaService) validate(ctx context.Context, op string, input *types.Persona) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}
	if input.Role == "" {
		return apperr.Validation(op, "role is required")
	}
	for _, assetID := range []*uuid.UUID{input.HeadshotImageID, input.BodyImageID} {
		if assetID == nil {
			continue
		}
		assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{*assetID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(assets) == 0 {
			return apperr.NotFound(op, "asset", *assetID)
		}
	}
	return nil
}

func (s *personaService) Create(ctx context.Context, input *types.Persona) (*types.Persona, error) {
	const op = "PersonaService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	persona := *input
	persona.ID = uuid.New()
	persona.HeadshotImage = nil
	persona.BodyImage = nil

	slug, err := s.slugService.Assign(ctx, nil, persona.TableName(), persona.Name, nil)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	persona.Slug = slug

	if _, err := s.personaRepo.Create(ctx, nil, []*types.Persona{&persona}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandPersonas(ctx, nil, []*types.Persona{&persona}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &persona, nil
}

func (s *personaService) Update(ctx context.Context, id uuid.UUID, input *types.Persona) (*types.Persona, error) {
	const op = "PersonaService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	persona := *input
	persona.ID = id
	persona.CreatedAt = existing.CreatedAt
	persona.HeadshotImage = nil
	persona.BodyImage = nil

	slug, err := s.slugService.Assign(ctx, nil, persona.TableName(), persona.Name, &id)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	persona.Slug = slug

	if _, err := s.personaRepo.Update(ctx, nil, []*types.Persona{&persona}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandPersonas(ctx, nil, []*types.Persona{&persona}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return &persona, nil
}

func (s *personaService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "PersonaService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.personaRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *personaService) GetByID(ctx context.Context, id uuid.UUID) (*types.Persona, error) {
	const op = "PersonaService.GetByID"

	personas, err := s.personaRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(personas) == 0 {
		return nil, apperr.NotFound(op, "persona", id)
	}
	if err := s.graph.ExpandPersonas(ctx, nil, personas); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return personas[0], nil
}

func (s *personaService) List(ctx context.Context) ([]*types.Persona, error) {
	const op = "PersonaService.List"

	personas, err := s.personaRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.ExpandPersonas(ctx, nil, personas); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return personas, nil
}
