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

// ScenarioService owns scenarios together with their ordered steps, each
// step's ordered actions, and the persona join set. Steps and actions have
// no lifecycle of their own; updates replace the whole owned set.
type ScenarioService interface {
	Create(ctx context.Context, input *types.Scenario) (*types.Scenario, error)
	Update(ctx context.Context, id uuid.UUID, input *types.Scenario) (*types.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*types.Scenario, error)
	GetBySlug(ctx context.Context, slug string) (*types.Scenario, error)
	List(ctx context.Context) ([]*types.Scenario, error)
}

type scenarioService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	scenarioRepo        repos.ScenarioRepo
	stepRepo            repos.StepRepo
	actionRepo          repos.StepActionRepo
	scenarioPersonaRepo repos.ScenarioPersonaRepo
	personaRepo         repos.PersonaRepo
	issuerRepo          repos.IssuerRepo
	partyRepo           repos.RelyingPartyRepo
	defRepo             repos.CredentialDefinitionRepo
	assetRepo           repos.AssetRepo
	slugService         SlugService
	graph               *GraphAssembler
}

func NewScenarioService(
	db *gorm.DB,
	baseLog *logger.Logger,
	scenarioRepo repos.ScenarioRepo,
	stepRepo repos.StepRepo,
	actionRepo repos.StepActionRepo,
	scenarioPersonaRepo repos.ScenarioPersonaRepo,
	personaRepo repos.PersonaRepo,
	issuerRepo repos.IssuerRepo,
	partyRepo repos.RelyingPartyRepo,
	defRepo repos.CredentialDefinitionRepo,
	assetRepo repos.AssetRepo,
	slugService SlugService,
	graph *GraphAssembler,
) ScenarioService {
	serviceLog := baseLog.With("service", "ScenarioService")
	return &scenarioService{
		db:                  db,
		log:                 serviceLog,
		scenarioRepo:        scenarioRepo,
		stepRepo:            stepRepo,
		actionRepo:          actionRepo,
		scenarioPersonaRepo: scenarioPersonaRepo,
		personaRepo:         personaRepo,
		issuerRepo:          issuerRepo,
		partyRepo:           partyRepo,
		defRepo:             defRepo,
		assetRepo:           assetRepo,
		slugService:         slugService,
		graph:               graph,
	}
}

func (s *scenarioService) validate(ctx context.Context, op string, input *types.Scenario) error {
	if input == nil || input.Name == "" {
		return apperr.Validation(op, "name is required")
	}

	switch input.ScenarioType {
	case types.ScenarioTypeIssuance:
		if input.IssuerID == nil || input.RelyingPartyID != nil {
			return apperr.Validation(op, "an issuance scenario requires an issuer and no relying party")
		}
		issuers, err := s.issuerRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.IssuerID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(issuers) == 0 {
			return apperr.NotFound(op, "issuer", *input.IssuerID)
		}
	case types.ScenarioTypePresentation:
		if input.RelyingPartyID == nil || input.IssuerID != nil {
			return apperr.Validation(op, "a presentation scenario requires a relying party and no issuer")
		}
		parties, err := s.partyRepo.GetByIDs(ctx, nil, []uuid.UUID{*input.RelyingPartyID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(parties) == 0 {
			return apperr.NotFound(op, "relying party", *input.RelyingPartyID)
		}
	default:
		return apperr.Validation(op, "unknown scenario type: "+input.ScenarioType)
	}

	for _, persona := range input.Personas {
		found, err := s.personaRepo.GetByIDs(ctx, nil, []uuid.UUID{persona.ID})
		if err != nil {
			return apperr.FromDB(op, err)
		}
		if len(found) == 0 {
			return apperr.NotFound(op, "persona", persona.ID)
		}
	}

	for _, step := range input.Steps {
		if step == nil || step.Title == "" {
			return apperr.Validation(op, "step title is required")
		}
		if step.Type != types.StepTypeHumanTask && step.Type != types.StepTypeService {
			return apperr.Validation(op, "unknown step type: "+step.Type)
		}
		if step.AssetID != nil {
			assets, err := s.assetRepo.GetByIDs(ctx, nil, []uuid.UUID{*step.AssetID})
			if err != nil {
				return apperr.FromDB(op, err)
			}
			if len(assets) == 0 {
				return apperr.NotFound(op, "asset", *step.AssetID)
			}
		}
		for _, action := range step.Actions {
			if action == nil {
				return apperr.Validation(op, "step action is required")
			}
			if err := action.Validate(); err != nil {
				return apperr.Validation(op, err.Error())
			}
			if action.CredentialDefinitionID != nil {
				defs, err := s.defRepo.GetByIDs(ctx, nil, []uuid.UUID{*action.CredentialDefinitionID})
				if err != nil {
					return apperr.FromDB(op, err)
				}
				if len(defs) == 0 {
					return apperr.NotFound(op, "credential definition", *action.CredentialDefinitionID)
				}
			}
		}
	}
	return nil
}

// insertOwned writes the persona joins, steps, and actions for a scenario.
// Step and action order follows slice position.
func (s *scenarioService) insertOwned(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID, input *types.Scenario) error {
	joins := make([]*types.ScenarioPersona, 0, len(input.Personas))
	for _, persona := range input.Personas {
		joins = append(joins, &types.ScenarioPersona{
			ID:         uuid.New(),
			ScenarioID: scenarioID,
			PersonaID:  persona.ID,
		})
	}
	if _, err := s.scenarioPersonaRepo.Create(ctx, tx, joins); err != nil {
		return err
	}

	// Fresh ids are assigned to every step; incoming step ids only serve
	// as correlation keys so button go-to targets can be remapped, even
	// when the target step appears later in the slice.
	steps := make([]*types.Step, 0, len(input.Steps))
	stepIDMap := make(map[uuid.UUID]uuid.UUID, len(input.Steps))
	for i, step := range input.Steps {
		row := *step
		row.ID = uuid.New()
		row.ScenarioID = scenarioID
		row.StepOrder = i
		row.Actions = nil
		row.Asset = nil
		if step.ID != uuid.Nil {
			stepIDMap[step.ID] = row.ID
		}
		steps = append(steps, &row)
	}

	var actions []*types.StepAction
	for i, step := range input.Steps {
		for j, action := range step.Actions {
			actionRow := *action
			actionRow.ID = uuid.New()
			actionRow.StepID = steps[i].ID
			actionRow.ActionOrder = j
			if actionRow.GoToStepID != nil {
				if mapped, ok := stepIDMap[*actionRow.GoToStepID]; ok {
					target := mapped
					actionRow.GoToStepID = &target
				}
			}
			actions = append(actions, &actionRow)
		}
	}
	if _, err := s.stepRepo.Create(ctx, tx, steps); err != nil {
		return err
	}
	_, err := s.actionRepo.Create(ctx, tx, actions)
	return err
}

func (s *scenarioService) deleteOwned(ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID) error {
	steps, err := s.stepRepo.GetByScenarioIDs(ctx, tx, []uuid.UUID{scenarioID})
	if err != nil {
		return err
	}
	stepIDs := make([]uuid.UUID, 0, len(steps))
	for _, step := range steps {
		stepIDs = append(stepIDs, step.ID)
	}
	if err := s.actionRepo.DeleteByStepIDs(ctx, tx, stepIDs); err != nil {
		return err
	}
	if err := s.stepRepo.DeleteByScenarioIDs(ctx, tx, []uuid.UUID{scenarioID}); err != nil {
		return err
	}
	return s.scenarioPersonaRepo.DeleteByScenarioIDs(ctx, tx, []uuid.UUID{scenarioID})
}

func (s *scenarioService) Create(ctx context.Context, input *types.Scenario) (*types.Scenario, error) {
	const op = "ScenarioService.Create"

	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	scenarioID := uuid.New()
	slug, err := s.slugService.Assign(ctx, nil, (types.Scenario{}).TableName(), input.Name, nil)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = scenarioID
		row.Slug = slug
		row.Steps = nil
		row.Personas = nil
		row.Issuer = nil
		row.RelyingParty = nil
		if _, err := s.scenarioRepo.Create(ctx, tx, []*types.Scenario{&row}); err != nil {
			return err
		}
		return s.insertOwned(ctx, tx, scenarioID, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, scenarioID)
}

func (s *scenarioService) Update(ctx context.Context, id uuid.UUID, input *types.Scenario) (*types.Scenario, error) {
	const op = "ScenarioService.Update"

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, op, input); err != nil {
		return nil, err
	}

	slug, err := s.slugService.Assign(ctx, nil, (types.Scenario{}).TableName(), input.Name, &id)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *input
		row.ID = id
		row.Slug = slug
		row.CreatedAt = existing.CreatedAt
		row.Steps = nil
		row.Personas = nil
		row.Issuer = nil
		row.RelyingParty = nil
		if _, err := s.scenarioRepo.Update(ctx, tx, []*types.Scenario{&row}); err != nil {
			return err
		}
		if err := s.deleteOwned(ctx, tx, id); err != nil {
			return err
		}
		return s.insertOwned(ctx, tx, id, input)
	})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return s.GetByID(ctx, id)
}

func (s *scenarioService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "ScenarioService.Delete"

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deleteOwned(ctx, tx, id); err != nil {
			return err
		}
		return s.scenarioRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	if err != nil {
		return apperr.FromDB(op, err)
	}
	return nil
}

func (s *scenarioService) GetByID(ctx context.Context, id uuid.UUID) (*types.Scenario, error) {
	const op = "ScenarioService.GetByID"

	scenarios, err := s.scenarioRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if len(scenarios) == 0 {
		return nil, apperr.NotFound(op, "scenario", id)
	}
	if err := s.graph.AssembleScenarios(ctx, nil, scenarios); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return scenarios[0], nil
}

func (s *scenarioService) GetBySlug(ctx context.Context, slug string) (*types.Scenario, error) {
	const op = "ScenarioService.GetBySlug"

	scenario, err := s.scenarioRepo.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if scenario == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, "scenario not found: "+slug, nil)
	}
	if err := s.graph.AssembleScenarios(ctx, nil, []*types.Scenario{scenario}); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return scenario, nil
}

func (s *scenarioService) List(ctx context.Context) ([]*types.Scenario, error) {
	const op = "ScenarioService.List"

	scenarios, err := s.scenarioRepo.List(ctx, nil)
	if err != nil {
		return nil, apperr.FromDB(op, err)
	}
	if err := s.graph.AssembleScenarios(ctx, nil, scenarios); err != nil {
		return nil, apperr.FromDB(op, err)
	}
	return scenarios, nil
}
