package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// DuplicationService deep-copies a showcase into a target tenant. Personas
// and scenarios are cloned; assets, issuers, relying parties, and
// credential definitions are re-referenced, never copied. Each clone
// commits in its own transaction; if a later step fails, the already
// committed clones are deleted before the error is returned.
type DuplicationService interface {
	Duplicate(ctx context.Context, showcaseID, targetTenantID uuid.UUID) (*types.Showcase, error)
}

type duplicationService struct {
	log       *logger.Logger
	session   Session
	showcases ShowcaseService
	personas  PersonaService
	scenarios ScenarioService
}

func NewDuplicationService(
	baseLog *logger.Logger,
	session Session,
	showcases ShowcaseService,
	personas PersonaService,
	scenarios ScenarioService,
) DuplicationService {
	serviceLog := baseLog.With("service", "DuplicationService")
	return &duplicationService{
		log:       serviceLog,
		session:   session,
		showcases: showcases,
		personas:  personas,
		scenarios: scenarios,
	}
}

func (s *duplicationService) Duplicate(ctx context.Context, showcaseID, targetTenantID uuid.UUID) (*types.Showcase, error) {
	const op = "DuplicationService.Duplicate"

	source, err := s.showcases.GetByID(ctx, showcaseID)
	if err != nil {
		return nil, err
	}
	if s.session == nil {
		return nil, apperr.Internal(op, nil)
	}
	actor, err := s.session.CurrentUser(ctx)
	if err != nil || actor == nil {
		return nil, apperr.Internal(op, err)
	}

	var undo []func(context.Context) error

	personaIDMap := make(map[uuid.UUID]uuid.UUID, len(source.Personas))
	clonedPersonas := make([]*types.Persona, 0, len(source.Personas))
	for _, original := range source.Personas {
		clone, err := s.personas.Create(ctx, &types.Persona{
			Name:            original.Name,
			Role:            original.Role,
			Description:     original.Description,
			Hidden:          original.Hidden,
			HeadshotImageID: original.HeadshotImageID,
			BodyImageID:     original.BodyImageID,
		})
		if err != nil {
			s.rollback(ctx, undo)
			return nil, apperr.Wrap(op, err)
		}
		cloneID := clone.ID
		undo = append(undo, func(ctx context.Context) error {
			return s.personas.Delete(ctx, cloneID)
		})
		personaIDMap[original.ID] = clone.ID
		clonedPersonas = append(clonedPersonas, clone)
	}

	clonedScenarios := make([]*types.Scenario, 0, len(source.Scenarios))
	for _, original := range source.Scenarios {
		clone, err := s.scenarios.Create(ctx, cloneScenarioInput(original, personaIDMap))
		if err != nil {
			s.rollback(ctx, undo)
			return nil, apperr.Wrap(op, err)
		}
		cloneID := clone.ID
		undo = append(undo, func(ctx context.Context) error {
			return s.scenarios.Delete(ctx, cloneID)
		})
		clonedScenarios = append(clonedScenarios, clone)
	}

	actorID := actor.ID
	created, err := s.showcases.Create(ctx, &types.Showcase{
		Name:                  source.Name + " (Copy)",
		Description:           source.Description,
		Status:                types.ShowcaseStatusPending,
		Hidden:                source.Hidden,
		CompletionMessage:     source.CompletionMessage,
		BannerImageID:         source.BannerImageID,
		TenantID:              targetTenantID,
		CreatedByID:           &actorID,
		Personas:              clonedPersonas,
		Scenarios:             clonedScenarios,
		CredentialDefinitions: source.CredentialDefinitions,
	})
	if err != nil {
		s.rollback(ctx, undo)
		return nil, apperr.Wrap(op, err)
	}
	return created, nil
}

// cloneScenarioInput rebuilds a scenario as fresh create input: ids and
// timestamps dropped everywhere, persona references remapped through the
// clone map with a best-effort fallback to the original id, and the same
// issuer or relying party referenced.
func cloneScenarioInput(original *types.Scenario, personaIDMap map[uuid.UUID]uuid.UUID) *types.Scenario {
	clone := &types.Scenario{
		Name:           original.Name,
		Description:    original.Description,
		ScenarioType:   original.ScenarioType,
		Hidden:         original.Hidden,
		IssuerID:       original.IssuerID,
		RelyingPartyID: original.RelyingPartyID,
		Steps:          make([]*types.Step, 0, len(original.Steps)),
		Personas:       make([]*types.Persona, 0, len(original.Personas)),
	}
	for _, step := range original.Steps {
		// The source step id stays on as a correlation key so button
		// go-to targets remap to the freshly assigned step ids.
		stepClone := &types.Step{
			ID:          step.ID,
			Title:       step.Title,
			Description: step.Description,
			Type:        step.Type,
			AssetID:     step.AssetID,
			Actions:     make([]*types.StepAction, 0, len(step.Actions)),
		}
		for _, action := range step.Actions {
			stepClone.Actions = append(stepClone.Actions, &types.StepAction{
				ActionType:             action.ActionType,
				Title:                  action.Title,
				Text:                   action.Text,
				CredentialDefinitionID: action.CredentialDefinitionID,
				GoToStepID:             action.GoToStepID,
				ProofRequest:           action.ProofRequest,
			})
		}
		clone.Steps = append(clone.Steps, stepClone)
	}
	for _, persona := range original.Personas {
		personaID := persona.ID
		if mapped, ok := personaIDMap[persona.ID]; ok {
			personaID = mapped
		}
		clone.Personas = append(clone.Personas, &types.Persona{ID: personaID})
	}
	return clone
}

// rollback deletes already committed clones in reverse order. Failures are
// logged and skipped so every remaining compensation still runs.
func (s *duplicationService) rollback(ctx context.Context, undo []func(context.Context) error) {
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			s.log.Warn("duplication cleanup failed", "error", err)
		}
	}
}
