package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/openvp/showcase-backend/internal/domain"
)

func TestCloneScenarioInputRemapsPersonas(t *testing.T) {
	sourcePersona := uuid.New()
	clonedPersona := uuid.New()
	unmappedPersona := uuid.New()
	issuerID := uuid.New()

	source := &types.Scenario{
		ID:           uuid.New(),
		Name:         "Issue card",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &issuerID,
		Personas: []*types.Persona{
			{ID: sourcePersona},
			{ID: unmappedPersona},
		},
	}

	clone := cloneScenarioInput(source, map[uuid.UUID]uuid.UUID{sourcePersona: clonedPersona})

	if clone.ID != uuid.Nil {
		t.Fatalf("clone carries the source scenario id")
	}
	if clone.IssuerID == nil || *clone.IssuerID != issuerID {
		t.Fatalf("issuer reference lost")
	}
	if len(clone.Personas) != 2 {
		t.Fatalf("personas: want=2 got=%d", len(clone.Personas))
	}
	if clone.Personas[0].ID != clonedPersona {
		t.Fatalf("mapped persona: want=%s got=%s", clonedPersona, clone.Personas[0].ID)
	}
	// Best effort: unmapped references keep the original id.
	if clone.Personas[1].ID != unmappedPersona {
		t.Fatalf("unmapped persona: want=%s got=%s", unmappedPersona, clone.Personas[1].ID)
	}
}

func TestCloneScenarioInputStripsServerFields(t *testing.T) {
	defID := uuid.New()
	stepID := uuid.New()
	targetID := uuid.New()
	stamp := time.Now().Add(-time.Hour)

	source := &types.Scenario{
		ID:           uuid.New(),
		Name:         "Flow",
		ScenarioType: types.ScenarioTypeIssuance,
		Steps: []*types.Step{
			{
				ID:        stepID,
				Title:     "Offer",
				Type:      types.StepTypeHumanTask,
				CreatedAt: stamp,
				UpdatedAt: stamp,
				Actions: []*types.StepAction{
					{
						ID:                     uuid.New(),
						ActionType:             types.ActionTypeAcceptCredential,
						Title:                  "Accept",
						CredentialDefinitionID: &defID,
						CreatedAt:              stamp,
					},
					{
						ID:         uuid.New(),
						ActionType: types.ActionTypeButton,
						Title:      "Skip",
						GoToStepID: &targetID,
					},
				},
			},
			{ID: targetID, Title: "Done", Type: types.StepTypeHumanTask},
		},
	}

	clone := cloneScenarioInput(source, nil)

	if len(clone.Steps) != 2 {
		t.Fatalf("steps: want=2 got=%d", len(clone.Steps))
	}
	step := clone.Steps[0]
	// The step keeps its id as a correlation key for go-to remapping, but
	// timestamps never travel.
	if step.ID != stepID {
		t.Fatalf("correlation id lost: want=%s got=%s", stepID, step.ID)
	}
	if !step.CreatedAt.IsZero() || !step.UpdatedAt.IsZero() {
		t.Fatalf("step timestamps survived the clone")
	}
	if len(step.Actions) != 2 {
		t.Fatalf("actions: want=2 got=%d", len(step.Actions))
	}
	accept := step.Actions[0]
	if accept.ID != uuid.Nil {
		t.Fatalf("action id survived the clone")
	}
	if !accept.CreatedAt.IsZero() {
		t.Fatalf("action timestamp survived the clone")
	}
	if accept.CredentialDefinitionID == nil || *accept.CredentialDefinitionID != defID {
		t.Fatalf("credential definition reference lost")
	}
	button := step.Actions[1]
	if button.GoToStepID == nil || *button.GoToStepID != targetID {
		t.Fatalf("go-to target lost")
	}
}
