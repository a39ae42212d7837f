package services

import (
	"testing"

	"github.com/google/uuid"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
)

func TestScenarioStepAndActionOrderingRoundTrip(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	input := &types.Scenario{
		Name:         "Multi step flow",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &f.issuer.ID,
		Personas:     []*types.Persona{{ID: f.persona.ID}},
		Steps: []*types.Step{
			{
				Title: "Welcome",
				Type:  types.StepTypeHumanTask,
				Actions: []*types.StepAction{
					{ActionType: types.ActionTypeSetupConnection, Title: "Connect"},
					{ActionType: types.ActionTypeChooseWallet, Title: "Pick a wallet"},
				},
			},
			{
				Title: "Offer",
				Type:  types.StepTypeService,
				Actions: []*types.StepAction{
					{
						ActionType:             types.ActionTypeAcceptCredential,
						Title:                  "Accept",
						CredentialDefinitionID: &f.definition.ID,
					},
				},
			},
			{Title: "Done", Type: types.StepTypeHumanTask},
		},
	}

	created, err := e.scenarios.Create(e.ctx, input)
	if err != nil {
		t.Fatalf("create scenario: %v", err)
	}

	if len(created.Steps) != 3 {
		t.Fatalf("steps: want=3 got=%d", len(created.Steps))
	}
	wantTitles := []string{"Welcome", "Offer", "Done"}
	for i, step := range created.Steps {
		if step.Title != wantTitles[i] {
			t.Fatalf("step %d: want=%q got=%q", i, wantTitles[i], step.Title)
		}
		if step.StepOrder != i {
			t.Fatalf("step %d order: want=%d got=%d", i, i, step.StepOrder)
		}
	}
	first := created.Steps[0]
	if len(first.Actions) != 2 {
		t.Fatalf("first step actions: want=2 got=%d", len(first.Actions))
	}
	if first.Actions[0].Title != "Connect" || first.Actions[1].Title != "Pick a wallet" {
		t.Fatalf("action order lost: %q, %q", first.Actions[0].Title, first.Actions[1].Title)
	}
	if len(created.Steps[2].Actions) != 0 {
		t.Fatalf("empty step grew actions: %d", len(created.Steps[2].Actions))
	}
}

func TestScenarioRequiresExactlyOneCounterparty(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	party, err := e.relyingParties.Create(e.ctx, &types.RelyingParty{Name: "Test Verifier"})
	if err != nil {
		t.Fatalf("create relying party: %v", err)
	}

	both := &types.Scenario{
		Name:           "Both set",
		ScenarioType:   types.ScenarioTypeIssuance,
		IssuerID:       &f.issuer.ID,
		RelyingPartyID: &party.ID,
		Personas:       []*types.Persona{{ID: f.persona.ID}},
	}
	if _, err := e.scenarios.Create(e.ctx, both); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("issuance with relying party: want validation error, got %v", err)
	}

	neither := &types.Scenario{
		Name:         "Neither set",
		ScenarioType: types.ScenarioTypePresentation,
		Personas:     []*types.Persona{{ID: f.persona.ID}},
	}
	if _, err := e.scenarios.Create(e.ctx, neither); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("presentation without relying party: want validation error, got %v", err)
	}
}

func TestScenarioRejectsMalformedAction(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	input := &types.Scenario{
		Name:         "Bad action",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &f.issuer.ID,
		Personas:     []*types.Persona{{ID: f.persona.ID}},
		Steps: []*types.Step{
			{
				Title: "Broken",
				Type:  types.StepTypeHumanTask,
				Actions: []*types.StepAction{
					// accept-credential without a definition
					{ActionType: types.ActionTypeAcceptCredential, Title: "Accept"},
				},
			},
		},
	}
	if _, err := e.scenarios.Create(e.ctx, input); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestScenarioButtonTargetsRemapToFreshStepIDs(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	introID := uuid.New()
	finishID := uuid.New()
	input := &types.Scenario{
		Name:         "Skippable intro",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &f.issuer.ID,
		Personas:     []*types.Persona{{ID: f.persona.ID}},
		Steps: []*types.Step{
			{
				ID:    introID,
				Title: "Intro",
				Type:  types.StepTypeHumanTask,
				Actions: []*types.StepAction{
					{ActionType: types.ActionTypeButton, Title: "Skip", GoToStepID: &finishID},
				},
			},
			{ID: finishID, Title: "Finish", Type: types.StepTypeHumanTask},
		},
	}

	created, err := e.scenarios.Create(e.ctx, input)
	if err != nil {
		t.Fatalf("create scenario: %v", err)
	}
	if len(created.Steps) != 2 || len(created.Steps[0].Actions) != 1 {
		t.Fatalf("unexpected shape: steps=%d", len(created.Steps))
	}
	action := created.Steps[0].Actions[0]
	if action.GoToStepID == nil {
		t.Fatalf("button target dropped")
	}
	if *action.GoToStepID == finishID {
		t.Fatalf("button target kept the submitted id instead of the stored one")
	}
	if *action.GoToStepID != created.Steps[1].ID {
		t.Fatalf("button target: want=%s got=%s", created.Steps[1].ID, *action.GoToStepID)
	}
}

func TestScenarioUpdateReplacesOwnedGraph(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	updated, err := e.scenarios.Update(e.ctx, f.scenario.ID, &types.Scenario{
		Name:         "Receive your student card",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &f.issuer.ID,
		Personas:     []*types.Persona{{ID: f.persona.ID}},
		Steps: []*types.Step{
			{Title: "New first step", Type: types.StepTypeHumanTask},
			{Title: "New second step", Type: types.StepTypeHumanTask},
		},
	})
	if err != nil {
		t.Fatalf("update scenario: %v", err)
	}
	if len(updated.Steps) != 2 {
		t.Fatalf("steps after update: want=2 got=%d", len(updated.Steps))
	}
	if updated.Steps[0].Title != "New first step" {
		t.Fatalf("old steps survived the update: %q", updated.Steps[0].Title)
	}
	if updated.Slug != f.scenario.Slug {
		t.Fatalf("slug changed without rename: was=%q now=%q", f.scenario.Slug, updated.Slug)
	}

	var orphans int64
	if err := e.tx.Table("step").Where("scenario_id = ?", f.scenario.ID).Count(&orphans).Error; err != nil {
		t.Fatalf("count steps: %v", err)
	}
	if orphans != 2 {
		t.Fatalf("step rows after replace: want=2 got=%d", orphans)
	}
}
