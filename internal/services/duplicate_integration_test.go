package services

import (
	"strings"
	"testing"

	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
)

func TestDuplicateShowcaseIsolation(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	source, err := e.showcases.Create(e.ctx, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("create source showcase: %v", err)
	}

	duplicator := e.duplication(t, f.user)
	clone, err := duplicator.Duplicate(e.ctx, source.ID, f.tenant.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	if clone.Name != "Campus Demo (Copy)" {
		t.Fatalf("clone name: want=%q got=%q", "Campus Demo (Copy)", clone.Name)
	}
	if clone.ID == source.ID {
		t.Fatalf("clone shares the source id")
	}
	if clone.CreatedByID == nil || *clone.CreatedByID != f.user.ID {
		t.Fatalf("clone creator not set to the acting user")
	}

	if len(clone.Personas) != len(source.Personas) {
		t.Fatalf("personas: want=%d got=%d", len(source.Personas), len(clone.Personas))
	}
	for _, clonePersona := range clone.Personas {
		for _, sourcePersona := range source.Personas {
			if clonePersona.ID == sourcePersona.ID {
				t.Fatalf("clone references source persona %s", sourcePersona.ID)
			}
		}
	}

	if len(clone.Scenarios) != 1 {
		t.Fatalf("scenarios: want=1 got=%d", len(clone.Scenarios))
	}
	cloneScenario := clone.Scenarios[0]
	if cloneScenario.ID == f.scenario.ID {
		t.Fatalf("clone references the source scenario")
	}
	if cloneScenario.IssuerID == nil || *cloneScenario.IssuerID != f.issuer.ID {
		t.Fatalf("cloned scenario does not reference the original issuer")
	}
	if len(cloneScenario.Steps) != 1 || len(cloneScenario.Steps[0].Actions) != 1 {
		t.Fatalf("cloned scenario lost its steps or actions")
	}
	if cloneScenario.Steps[0].ID == f.scenario.Steps[0].ID {
		t.Fatalf("cloned step shares the source step id")
	}

	// Cloned scenario personas point at the cloned persona, not the source.
	if len(cloneScenario.Personas) != 1 {
		t.Fatalf("cloned scenario personas: want=1 got=%d", len(cloneScenario.Personas))
	}
	if cloneScenario.Personas[0].ID == f.persona.ID {
		t.Fatalf("cloned scenario still references the source persona")
	}

	// The source is untouched.
	reread, err := e.showcases.GetByID(e.ctx, source.ID)
	if err != nil {
		t.Fatalf("re-read source: %v", err)
	}
	if reread.Name != "Campus Demo" || len(reread.Personas) != 1 {
		t.Fatalf("source mutated by duplication")
	}
}

func TestDuplicateWithoutActingUserFails(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	source, err := e.showcases.Create(e.ctx, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("create source showcase: %v", err)
	}

	duplicator := e.duplication(t, nil)
	if _, err := duplicator.Duplicate(e.ctx, source.ID, f.tenant.ID); !apperr.IsCode(err, apperr.CodeInternal) {
		t.Fatalf("want internal error without acting user, got %v", err)
	}
}

func TestConcreteDemoShowcaseFlow(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	created, err := e.showcases.Create(e.ctx, f.showcaseInput("Demo"))
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}

	if created.Slug != "demo" {
		t.Fatalf("slug: want=%q got=%q", "demo", created.Slug)
	}
	if len(created.Scenarios) != 1 {
		t.Fatalf("scenarios: want=1 got=%d", len(created.Scenarios))
	}
	steps := created.Scenarios[0].Steps
	if len(steps) != 1 {
		t.Fatalf("steps: want=1 got=%d", len(steps))
	}
	if len(steps[0].Actions) != 1 {
		t.Fatalf("actions: want=1 got=%d", len(steps[0].Actions))
	}
	action := steps[0].Actions[0]
	if action.ActionType != types.ActionTypeAcceptCredential {
		t.Fatalf("action type: want=%q got=%q", types.ActionTypeAcceptCredential, action.ActionType)
	}
	if action.CredentialDefinitionID == nil || *action.CredentialDefinitionID != f.definition.ID {
		t.Fatalf("action does not reference the credential definition")
	}
	if !strings.EqualFold(created.Status, types.ShowcaseStatusActive) {
		t.Fatalf("status: want=%q got=%q", types.ShowcaseStatusActive, created.Status)
	}
}
