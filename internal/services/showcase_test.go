package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/openvp/showcase-backend/internal/data/repos/testutil"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/apperr"
)

// fixture is a minimal valid graph: one tenant, one user, one persona, and
// one issuance scenario carrying a single accept-credential action.
type fixture struct {
	tenant     *types.Tenant
	user       *types.User
	persona    *types.Persona
	issuer     *types.Issuer
	definition *types.CredentialDefinition
	scenario   *types.Scenario
}

func buildFixture(t *testing.T, e *env) *fixture {
	t.Helper()

	tenant := testutil.SeedTenant(t, e.ctx, e.tx, "Test College")
	user := testutil.SeedUser(t, e.ctx, e.tx, uuid.NewString()+"@example.com")

	schema, err := e.schemas.Create(e.ctx, &types.CredentialSchema{
		Name:    "student_card",
		Version: "1.0",
		Attributes: []*types.CredentialAttribute{
			{Name: "student_first_name", Type: types.AttributeTypeString},
			{Name: "student_last_name", Type: types.AttributeTypeString},
		},
	})
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}
	definition, err := e.definitions.Create(e.ctx, &types.CredentialDefinition{
		Name:               "student_card",
		Version:            "1.0",
		Type:               types.CredentialTypeAnoncred,
		CredentialSchemaID: schema.ID,
	})
	if err != nil {
		t.Fatalf("create definition: %v", err)
	}
	issuer, err := e.issuers.Create(e.ctx, &types.Issuer{
		Name:                  "Test College Registrar",
		CredentialDefinitions: []*types.CredentialDefinition{{ID: definition.ID}},
		CredentialSchemas:     []*types.CredentialSchema{{ID: schema.ID}},
	})
	if err != nil {
		t.Fatalf("create issuer: %v", err)
	}
	persona, err := e.personas.Create(e.ctx, &types.Persona{
		Name: "Alice Porter",
		Role: "Student",
	})
	if err != nil {
		t.Fatalf("create persona: %v", err)
	}
	scenario, err := e.scenarios.Create(e.ctx, &types.Scenario{
		Name:         "Receive your student card",
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     &issuer.ID,
		Personas:     []*types.Persona{{ID: persona.ID}},
		Steps: []*types.Step{
			{
				Title: "Accept the offer",
				Type:  types.StepTypeHumanTask,
				Actions: []*types.StepAction{
					{
						ActionType:             types.ActionTypeAcceptCredential,
						Title:                  "Accept credential",
						CredentialDefinitionID: &definition.ID,
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create scenario: %v", err)
	}

	return &fixture{
		tenant:     tenant,
		user:       user,
		persona:    persona,
		issuer:     issuer,
		definition: definition,
		scenario:   scenario,
	}
}

func (f *fixture) showcaseInput(name string) *types.Showcase {
	return &types.Showcase{
		Name:      name,
		Status:    types.ShowcaseStatusActive,
		TenantID:  f.tenant.ID,
		Personas:  []*types.Persona{{ID: f.persona.ID}},
		Scenarios: []*types.Scenario{{ID: f.scenario.ID}},
	}
}

func showcaseRowCount(t *testing.T, e *env, tenantID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := e.tx.Table("showcase").Where("tenant_id = ?", tenantID).Count(&count).Error; err != nil {
		t.Fatalf("count showcases: %v", err)
	}
	return count
}

func TestShowcaseCreateRejectsEmptySets(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	noPersonas := f.showcaseInput("No Personas")
	noPersonas.Personas = nil
	if _, err := e.showcases.Create(e.ctx, noPersonas); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("empty personas: want validation error, got %v", err)
	}

	noScenarios := f.showcaseInput("No Scenarios")
	noScenarios.Scenarios = nil
	if _, err := e.showcases.Create(e.ctx, noScenarios); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("empty scenarios: want validation error, got %v", err)
	}

	if count := showcaseRowCount(t, e, f.tenant.ID); count != 0 {
		t.Fatalf("rejected creates wrote rows: count=%d", count)
	}
}

func TestShowcaseCreateUnknownReferenceNotFound(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	missing := uuid.New()
	input := f.showcaseInput("Broken")
	input.Personas = []*types.Persona{{ID: missing}}

	_, err := e.showcases.Create(e.ctx, input)
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("want not_found, got %v", err)
	}
	if !strings.Contains(err.Error(), missing.String()) {
		t.Fatalf("error does not name the missing id: %v", err)
	}
	if count := showcaseRowCount(t, e, f.tenant.ID); count != 0 {
		t.Fatalf("failed create wrote rows: count=%d", count)
	}
}

func TestShowcaseRoundTrip(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	second, err := e.personas.Create(e.ctx, &types.Persona{Name: "Bob Tailor", Role: "Clerk"})
	if err != nil {
		t.Fatalf("create second persona: %v", err)
	}

	input := f.showcaseInput("Campus Demo")
	input.Personas = append(input.Personas, &types.Persona{ID: second.ID})
	input.CredentialDefinitions = []*types.CredentialDefinition{{ID: f.definition.ID}}

	created, err := e.showcases.Create(e.ctx, input)
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}

	got, err := e.showcases.GetByID(e.ctx, created.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(got.Personas) != 2 {
		t.Fatalf("personas: want=2 got=%d", len(got.Personas))
	}
	if len(got.Scenarios) != 1 {
		t.Fatalf("scenarios: want=1 got=%d", len(got.Scenarios))
	}
	if len(got.CredentialDefinitions) != 1 {
		t.Fatalf("credential definitions: want=1 got=%d", len(got.CredentialDefinitions))
	}

	scenario := got.Scenarios[0]
	if len(scenario.Steps) != 1 {
		t.Fatalf("steps: want=1 got=%d", len(scenario.Steps))
	}
	step := scenario.Steps[0]
	if len(step.Actions) != 1 {
		t.Fatalf("actions: want=1 got=%d", len(step.Actions))
	}
	if step.Actions[0].ActionType != types.ActionTypeAcceptCredential {
		t.Fatalf("action type: want=%q got=%q", types.ActionTypeAcceptCredential, step.Actions[0].ActionType)
	}
	if scenario.Issuer == nil || scenario.Issuer.ID != f.issuer.ID {
		t.Fatalf("scenario issuer not stitched")
	}
}

func TestShowcaseSlugStability(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	created, err := e.showcases.Create(e.ctx, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}
	if created.Slug != "campus-demo" {
		t.Fatalf("slug: want=%q got=%q", "campus-demo", created.Slug)
	}

	same, err := e.showcases.Update(e.ctx, created.ID, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("update without rename: %v", err)
	}
	if same.Slug != created.Slug {
		t.Fatalf("slug changed without rename: was=%q now=%q", created.Slug, same.Slug)
	}

	renamed, err := e.showcases.Update(e.ctx, created.ID, f.showcaseInput("Winter Open Day"))
	if err != nil {
		t.Fatalf("update with rename: %v", err)
	}
	if renamed.Slug != "winter-open-day" {
		t.Fatalf("slug after rename: want=%q got=%q", "winter-open-day", renamed.Slug)
	}
}

func TestShowcaseSlugCollisionGetsSuffix(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	first, err := e.showcases.Create(e.ctx, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := e.showcases.Create(e.ctx, f.showcaseInput("Campus Demo"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug == first.Slug {
		t.Fatalf("duplicate slug: %q", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, "campus-demo-") {
		t.Fatalf("second slug not derived from name: %q", second.Slug)
	}
}

func TestShowcaseApprovalMonotonic(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	created, err := e.showcases.Create(e.ctx, f.showcaseInput("Needs Approval"))
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}

	unapproved, err := e.showcases.ListUnapproved(e.ctx)
	if err != nil {
		t.Fatalf("list unapproved: %v", err)
	}
	if !containsShowcase(unapproved, created.ID) {
		t.Fatalf("new showcase missing from unapproved list")
	}

	approved, err := e.showcases.Approve(e.ctx, created.ID, f.user.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.ApprovedByID == nil || *approved.ApprovedByID != f.user.ID {
		t.Fatalf("approver not recorded")
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("approval timestamp not recorded")
	}
	firstApproval := *approved.ApprovedAt

	unapproved, err = e.showcases.ListUnapproved(e.ctx)
	if err != nil {
		t.Fatalf("list unapproved after approve: %v", err)
	}
	if containsShowcase(unapproved, created.ID) {
		t.Fatalf("approved showcase still listed as unapproved")
	}

	again, err := e.showcases.Approve(e.ctx, created.ID, f.user.ID)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}
	if again.ApprovedAt == nil || again.ApprovedAt.Before(firstApproval.Add(-time.Second)) {
		t.Fatalf("second approval regressed timestamp: first=%v second=%v", firstApproval, again.ApprovedAt)
	}
}

func TestShowcaseGetIDBySlug(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	created, err := e.showcases.Create(e.ctx, f.showcaseInput("Slug Lookup"))
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}

	id, err := e.showcases.GetIDBySlug(e.ctx, created.Slug)
	if err != nil {
		t.Fatalf("lookup by slug: %v", err)
	}
	if id != created.ID {
		t.Fatalf("slug lookup: want=%s got=%s", created.ID, id)
	}

	if _, err := e.showcases.GetIDBySlug(e.ctx, "no-such-slug"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("missing slug: want not_found, got %v", err)
	}
}

func TestTenantDeleteCascadesShowcase(t *testing.T) {
	e := newEnv(t)
	f := buildFixture(t, e)

	created, err := e.showcases.Create(e.ctx, f.showcaseInput("Doomed"))
	if err != nil {
		t.Fatalf("create showcase: %v", err)
	}

	if err := e.tenantRepo.FullDeleteByIDs(e.ctx, nil, []uuid.UUID{f.tenant.ID}); err != nil {
		t.Fatalf("delete tenant: %v", err)
	}

	if _, err := e.showcases.GetByID(e.ctx, created.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("showcase survived tenant delete: %v", err)
	}

	// Referenced root entities stay.
	if _, err := e.personas.GetByID(e.ctx, f.persona.ID); err != nil {
		t.Fatalf("persona removed by tenant cascade: %v", err)
	}
	if _, err := e.scenarios.GetByID(e.ctx, f.scenario.ID); err != nil {
		t.Fatalf("scenario removed by tenant cascade: %v", err)
	}
}

func containsShowcase(list []*types.Showcase, id uuid.UUID) bool {
	for _, showcase := range list {
		if showcase.ID == id {
			return true
		}
	}
	return false
}
