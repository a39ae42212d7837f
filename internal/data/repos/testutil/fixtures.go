package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/openvp/showcase-backend/internal/domain"
)

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		ID:         uuid.New(),
		MediaType:  "image/png",
		FileName:   "banner.png",
		StorageKey: fmt.Sprintf("assets/%s.png", uuid.NewString()),
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedTenant(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Tenant {
	tb.Helper()
	t := &types.Tenant{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tenant: %v", err)
	}
	return t
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedPersona(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string) *types.Persona {
	tb.Helper()
	p := &types.Persona{
		ID:   uuid.New(),
		Name: "Ana",
		Role: "Student",
		Slug: slug,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed persona: %v", err)
	}
	return p
}

func SeedCredentialSchema(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.CredentialSchema {
	tb.Helper()
	s := &types.CredentialSchema{
		ID:      uuid.New(),
		Name:    name,
		Version: "1.0",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed credential schema: %v", err)
	}
	return s
}

func SeedCredentialAttribute(tb testing.TB, ctx context.Context, tx *gorm.DB, schemaID uuid.UUID, name string, order int) *types.CredentialAttribute {
	tb.Helper()
	a := &types.CredentialAttribute{
		ID:                 uuid.New(),
		CredentialSchemaID: schemaID,
		Name:               name,
		Type:               types.AttributeTypeString,
		AttributeOrder:     order,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed credential attribute: %v", err)
	}
	return a
}

func SeedCredentialDefinition(tb testing.TB, ctx context.Context, tx *gorm.DB, schemaID uuid.UUID, name string) *types.CredentialDefinition {
	tb.Helper()
	d := &types.CredentialDefinition{
		ID:                 uuid.New(),
		Name:               name,
		Version:            "1.0",
		Type:               types.CredentialTypeAnoncred,
		CredentialSchemaID: schemaID,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed credential definition: %v", err)
	}
	return d
}

func SeedIssuer(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Issuer {
	tb.Helper()
	i := &types.Issuer{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed issuer: %v", err)
	}
	return i
}

func SeedRelyingParty(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.RelyingParty {
	tb.Helper()
	rp := &types.RelyingParty{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(rp).Error; err != nil {
		tb.Fatalf("seed relying party: %v", err)
	}
	return rp
}

func SeedScenario(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, issuerID *uuid.UUID) *types.Scenario {
	tb.Helper()
	s := &types.Scenario{
		ID:           uuid.New(),
		Name:         "College Enrollment",
		Slug:         slug,
		ScenarioType: types.ScenarioTypeIssuance,
		IssuerID:     issuerID,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed scenario: %v", err)
	}
	return s
}

func SeedStep(tb testing.TB, ctx context.Context, tx *gorm.DB, scenarioID uuid.UUID, order int) *types.Step {
	tb.Helper()
	s := &types.Step{
		ID:         uuid.New(),
		ScenarioID: scenarioID,
		Title:      "Welcome",
		StepOrder:  order,
		Type:       types.StepTypeHumanTask,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed step: %v", err)
	}
	return s
}

func SeedStepAction(tb testing.TB, ctx context.Context, tx *gorm.DB, stepID uuid.UUID, order int, goTo *uuid.UUID) *types.StepAction {
	tb.Helper()
	a := &types.StepAction{
		ID:          uuid.New(),
		StepID:      stepID,
		ActionOrder: order,
		ActionType:  types.ActionTypeButton,
		Title:       "Next",
		GoToStepID:  goTo,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed step action: %v", err)
	}
	return a
}

func SeedShowcase(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, tenantID uuid.UUID) *types.Showcase {
	tb.Helper()
	s := &types.Showcase{
		ID:       uuid.New(),
		Name:     "Campus Life",
		Slug:     slug,
		Status:   types.ShowcaseStatusPending,
		TenantID: tenantID,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed showcase: %v", err)
	}
	return s
}
