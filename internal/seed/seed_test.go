package seed

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	types "github.com/openvp/showcase-backend/internal/domain"
)

func loadDemo(t *testing.T) *File {
	t.Helper()
	file, err := Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("load demo seed: %v", err)
	}
	return file
}

func TestLoadDemoFile(t *testing.T) {
	file := loadDemo(t)

	if file.Tenant.Name != "BC Gov Showcase" {
		t.Fatalf("tenant: want=%q got=%q", "BC Gov Showcase", file.Tenant.Name)
	}
	if len(file.Assets) != 3 || len(file.Personas) != 1 || len(file.Scenarios) != 2 {
		t.Fatalf("unexpected counts: assets=%d personas=%d scenarios=%d",
			len(file.Assets), len(file.Personas), len(file.Scenarios))
	}

	issuance := file.Scenarios[0]
	if issuance.Type != types.ScenarioTypeIssuance || issuance.Issuer != "best-bc-college" {
		t.Fatalf("issuance scenario mangled: %+v", issuance)
	}
	button := issuance.Steps[1].Actions[1]
	if button.Type != types.ActionTypeButton || button.GoToStep == nil || *button.GoToStep != 0 {
		t.Fatalf("button action mangled: %+v", button)
	}

	presentation := file.Scenarios[1]
	proof := presentation.Steps[0].Actions[0]
	if proof.ProofRequest == nil {
		t.Fatalf("proof request not parsed")
	}
	group, ok := proof.ProofRequest.Attributes["student"]
	if !ok || len(group.Attributes) != 2 {
		t.Fatalf("proof request group mangled: %+v", proof.ProofRequest)
	}

	showcase := file.Showcases[0]
	if len(showcase.Scenarios) != 2 || showcase.CreatedBy != "editor@example.com" {
		t.Fatalf("showcase spec mangled: %+v", showcase)
	}
}

func TestScenarioInputResolvesReferences(t *testing.T) {
	file := loadDemo(t)
	seeder := &Seeder{}

	issuerID := uuid.New()
	personaID := uuid.New()
	defID := uuid.New()

	input, err := seeder.scenarioInput(
		file.Scenarios[0],
		map[string]uuid.UUID{"best-bc-college": issuerID},
		nil,
		map[string]uuid.UUID{"alice": personaID},
		map[string]uuid.UUID{"student-card": defID},
		nil,
	)
	if err != nil {
		t.Fatalf("scenario input: %v", err)
	}

	if input.IssuerID == nil || *input.IssuerID != issuerID {
		t.Fatalf("issuer not resolved")
	}
	if len(input.Personas) != 1 || input.Personas[0].ID != personaID {
		t.Fatalf("persona not resolved")
	}
	if len(input.Steps) != 2 {
		t.Fatalf("steps: want=2 got=%d", len(input.Steps))
	}
	accept := input.Steps[1].Actions[0]
	if accept.CredentialDefinitionID == nil || *accept.CredentialDefinitionID != defID {
		t.Fatalf("definition not resolved")
	}
	button := input.Steps[1].Actions[1]
	if button.GoToStepID == nil || *button.GoToStepID != input.Steps[0].ID {
		t.Fatalf("go_to_step index not resolved to the first step")
	}
}

func TestScenarioInputRejectsUnknownKeys(t *testing.T) {
	file := loadDemo(t)
	seeder := &Seeder{}

	if _, err := seeder.scenarioInput(file.Scenarios[0], nil, nil, nil, nil, nil); err == nil {
		t.Fatalf("unknown issuer key accepted")
	}

	spec := file.Scenarios[0]
	spec.Issuer = "best-bc-college"
	spec.Personas = []string{"nobody"}
	if _, err := seeder.scenarioInput(
		spec,
		map[string]uuid.UUID{"best-bc-college": uuid.New()},
		nil, nil, nil, nil,
	); err == nil {
		t.Fatalf("unknown persona key accepted")
	}
}

func TestScenarioInputRejectsOutOfRangeGoToStep(t *testing.T) {
	file := loadDemo(t)
	seeder := &Seeder{}

	spec := file.Scenarios[0]
	bad := 7
	spec.Steps[1].Actions[1].GoToStep = &bad

	_, err := seeder.scenarioInput(
		spec,
		map[string]uuid.UUID{"best-bc-college": uuid.New()},
		nil,
		map[string]uuid.UUID{"alice": uuid.New()},
		map[string]uuid.UUID{"student-card": uuid.New()},
		nil,
	)
	if err == nil {
		t.Fatalf("out-of-range go_to_step accepted")
	}
}
