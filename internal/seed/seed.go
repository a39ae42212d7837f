package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
	"github.com/openvp/showcase-backend/internal/services"
)

// File is the on-disk demo-content format. Entities reference each other
// by the symbolic `key` field (and users by email), never by id; ids are
// assigned during Apply in dependency order.
type File struct {
	Tenant         TenantSpec         `yaml:"tenant"`
	Users          []UserSpec         `yaml:"users"`
	Assets         []AssetSpec        `yaml:"assets"`
	Schemas        []SchemaSpec       `yaml:"schemas"`
	Definitions    []DefinitionSpec   `yaml:"definitions"`
	Issuers        []IssuerSpec       `yaml:"issuers"`
	RelyingParties []RelyingPartySpec `yaml:"relying_parties"`
	Personas       []PersonaSpec      `yaml:"personas"`
	Scenarios      []ScenarioSpec     `yaml:"scenarios"`
	Showcases      []ShowcaseSpec     `yaml:"showcases"`
}

type TenantSpec struct {
	Name string `yaml:"name"`
}

type UserSpec struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

type AssetSpec struct {
	Key         string `yaml:"key"`
	MediaType   string `yaml:"media_type"`
	FileName    string `yaml:"file_name"`
	Description string `yaml:"description"`
	StorageKey  string `yaml:"storage_key"`
	URL         string `yaml:"url"`
}

type SchemaSpec struct {
	Key            string          `yaml:"key"`
	Name           string          `yaml:"name"`
	Version        string          `yaml:"version"`
	IdentifierType string          `yaml:"identifier_type"`
	Identifier     string          `yaml:"identifier"`
	Attributes     []AttributeSpec `yaml:"attributes"`
}

type AttributeSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Type  string `yaml:"type"`
}

type DefinitionSpec struct {
	Key            string `yaml:"key"`
	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	IdentifierType string `yaml:"identifier_type"`
	Identifier     string `yaml:"identifier"`
	Type           string `yaml:"type"`
	Schema         string `yaml:"schema"`
	Icon           string `yaml:"icon"`
}

type IssuerSpec struct {
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Organization string   `yaml:"organization"`
	Logo         string   `yaml:"logo"`
	Definitions  []string `yaml:"definitions"`
	Schemas      []string `yaml:"schemas"`
}

type RelyingPartySpec struct {
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Organization string   `yaml:"organization"`
	Logo         string   `yaml:"logo"`
	Definitions  []string `yaml:"definitions"`
}

type PersonaSpec struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	Description string `yaml:"description"`
	Hidden      bool   `yaml:"hidden"`
	Headshot    string `yaml:"headshot"`
	Body        string `yaml:"body"`
}

type ScenarioSpec struct {
	Key          string     `yaml:"key"`
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description"`
	Type         string     `yaml:"type"`
	Issuer       string     `yaml:"issuer"`
	RelyingParty string     `yaml:"relying_party"`
	Personas     []string   `yaml:"personas"`
	Steps        []StepSpec `yaml:"steps"`
}

type StepSpec struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Type        string       `yaml:"type"`
	Asset       string       `yaml:"asset"`
	Actions     []ActionSpec `yaml:"actions"`
}

type ActionSpec struct {
	Type         string              `yaml:"type"`
	Title        string              `yaml:"title"`
	Text         string              `yaml:"text"`
	Definition   string              `yaml:"definition"`
	GoToStep     *int                `yaml:"go_to_step"`
	ProofRequest *types.ProofRequest `yaml:"proof_request"`
}

type ShowcaseSpec struct {
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Status            string   `yaml:"status"`
	Hidden            bool     `yaml:"hidden"`
	CompletionMessage string   `yaml:"completion_message"`
	Banner            string   `yaml:"banner"`
	CreatedBy         string   `yaml:"created_by"`
	Personas          []string `yaml:"personas"`
	Scenarios         []string `yaml:"scenarios"`
	Definitions       []string `yaml:"definitions"`
}

// Seeder loads a demo-content file and applies it through the service
// layer, so every row goes through the same validation and slug paths as
// a live write.
type Seeder struct {
	log            *logger.Logger
	tenantRepo     repos.TenantRepo
	users          services.UserService
	assets         services.AssetService
	schemas        services.CredentialSchemaService
	definitions    services.CredentialDefinitionService
	issuers        services.IssuerService
	relyingParties services.RelyingPartyService
	personas       services.PersonaService
	scenarios      services.ScenarioService
	showcases      services.ShowcaseService
}

func NewSeeder(
	baseLog *logger.Logger,
	tenantRepo repos.TenantRepo,
	users services.UserService,
	assets services.AssetService,
	schemas services.CredentialSchemaService,
	definitions services.CredentialDefinitionService,
	issuers services.IssuerService,
	relyingParties services.RelyingPartyService,
	personas services.PersonaService,
	scenarios services.ScenarioService,
	showcases services.ShowcaseService,
) *Seeder {
	return &Seeder{
		log:            baseLog.With("component", "Seeder"),
		tenantRepo:     tenantRepo,
		users:          users,
		assets:         assets,
		schemas:        schemas,
		definitions:    definitions,
		issuers:        issuers,
		relyingParties: relyingParties,
		personas:       personas,
		scenarios:      scenarios,
		showcases:      showcases,
	}
}

func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &file, nil
}

func (s *Seeder) Apply(ctx context.Context, file *File) error {
	if file.Tenant.Name == "" {
		return fmt.Errorf("seed file requires a tenant")
	}

	tenants, err := s.tenantRepo.Create(ctx, nil, []*types.Tenant{{ID: uuid.New(), Name: file.Tenant.Name}})
	if err != nil {
		return fmt.Errorf("seed tenant: %w", err)
	}
	tenantID := tenants[0].ID
	s.log.Info("seeded tenant", "name", file.Tenant.Name, "id", tenantID)

	userIDs := make(map[string]uuid.UUID, len(file.Users))
	for _, spec := range file.Users {
		user, err := s.users.Create(ctx, &types.User{
			Email:     spec.Email,
			FirstName: spec.FirstName,
			LastName:  spec.LastName,
			TenantID:  &tenantID,
		})
		if err != nil {
			return fmt.Errorf("seed user %q: %w", spec.Email, err)
		}
		userIDs[spec.Email] = user.ID
	}

	assetIDs := make(map[string]uuid.UUID, len(file.Assets))
	for _, spec := range file.Assets {
		asset, err := s.assets.Create(ctx, &types.Asset{
			MediaType:   spec.MediaType,
			FileName:    spec.FileName,
			Description: spec.Description,
			StorageKey:  spec.StorageKey,
			URL:         spec.URL,
		})
		if err != nil {
			return fmt.Errorf("seed asset %q: %w", spec.Key, err)
		}
		assetIDs[spec.Key] = asset.ID
	}

	schemaIDs := make(map[string]uuid.UUID, len(file.Schemas))
	for _, spec := range file.Schemas {
		attributes := make([]*types.CredentialAttribute, 0, len(spec.Attributes))
		for _, attr := range spec.Attributes {
			attributes = append(attributes, &types.CredentialAttribute{
				Name:  attr.Name,
				Value: attr.Value,
				Type:  attr.Type,
			})
		}
		schema, err := s.schemas.Create(ctx, &types.CredentialSchema{
			Name:           spec.Name,
			Version:        spec.Version,
			IdentifierType: spec.IdentifierType,
			Identifier:     spec.Identifier,
			Attributes:     attributes,
		})
		if err != nil {
			return fmt.Errorf("seed schema %q: %w", spec.Key, err)
		}
		schemaIDs[spec.Key] = schema.ID
	}

	defIDs := make(map[string]uuid.UUID, len(file.Definitions))
	for _, spec := range file.Definitions {
		schemaID, ok := schemaIDs[spec.Schema]
		if !ok {
			return fmt.Errorf("definition %q references unknown schema %q", spec.Key, spec.Schema)
		}
		input := &types.CredentialDefinition{
			Name:               spec.Name,
			Version:            spec.Version,
			IdentifierType:     spec.IdentifierType,
			Identifier:         spec.Identifier,
			Type:               spec.Type,
			CredentialSchemaID: schemaID,
		}
		if spec.Icon != "" {
			iconID, ok := assetIDs[spec.Icon]
			if !ok {
				return fmt.Errorf("definition %q references unknown asset %q", spec.Key, spec.Icon)
			}
			input.IconID = &iconID
		}
		def, err := s.definitions.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed definition %q: %w", spec.Key, err)
		}
		defIDs[spec.Key] = def.ID
	}

	issuerIDs := make(map[string]uuid.UUID, len(file.Issuers))
	for _, spec := range file.Issuers {
		input := &types.Issuer{
			Name:         spec.Name,
			Description:  spec.Description,
			Organization: spec.Organization,
		}
		if spec.Logo != "" {
			logoID, ok := assetIDs[spec.Logo]
			if !ok {
				return fmt.Errorf("issuer %q references unknown asset %q", spec.Key, spec.Logo)
			}
			input.LogoID = &logoID
		}
		for _, key := range spec.Definitions {
			defID, ok := defIDs[key]
			if !ok {
				return fmt.Errorf("issuer %q references unknown definition %q", spec.Key, key)
			}
			input.CredentialDefinitions = append(input.CredentialDefinitions, &types.CredentialDefinition{ID: defID})
		}
		for _, key := range spec.Schemas {
			schemaID, ok := schemaIDs[key]
			if !ok {
				return fmt.Errorf("issuer %q references unknown schema %q", spec.Key, key)
			}
			input.CredentialSchemas = append(input.CredentialSchemas, &types.CredentialSchema{ID: schemaID})
		}
		issuer, err := s.issuers.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed issuer %q: %w", spec.Key, err)
		}
		issuerIDs[spec.Key] = issuer.ID
	}

	partyIDs := make(map[string]uuid.UUID, len(file.RelyingParties))
	for _, spec := range file.RelyingParties {
		input := &types.RelyingParty{
			Name:         spec.Name,
			Description:  spec.Description,
			Organization: spec.Organization,
		}
		if spec.Logo != "" {
			logoID, ok := assetIDs[spec.Logo]
			if !ok {
				return fmt.Errorf("relying party %q references unknown asset %q", spec.Key, spec.Logo)
			}
			input.LogoID = &logoID
		}
		for _, key := range spec.Definitions {
			defID, ok := defIDs[key]
			if !ok {
				return fmt.Errorf("relying party %q references unknown definition %q", spec.Key, key)
			}
			input.CredentialDefinitions = append(input.CredentialDefinitions, &types.CredentialDefinition{ID: defID})
		}
		party, err := s.relyingParties.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed relying party %q: %w", spec.Key, err)
		}
		partyIDs[spec.Key] = party.ID
	}

	personaIDs := make(map[string]uuid.UUID, len(file.Personas))
	for _, spec := range file.Personas {
		input := &types.Persona{
			Name:        spec.Name,
			Role:        spec.Role,
			Description: spec.Description,
			Hidden:      spec.Hidden,
		}
		if spec.Headshot != "" {
			headshotID, ok := assetIDs[spec.Headshot]
			if !ok {
				return fmt.Errorf("persona %q references unknown asset %q", spec.Key, spec.Headshot)
			}
			input.HeadshotImageID = &headshotID
		}
		if spec.Body != "" {
			bodyID, ok := assetIDs[spec.Body]
			if !ok {
				return fmt.Errorf("persona %q references unknown asset %q", spec.Key, spec.Body)
			}
			input.BodyImageID = &bodyID
		}
		persona, err := s.personas.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed persona %q: %w", spec.Key, err)
		}
		personaIDs[spec.Key] = persona.ID
	}

	scenarioIDs := make(map[string]uuid.UUID, len(file.Scenarios))
	for _, spec := range file.Scenarios {
		input, err := s.scenarioInput(spec, issuerIDs, partyIDs, personaIDs, defIDs, assetIDs)
		if err != nil {
			return err
		}
		scenario, err := s.scenarios.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed scenario %q: %w", spec.Key, err)
		}
		scenarioIDs[spec.Key] = scenario.ID
	}

	for _, spec := range file.Showcases {
		input := &types.Showcase{
			Name:        spec.Name,
			Description: spec.Description,
			Status:      spec.Status,
			Hidden:      spec.Hidden,
			TenantID:    tenantID,
		}
		if input.Status == "" {
			input.Status = types.ShowcaseStatusActive
		}
		if spec.CompletionMessage != "" {
			message := spec.CompletionMessage
			input.CompletionMessage = &message
		}
		if spec.Banner != "" {
			bannerID, ok := assetIDs[spec.Banner]
			if !ok {
				return fmt.Errorf("showcase %q references unknown asset %q", spec.Name, spec.Banner)
			}
			input.BannerImageID = &bannerID
		}
		if spec.CreatedBy != "" {
			userID, ok := userIDs[spec.CreatedBy]
			if !ok {
				return fmt.Errorf("showcase %q references unknown user %q", spec.Name, spec.CreatedBy)
			}
			input.CreatedByID = &userID
		}
		for _, key := range spec.Personas {
			personaID, ok := personaIDs[key]
			if !ok {
				return fmt.Errorf("showcase %q references unknown persona %q", spec.Name, key)
			}
			input.Personas = append(input.Personas, &types.Persona{ID: personaID})
		}
		for _, key := range spec.Scenarios {
			scenarioID, ok := scenarioIDs[key]
			if !ok {
				return fmt.Errorf("showcase %q references unknown scenario %q", spec.Name, key)
			}
			input.Scenarios = append(input.Scenarios, &types.Scenario{ID: scenarioID})
		}
		for _, key := range spec.Definitions {
			defID, ok := defIDs[key]
			if !ok {
				return fmt.Errorf("showcase %q references unknown definition %q", spec.Name, key)
			}
			input.CredentialDefinitions = append(input.CredentialDefinitions, &types.CredentialDefinition{ID: defID})
		}
		showcase, err := s.showcases.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed showcase %q: %w", spec.Name, err)
		}
		s.log.Info("seeded showcase", "name", showcase.Name, "slug", showcase.Slug)
	}
	return nil
}

func (s *Seeder) scenarioInput(
	spec ScenarioSpec,
	issuerIDs, partyIDs, personaIDs, defIDs, assetIDs map[string]uuid.UUID,
) (*types.Scenario, error) {
	input := &types.Scenario{
		Name:         spec.Name,
		Description:  spec.Description,
		ScenarioType: spec.Type,
	}
	if spec.Issuer != "" {
		issuerID, ok := issuerIDs[spec.Issuer]
		if !ok {
			return nil, fmt.Errorf("scenario %q references unknown issuer %q", spec.Key, spec.Issuer)
		}
		input.IssuerID = &issuerID
	}
	if spec.RelyingParty != "" {
		partyID, ok := partyIDs[spec.RelyingParty]
		if !ok {
			return nil, fmt.Errorf("scenario %q references unknown relying party %q", spec.Key, spec.RelyingParty)
		}
		input.RelyingPartyID = &partyID
	}
	for _, key := range spec.Personas {
		personaID, ok := personaIDs[key]
		if !ok {
			return nil, fmt.Errorf("scenario %q references unknown persona %q", spec.Key, key)
		}
		input.Personas = append(input.Personas, &types.Persona{ID: personaID})
	}
	// Correlation ids let button actions target steps by slice index.
	stepKeys := make([]uuid.UUID, len(spec.Steps))
	for i := range spec.Steps {
		stepKeys[i] = uuid.New()
	}
	for i, stepSpec := range spec.Steps {
		step := &types.Step{
			ID:          stepKeys[i],
			Title:       stepSpec.Title,
			Description: stepSpec.Description,
			Type:        stepSpec.Type,
		}
		if stepSpec.Asset != "" {
			assetID, ok := assetIDs[stepSpec.Asset]
			if !ok {
				return nil, fmt.Errorf("scenario %q step %d references unknown asset %q", spec.Key, i, stepSpec.Asset)
			}
			step.AssetID = &assetID
		}
		for _, actionSpec := range stepSpec.Actions {
			action := &types.StepAction{
				ActionType: actionSpec.Type,
				Title:      actionSpec.Title,
				Text:       actionSpec.Text,
			}
			if actionSpec.Definition != "" {
				defID, ok := defIDs[actionSpec.Definition]
				if !ok {
					return nil, fmt.Errorf("scenario %q references unknown definition %q", spec.Key, actionSpec.Definition)
				}
				action.CredentialDefinitionID = &defID
			}
			if actionSpec.GoToStep != nil {
				target := *actionSpec.GoToStep
				if target < 0 || target >= len(stepKeys) {
					return nil, fmt.Errorf("scenario %q step %d targets out-of-range step %d", spec.Key, i, target)
				}
				action.GoToStepID = &stepKeys[target]
			}
			if actionSpec.ProofRequest != nil {
				if err := action.SetProofRequest(actionSpec.ProofRequest); err != nil {
					return nil, fmt.Errorf("scenario %q: %w", spec.Key, err)
				}
			}
			step.Actions = append(step.Actions, action)
		}
		input.Steps = append(input.Steps, step)
	}
	return input, nil
}
