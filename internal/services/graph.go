package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	types "github.com/openvp/showcase-backend/internal/domain"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

// GraphAssembler reconstructs nested entity graphs from flat rows. Every
// method works on a batch keyed by parent id so callers never fan out
// per-row queries. Absent to-one relations stay nil; to-many collections
// come back as non-nil slices, ordered where the column defines an order.
type GraphAssembler struct {
	log               *logger.Logger
	assetRepo         repos.AssetRepo
	personaRepo       repos.PersonaRepo
	schemaRepo        repos.CredentialSchemaRepo
	attrRepo          repos.CredentialAttributeRepo
	defRepo           repos.CredentialDefinitionRepo
	revocationRepo    repos.CredentialRevocationRepo
	issuerRepo        repos.IssuerRepo
	partyRepo         repos.RelyingPartyRepo
	issuerDefRepo     repos.IssuerCredentialDefinitionRepo
	issuerSchemaRepo  repos.IssuerCredentialSchemaRepo
	partyDefRepo      repos.RelyingPartyCredentialDefinitionRepo
	stepRepo          repos.StepRepo
	actionRepo        repos.StepActionRepo
	scenarioPersonaRepo repos.ScenarioPersonaRepo
}

func NewGraphAssembler(
	baseLog *logger.Logger,
	assetRepo repos.AssetRepo,
	personaRepo repos.PersonaRepo,
	schemaRepo repos.CredentialSchemaRepo,
	attrRepo repos.CredentialAttributeRepo,
	defRepo repos.CredentialDefinitionRepo,
	revocationRepo repos.CredentialRevocationRepo,
	issuerRepo repos.IssuerRepo,
	partyRepo repos.RelyingPartyRepo,
	issuerDefRepo repos.IssuerCredentialDefinitionRepo,
	issuerSchemaRepo repos.IssuerCredentialSchemaRepo,
	partyDefRepo repos.RelyingPartyCredentialDefinitionRepo,
	stepRepo repos.StepRepo,
	actionRepo repos.StepActionRepo,
	scenarioPersonaRepo repos.ScenarioPersonaRepo,
) *GraphAssembler {
	return &GraphAssembler{
		log:               baseLog.With("service", "GraphAssembler"),
		assetRepo:         assetRepo,
		personaRepo:       personaRepo,
		schemaRepo:        schemaRepo,
		attrRepo:          attrRepo,
		defRepo:           defRepo,
		revocationRepo:    revocationRepo,
		issuerRepo:        issuerRepo,
		partyRepo:         partyRepo,
		issuerDefRepo:     issuerDefRepo,
		issuerSchemaRepo:  issuerSchemaRepo,
		partyDefRepo:      partyDefRepo,
		stepRepo:          stepRepo,
		actionRepo:        actionRepo,
		scenarioPersonaRepo: scenarioPersonaRepo,
	}
}

func (g *GraphAssembler) assetsByID(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]*types.Asset, error) {
	assets, err := g.assetRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return byID, nil
}

// ExpandSchemas stitches ordered attributes onto schemas.
func (g *GraphAssembler) ExpandSchemas(ctx context.Context, tx *gorm.DB, schemas []*types.CredentialSchema) error {
	if len(schemas) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(schemas))
	for _, schema := range schemas {
		ids = append(ids, schema.ID)
	}
	attrs, err := g.attrRepo.GetBySchemaIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	bySchema := make(map[uuid.UUID][]*types.CredentialAttribute)
	for _, attr := range attrs {
		bySchema[attr.CredentialSchemaID] = append(bySchema[attr.CredentialSchemaID], attr)
	}
	for _, schema := range schemas {
		schema.Attributes = bySchema[schema.ID]
		if schema.Attributes == nil {
			schema.Attributes = []*types.CredentialAttribute{}
		}
	}
	return nil
}

// ExpandDefinitions stitches schema (with attributes), icon, and revocation
// info onto definitions.
func (g *GraphAssembler) ExpandDefinitions(ctx context.Context, tx *gorm.DB, defs []*types.CredentialDefinition) error {
	if len(defs) == 0 {
		return nil
	}

	defIDs := make([]uuid.UUID, 0, len(defs))
	schemaIDs := make([]uuid.UUID, 0, len(defs))
	var iconIDs []uuid.UUID
	for _, def := range defs {
		defIDs = append(defIDs, def.ID)
		schemaIDs = append(schemaIDs, def.CredentialSchemaID)
		if def.IconID != nil {
			iconIDs = append(iconIDs, *def.IconID)
		}
	}

	schemas, err := g.schemaRepo.GetByIDs(ctx, tx, schemaIDs)
	if err != nil {
		return err
	}
	if err := g.ExpandSchemas(ctx, tx, schemas); err != nil {
		return err
	}
	schemaByID := make(map[uuid.UUID]*types.CredentialSchema, len(schemas))
	for _, schema := range schemas {
		schemaByID[schema.ID] = schema
	}

	revocations, err := g.revocationRepo.GetByDefinitionIDs(ctx, tx, defIDs)
	if err != nil {
		return err
	}
	revocationByDef := make(map[uuid.UUID]*types.CredentialRevocation, len(revocations))
	for _, rev := range revocations {
		revocationByDef[rev.CredentialDefinitionID] = rev
	}

	iconByID, err := g.assetsByID(ctx, tx, iconIDs)
	if err != nil {
		return err
	}

	for _, def := range defs {
		def.CredentialSchema = schemaByID[def.CredentialSchemaID]
		def.Revocation = revocationByDef[def.ID]
		if def.IconID != nil {
			def.Icon = iconByID[*def.IconID]
		}
	}
	return nil
}

// ExpandPersonas stitches headshot and body image assets onto personas.
func (g *GraphAssembler) ExpandPersonas(ctx context.Context, tx *gorm.DB, personas []*types.Persona) error {
	if len(personas) == 0 {
		return nil
	}
	var assetIDs []uuid.UUID
	for _, p := range personas {
		if p.HeadshotImageID != nil {
			assetIDs = append(assetIDs, *p.HeadshotImageID)
		}
		if p.BodyImageID != nil {
			assetIDs = append(assetIDs, *p.BodyImageID)
		}
	}
	byID, err := g.assetsByID(ctx, tx, assetIDs)
	if err != nil {
		return err
	}
	for _, p := range personas {
		if p.HeadshotImageID != nil {
			p.HeadshotImage = byID[*p.HeadshotImageID]
		}
		if p.BodyImageID != nil {
			p.BodyImage = byID[*p.BodyImageID]
		}
	}
	return nil
}

// ExpandIssuers stitches logo plus the credential definition and schema
// sub-graphs derived from the issuer join tables.
func (g *GraphAssembler) ExpandIssuers(ctx context.Context, tx *gorm.DB, issuers []*types.Issuer) error {
	if len(issuers) == 0 {
		return nil
	}

	issuerIDs := make([]uuid.UUID, 0, len(issuers))
	var logoIDs []uuid.UUID
	for _, issuer := range issuers {
		issuerIDs = append(issuerIDs, issuer.ID)
		if issuer.LogoID != nil {
			logoIDs = append(logoIDs, *issuer.LogoID)
		}
	}

	defJoins, err := g.issuerDefRepo.GetByIssuerIDs(ctx, tx, issuerIDs)
	if err != nil {
		return err
	}
	schemaJoins, err := g.issuerSchemaRepo.GetByIssuerIDs(ctx, tx, issuerIDs)
	if err != nil {
		return err
	}

	defIDSet := make(map[uuid.UUID]struct{})
	for _, join := range defJoins {
		defIDSet[join.CredentialDefinitionID] = struct{}{}
	}
	defs, err := g.defRepo.GetByIDs(ctx, tx, keys(defIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandDefinitions(ctx, tx, defs); err != nil {
		return err
	}
	defByID := make(map[uuid.UUID]*types.CredentialDefinition, len(defs))
	for _, def := range defs {
		defByID[def.ID] = def
	}

	schemaIDSet := make(map[uuid.UUID]struct{})
	for _, join := range schemaJoins {
		schemaIDSet[join.CredentialSchemaID] = struct{}{}
	}
	schemas, err := g.schemaRepo.GetByIDs(ctx, tx, keys(schemaIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandSchemas(ctx, tx, schemas); err != nil {
		return err
	}
	schemaByID := make(map[uuid.UUID]*types.CredentialSchema, len(schemas))
	for _, schema := range schemas {
		schemaByID[schema.ID] = schema
	}

	logoByID, err := g.assetsByID(ctx, tx, logoIDs)
	if err != nil {
		return err
	}

	defsByIssuer := make(map[uuid.UUID][]*types.CredentialDefinition)
	for _, join := range defJoins {
		if def := defByID[join.CredentialDefinitionID]; def != nil {
			defsByIssuer[join.IssuerID] = append(defsByIssuer[join.IssuerID], def)
		}
	}
	schemasByIssuer := make(map[uuid.UUID][]*types.CredentialSchema)
	for _, join := range schemaJoins {
		if schema := schemaByID[join.CredentialSchemaID]; schema != nil {
			schemasByIssuer[join.IssuerID] = append(schemasByIssuer[join.IssuerID], schema)
		}
	}

	for _, issuer := range issuers {
		issuer.CredentialDefinitions = defsByIssuer[issuer.ID]
		if issuer.CredentialDefinitions == nil {
			issuer.CredentialDefinitions = []*types.CredentialDefinition{}
		}
		issuer.CredentialSchemas = schemasByIssuer[issuer.ID]
		if issuer.CredentialSchemas == nil {
			issuer.CredentialSchemas = []*types.CredentialSchema{}
		}
		if issuer.LogoID != nil {
			issuer.Logo = logoByID[*issuer.LogoID]
		}
	}
	return nil
}

// ExpandRelyingParties stitches logo and the credential definition
// sub-graph derived from the relying party join table.
func (g *GraphAssembler) ExpandRelyingParties(ctx context.Context, tx *gorm.DB, parties []*types.RelyingParty) error {
	if len(parties) == 0 {
		return nil
	}

	partyIDs := make([]uuid.UUID, 0, len(parties))
	var logoIDs []uuid.UUID
	for _, party := range parties {
		partyIDs = append(partyIDs, party.ID)
		if party.LogoID != nil {
			logoIDs = append(logoIDs, *party.LogoID)
		}
	}

	defJoins, err := g.partyDefRepo.GetByRelyingPartyIDs(ctx, tx, partyIDs)
	if err != nil {
		return err
	}
	defIDSet := make(map[uuid.UUID]struct{})
	for _, join := range defJoins {
		defIDSet[join.CredentialDefinitionID] = struct{}{}
	}
	defs, err := g.defRepo.GetByIDs(ctx, tx, keys(defIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandDefinitions(ctx, tx, defs); err != nil {
		return err
	}
	defByID := make(map[uuid.UUID]*types.CredentialDefinition, len(defs))
	for _, def := range defs {
		defByID[def.ID] = def
	}

	logoByID, err := g.assetsByID(ctx, tx, logoIDs)
	if err != nil {
		return err
	}

	defsByParty := make(map[uuid.UUID][]*types.CredentialDefinition)
	for _, join := range defJoins {
		if def := defByID[join.CredentialDefinitionID]; def != nil {
			defsByParty[join.RelyingPartyID] = append(defsByParty[join.RelyingPartyID], def)
		}
	}

	for _, party := range parties {
		party.CredentialDefinitions = defsByParty[party.ID]
		if party.CredentialDefinitions == nil {
			party.CredentialDefinitions = []*types.CredentialDefinition{}
		}
		if party.LogoID != nil {
			party.Logo = logoByID[*party.LogoID]
		}
	}
	return nil
}

// AssembleScenarios stitches ordered steps with ordered actions, the
// persona set with image assets, and the issuer or relying party sub-graph
// onto scenarios.
func (g *GraphAssembler) AssembleScenarios(ctx context.Context, tx *gorm.DB, scenarios []*types.Scenario) error {
	if len(scenarios) == 0 {
		return nil
	}

	scenarioIDs := make([]uuid.UUID, 0, len(scenarios))
	issuerIDSet := make(map[uuid.UUID]struct{})
	partyIDSet := make(map[uuid.UUID]struct{})
	for _, scenario := range scenarios {
		scenarioIDs = append(scenarioIDs, scenario.ID)
		if scenario.IssuerID != nil {
			issuerIDSet[*scenario.IssuerID] = struct{}{}
		}
		if scenario.RelyingPartyID != nil {
			partyIDSet[*scenario.RelyingPartyID] = struct{}{}
		}
	}

	steps, err := g.stepRepo.GetByScenarioIDs(ctx, tx, scenarioIDs)
	if err != nil {
		return err
	}
	stepIDs := make([]uuid.UUID, 0, len(steps))
	var stepAssetIDs []uuid.UUID
	for _, step := range steps {
		stepIDs = append(stepIDs, step.ID)
		if step.AssetID != nil {
			stepAssetIDs = append(stepAssetIDs, *step.AssetID)
		}
	}

	actions, err := g.actionRepo.GetByStepIDs(ctx, tx, stepIDs)
	if err != nil {
		return err
	}
	actionsByStep := make(map[uuid.UUID][]*types.StepAction)
	for _, action := range actions {
		actionsByStep[action.StepID] = append(actionsByStep[action.StepID], action)
	}

	stepAssetByID, err := g.assetsByID(ctx, tx, stepAssetIDs)
	if err != nil {
		return err
	}

	stepsByScenario := make(map[uuid.UUID][]*types.Step)
	for _, step := range steps {
		step.Actions = actionsByStep[step.ID]
		if step.Actions == nil {
			step.Actions = []*types.StepAction{}
		}
		if step.AssetID != nil {
			step.Asset = stepAssetByID[*step.AssetID]
		}
		stepsByScenario[step.ScenarioID] = append(stepsByScenario[step.ScenarioID], step)
	}

	personaJoins, err := g.scenarioPersonaRepo.GetByScenarioIDs(ctx, tx, scenarioIDs)
	if err != nil {
		return err
	}
	personaIDSet := make(map[uuid.UUID]struct{})
	for _, join := range personaJoins {
		personaIDSet[join.PersonaID] = struct{}{}
	}
	personas, err := g.personaRepo.GetByIDs(ctx, tx, keys(personaIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandPersonas(ctx, tx, personas); err != nil {
		return err
	}
	personaByID := make(map[uuid.UUID]*types.Persona, len(personas))
	for _, persona := range personas {
		personaByID[persona.ID] = persona
	}
	personasByScenario := make(map[uuid.UUID][]*types.Persona)
	for _, join := range personaJoins {
		if persona := personaByID[join.PersonaID]; persona != nil {
			personasByScenario[join.ScenarioID] = append(personasByScenario[join.ScenarioID], persona)
		}
	}

	issuers, err := g.issuerRepo.GetByIDs(ctx, tx, keys(issuerIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandIssuers(ctx, tx, issuers); err != nil {
		return err
	}
	issuerByID := make(map[uuid.UUID]*types.Issuer, len(issuers))
	for _, issuer := range issuers {
		issuerByID[issuer.ID] = issuer
	}

	parties, err := g.partyRepo.GetByIDs(ctx, tx, keys(partyIDSet))
	if err != nil {
		return err
	}
	if err := g.ExpandRelyingParties(ctx, tx, parties); err != nil {
		return err
	}
	partyByID := make(map[uuid.UUID]*types.RelyingParty, len(parties))
	for _, party := range parties {
		partyByID[party.ID] = party
	}

	for _, scenario := range scenarios {
		scenario.Steps = stepsByScenario[scenario.ID]
		if scenario.Steps == nil {
			scenario.Steps = []*types.Step{}
		}
		scenario.Personas = personasByScenario[scenario.ID]
		if scenario.Personas == nil {
			scenario.Personas = []*types.Persona{}
		}
		if scenario.IssuerID != nil {
			scenario.Issuer = issuerByID[*scenario.IssuerID]
		}
		if scenario.RelyingPartyID != nil {
			scenario.RelyingParty = partyByID[*scenario.RelyingPartyID]
		}
	}
	return nil
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
