package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	"github.com/openvp/showcase-backend/internal/data/repos/testutil"
	types "github.com/openvp/showcase-backend/internal/domain"
)

// env wires the full service stack over a rolled-back test transaction.
type env struct {
	ctx context.Context
	tx  *gorm.DB

	tenantRepo repos.TenantRepo

	assets         AssetService
	users          UserService
	personas       PersonaService
	schemas        CredentialSchemaService
	definitions    CredentialDefinitionService
	issuers        IssuerService
	relyingParties RelyingPartyService
	scenarios      ScenarioService
	showcases      ShowcaseService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	assetRepo := repos.NewAssetRepo(tx, log)
	tenantRepo := repos.NewTenantRepo(tx, log)
	userRepo := repos.NewUserRepo(tx, log)
	personaRepo := repos.NewPersonaRepo(tx, log)
	schemaRepo := repos.NewCredentialSchemaRepo(tx, log)
	attrRepo := repos.NewCredentialAttributeRepo(tx, log)
	defRepo := repos.NewCredentialDefinitionRepo(tx, log)
	revocationRepo := repos.NewCredentialRevocationRepo(tx, log)
	issuerRepo := repos.NewIssuerRepo(tx, log)
	partyRepo := repos.NewRelyingPartyRepo(tx, log)
	issuerDefRepo := repos.NewIssuerCredentialDefinitionRepo(tx, log)
	issuerSchemaRepo := repos.NewIssuerCredentialSchemaRepo(tx, log)
	partyDefRepo := repos.NewRelyingPartyCredentialDefinitionRepo(tx, log)
	scenarioRepo := repos.NewScenarioRepo(tx, log)
	stepRepo := repos.NewStepRepo(tx, log)
	actionRepo := repos.NewStepActionRepo(tx, log)
	scenarioPersonaRepo := repos.NewScenarioPersonaRepo(tx, log)
	showcaseRepo := repos.NewShowcaseRepo(tx, log)
	showcasePersonaRepo := repos.NewShowcasePersonaRepo(tx, log)
	showcaseScenarioRepo := repos.NewShowcaseScenarioRepo(tx, log)
	showcaseDefRepo := repos.NewShowcaseCredentialDefinitionRepo(tx, log)

	graph := NewGraphAssembler(
		log,
		assetRepo, personaRepo, schemaRepo, attrRepo, defRepo, revocationRepo,
		issuerRepo, partyRepo, issuerDefRepo, issuerSchemaRepo, partyDefRepo,
		stepRepo, actionRepo, scenarioPersonaRepo,
	)
	slug := NewSlugService(tx, log)

	return &env{
		ctx:        context.Background(),
		tx:         tx,
		tenantRepo: tenantRepo,
		assets:     NewAssetService(tx, log, assetRepo),
		users:      NewUserService(tx, log, userRepo, tenantRepo),
		personas:   NewPersonaService(tx, log, personaRepo, assetRepo, slug, graph),
		schemas:    NewCredentialSchemaService(tx, log, schemaRepo, attrRepo, graph),
		definitions: NewCredentialDefinitionService(
			tx, log, defRepo, schemaRepo, revocationRepo, assetRepo, userRepo, graph,
		),
		issuers: NewIssuerService(
			tx, log, issuerRepo, defRepo, schemaRepo, assetRepo,
			issuerDefRepo, issuerSchemaRepo, graph, nil,
		),
		relyingParties: NewRelyingPartyService(
			tx, log, partyRepo, defRepo, assetRepo, partyDefRepo, graph, nil,
		),
		scenarios: NewScenarioService(
			tx, log, scenarioRepo, stepRepo, actionRepo, scenarioPersonaRepo,
			personaRepo, issuerRepo, partyRepo, defRepo, assetRepo, slug, graph,
		),
		showcases: NewShowcaseService(
			tx, log, showcaseRepo, showcasePersonaRepo, showcaseScenarioRepo, showcaseDefRepo,
			personaRepo, scenarioRepo, defRepo, assetRepo, userRepo, tenantRepo,
			slug, graph, nil,
		),
	}
}

func (e *env) duplication(t *testing.T, actor *types.User) DuplicationService {
	t.Helper()
	log := testutil.Logger(t)
	return NewDuplicationService(log, &StaticSession{User: actor}, e.showcases, e.personas, e.scenarios)
}
