package app

import (
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/platform/logger"
	"github.com/openvp/showcase-backend/internal/services"
)

type Services struct {
	Slug                  services.SlugService
	Session               services.Session
	Assets                services.AssetService
	Users                 services.UserService
	Personas              services.PersonaService
	CredentialSchemas     services.CredentialSchemaService
	CredentialDefinitions services.CredentialDefinitionService
	Issuers               services.IssuerService
	RelyingParties        services.RelyingPartyService
	Scenarios             services.ScenarioService
	Showcases             services.ShowcaseService
	Duplication           services.DuplicationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	graph := services.NewGraphAssembler(
		log,
		r.Asset,
		r.Persona,
		r.CredentialSchema,
		r.CredentialAttribute,
		r.CredentialDefinition,
		r.CredentialRevocation,
		r.Issuer,
		r.RelyingParty,
		r.IssuerDefinition,
		r.IssuerSchema,
		r.PartyDefinition,
		r.Step,
		r.StepAction,
		r.ScenarioPersona,
	)
	slug := services.NewSlugService(db, log)
	users := services.NewUserService(db, log, r.User, r.Tenant)
	session := &services.EmailSession{Email: cfg.SessionUserEmail, Users: users}

	assets := services.NewAssetService(db, log, r.Asset)
	personas := services.NewPersonaService(db, log, r.Persona, r.Asset, slug, graph)
	schemas := services.NewCredentialSchemaService(db, log, r.CredentialSchema, r.CredentialAttribute, graph)
	definitions := services.NewCredentialDefinitionService(
		db, log,
		r.CredentialDefinition, r.CredentialSchema, r.CredentialRevocation, r.Asset, r.User,
		graph,
	)
	issuers := services.NewIssuerService(
		db, log,
		r.Issuer, r.CredentialDefinition, r.CredentialSchema, r.Asset,
		r.IssuerDefinition, r.IssuerSchema,
		graph, c.publisher(),
	)
	relyingParties := services.NewRelyingPartyService(
		db, log,
		r.RelyingParty, r.CredentialDefinition, r.Asset, r.PartyDefinition,
		graph, c.publisher(),
	)
	scenarios := services.NewScenarioService(
		db, log,
		r.Scenario, r.Step, r.StepAction, r.ScenarioPersona,
		r.Persona, r.Issuer, r.RelyingParty, r.CredentialDefinition, r.Asset,
		slug, graph,
	)
	showcases := services.NewShowcaseService(
		db, log,
		r.Showcase, r.ShowcasePersona, r.ShowcaseScenario, r.ShowcaseDefinition,
		r.Persona, r.Scenario, r.CredentialDefinition, r.Asset, r.User, r.Tenant,
		slug, graph, c.slugCache(),
	)
	duplication := services.NewDuplicationService(log, session, showcases, personas, scenarios)

	return Services{
		Slug:                  slug,
		Session:               session,
		Assets:                assets,
		Users:                 users,
		Personas:              personas,
		CredentialSchemas:     schemas,
		CredentialDefinitions: definitions,
		Issuers:               issuers,
		RelyingParties:        relyingParties,
		Scenarios:             scenarios,
		Showcases:             showcases,
		Duplication:           duplication,
	}
}
