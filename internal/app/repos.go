package app

import (
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type Repos struct {
	Asset   repos.AssetRepo
	Tenant  repos.TenantRepo
	User    repos.UserRepo
	Persona repos.PersonaRepo

	CredentialSchema     repos.CredentialSchemaRepo
	CredentialAttribute  repos.CredentialAttributeRepo
	CredentialDefinition repos.CredentialDefinitionRepo
	CredentialRevocation repos.CredentialRevocationRepo
	Issuer               repos.IssuerRepo
	RelyingParty         repos.RelyingPartyRepo
	IssuerDefinition     repos.IssuerCredentialDefinitionRepo
	IssuerSchema         repos.IssuerCredentialSchemaRepo
	PartyDefinition      repos.RelyingPartyCredentialDefinitionRepo

	Scenario        repos.ScenarioRepo
	Step            repos.StepRepo
	StepAction      repos.StepActionRepo
	ScenarioPersona repos.ScenarioPersonaRepo

	Showcase           repos.ShowcaseRepo
	ShowcasePersona    repos.ShowcasePersonaRepo
	ShowcaseScenario   repos.ShowcaseScenarioRepo
	ShowcaseDefinition repos.ShowcaseCredentialDefinitionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Asset:   repos.NewAssetRepo(db, log),
		Tenant:  repos.NewTenantRepo(db, log),
		User:    repos.NewUserRepo(db, log),
		Persona: repos.NewPersonaRepo(db, log),

		CredentialSchema:     repos.NewCredentialSchemaRepo(db, log),
		CredentialAttribute:  repos.NewCredentialAttributeRepo(db, log),
		CredentialDefinition: repos.NewCredentialDefinitionRepo(db, log),
		CredentialRevocation: repos.NewCredentialRevocationRepo(db, log),
		Issuer:               repos.NewIssuerRepo(db, log),
		RelyingParty:         repos.NewRelyingPartyRepo(db, log),
		IssuerDefinition:     repos.NewIssuerCredentialDefinitionRepo(db, log),
		IssuerSchema:         repos.NewIssuerCredentialSchemaRepo(db, log),
		PartyDefinition:      repos.NewRelyingPartyCredentialDefinitionRepo(db, log),

		Scenario:        repos.NewScenarioRepo(db, log),
		Step:            repos.NewStepRepo(db, log),
		StepAction:      repos.NewStepActionRepo(db, log),
		ScenarioPersona: repos.NewScenarioPersonaRepo(db, log),

		Showcase:           repos.NewShowcaseRepo(db, log),
		ShowcasePersona:    repos.NewShowcasePersonaRepo(db, log),
		ShowcaseScenario:   repos.NewShowcaseScenarioRepo(db, log),
		ShowcaseDefinition: repos.NewShowcaseCredentialDefinitionRepo(db, log),
	}
}
