package repos

import (
	"gorm.io/gorm"

	"github.com/openvp/showcase-backend/internal/data/repos/catalog"
	"github.com/openvp/showcase-backend/internal/data/repos/credentials"
	"github.com/openvp/showcase-backend/internal/data/repos/scenarios"
	"github.com/openvp/showcase-backend/internal/data/repos/showcases"
	"github.com/openvp/showcase-backend/internal/platform/logger"
)

type AssetRepo = catalog.AssetRepo
type TenantRepo = catalog.TenantRepo
type UserRepo = catalog.UserRepo
type PersonaRepo = catalog.PersonaRepo

type CredentialSchemaRepo = credentials.CredentialSchemaRepo
type CredentialAttributeRepo = credentials.CredentialAttributeRepo
type CredentialDefinitionRepo = credentials.CredentialDefinitionRepo
type CredentialRevocationRepo = credentials.CredentialRevocationRepo
type IssuerRepo = credentials.IssuerRepo
type RelyingPartyRepo = credentials.RelyingPartyRepo
type IssuerCredentialDefinitionRepo = credentials.IssuerCredentialDefinitionRepo
type IssuerCredentialSchemaRepo = credentials.IssuerCredentialSchemaRepo
type RelyingPartyCredentialDefinitionRepo = credentials.RelyingPartyCredentialDefinitionRepo

type ScenarioRepo = scenarios.ScenarioRepo
type StepRepo = scenarios.StepRepo
type StepActionRepo = scenarios.StepActionRepo
type ScenarioPersonaRepo = scenarios.ScenarioPersonaRepo

type ShowcaseRepo = showcases.ShowcaseRepo
type ShowcasePersonaRepo = showcases.ShowcasePersonaRepo
type ShowcaseScenarioRepo = showcases.ShowcaseScenarioRepo
type ShowcaseCredentialDefinitionRepo = showcases.ShowcaseCredentialDefinitionRepo

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return catalog.NewAssetRepo(db, baseLog)
}
func NewTenantRepo(db *gorm.DB, baseLog *logger.Logger) TenantRepo {
	return catalog.NewTenantRepo(db, baseLog)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return catalog.NewUserRepo(db, baseLog)
}
func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return catalog.NewPersonaRepo(db, baseLog)
}

func NewCredentialSchemaRepo(db *gorm.DB, baseLog *logger.Logger) CredentialSchemaRepo {
	return credentials.NewCredentialSchemaRepo(db, baseLog)
}
func NewCredentialAttributeRepo(db *gorm.DB, baseLog *logger.Logger) CredentialAttributeRepo {
	return credentials.NewCredentialAttributeRepo(db, baseLog)
}
func NewCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) CredentialDefinitionRepo {
	return credentials.NewCredentialDefinitionRepo(db, baseLog)
}
func NewCredentialRevocationRepo(db *gorm.DB, baseLog *logger.Logger) CredentialRevocationRepo {
	return credentials.NewCredentialRevocationRepo(db, baseLog)
}
func NewIssuerRepo(db *gorm.DB, baseLog *logger.Logger) IssuerRepo {
	return credentials.NewIssuerRepo(db, baseLog)
}
func NewRelyingPartyRepo(db *gorm.DB, baseLog *logger.Logger) RelyingPartyRepo {
	return credentials.NewRelyingPartyRepo(db, baseLog)
}
func NewIssuerCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) IssuerCredentialDefinitionRepo {
	return credentials.NewIssuerCredentialDefinitionRepo(db, baseLog)
}
func NewIssuerCredentialSchemaRepo(db *gorm.DB, baseLog *logger.Logger) IssuerCredentialSchemaRepo {
	return credentials.NewIssuerCredentialSchemaRepo(db, baseLog)
}
func NewRelyingPartyCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) RelyingPartyCredentialDefinitionRepo {
	return credentials.NewRelyingPartyCredentialDefinitionRepo(db, baseLog)
}

func NewScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioRepo {
	return scenarios.NewScenarioRepo(db, baseLog)
}
func NewStepRepo(db *gorm.DB, baseLog *logger.Logger) StepRepo {
	return scenarios.NewStepRepo(db, baseLog)
}
func NewStepActionRepo(db *gorm.DB, baseLog *logger.Logger) StepActionRepo {
	return scenarios.NewStepActionRepo(db, baseLog)
}
func NewScenarioPersonaRepo(db *gorm.DB, baseLog *logger.Logger) ScenarioPersonaRepo {
	return scenarios.NewScenarioPersonaRepo(db, baseLog)
}

func NewShowcaseRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseRepo {
	return showcases.NewShowcaseRepo(db, baseLog)
}
func NewShowcasePersonaRepo(db *gorm.DB, baseLog *logger.Logger) ShowcasePersonaRepo {
	return showcases.NewShowcasePersonaRepo(db, baseLog)
}
func NewShowcaseScenarioRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseScenarioRepo {
	return showcases.NewShowcaseScenarioRepo(db, baseLog)
}
func NewShowcaseCredentialDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ShowcaseCredentialDefinitionRepo {
	return showcases.NewShowcaseCredentialDefinitionRepo(db, baseLog)
}
