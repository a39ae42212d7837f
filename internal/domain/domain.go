package domain

import (
	"github.com/openvp/showcase-backend/internal/domain/catalog"
	"github.com/openvp/showcase-backend/internal/domain/credentials"
	"github.com/openvp/showcase-backend/internal/domain/scenarios"
	"github.com/openvp/showcase-backend/internal/domain/showcases"
)

type Asset = catalog.Asset
type Tenant = catalog.Tenant
type User = catalog.User
type Persona = catalog.Persona

type CredentialSchema = credentials.CredentialSchema
type CredentialAttribute = credentials.CredentialAttribute
type CredentialDefinition = credentials.CredentialDefinition
type CredentialRevocation = credentials.CredentialRevocation
type Issuer = credentials.Issuer
type RelyingParty = credentials.RelyingParty
type IssuerCredentialDefinition = credentials.IssuerCredentialDefinition
type IssuerCredentialSchema = credentials.IssuerCredentialSchema
type RelyingPartyCredentialDefinition = credentials.RelyingPartyCredentialDefinition

type Scenario = scenarios.Scenario
type ScenarioPersona = scenarios.ScenarioPersona
type Step = scenarios.Step
type StepAction = scenarios.StepAction
type ProofRequest = scenarios.ProofRequest
type ProofAttributeGroup = scenarios.ProofAttributeGroup
type ProofPredicateGroup = scenarios.ProofPredicateGroup

type Showcase = showcases.Showcase
type ShowcasePersona = showcases.ShowcasePersona
type ShowcaseScenario = showcases.ShowcaseScenario
type ShowcaseCredentialDefinition = showcases.ShowcaseCredentialDefinition

const (
	ScenarioTypeIssuance     = scenarios.ScenarioTypeIssuance
	ScenarioTypePresentation = scenarios.ScenarioTypePresentation

	StepTypeHumanTask = scenarios.StepTypeHumanTask
	StepTypeService   = scenarios.StepTypeService

	ActionTypeAriesOOB         = scenarios.ActionTypeAriesOOB
	ActionTypeAcceptCredential = scenarios.ActionTypeAcceptCredential
	ActionTypeShareCredential  = scenarios.ActionTypeShareCredential
	ActionTypeButton           = scenarios.ActionTypeButton
	ActionTypeSetupConnection  = scenarios.ActionTypeSetupConnection
	ActionTypeChooseWallet     = scenarios.ActionTypeChooseWallet

	ShowcaseStatusActive   = showcases.StatusActive
	ShowcaseStatusPending  = showcases.StatusPending
	ShowcaseStatusArchived = showcases.StatusArchived

	CredentialTypeAnoncred = credentials.CredentialTypeAnoncred

	IdentifierTypeDID = credentials.IdentifierTypeDID

	AttributeTypeString  = credentials.AttributeTypeString
	AttributeTypeInteger = credentials.AttributeTypeInteger
	AttributeTypeFloat   = credentials.AttributeTypeFloat
	AttributeTypeBoolean = credentials.AttributeTypeBoolean
	AttributeTypeDate    = credentials.AttributeTypeDate
)
