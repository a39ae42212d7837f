package credentials

import (
	"time"

	"github.com/google/uuid"
)

// Join rows below are owned by the issuer/relying-party side and replaced
// wholesale on every update; they are not independently addressable.

type IssuerCredentialDefinition struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	IssuerID uuid.UUID `gorm:"type:uuid;not null;index:idx_issuer_cred_def,unique,priority:1" json:"issuer_id"`
	Issuer   *Issuer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:IssuerID;references:ID" json:"issuer,omitempty"`

	CredentialDefinitionID uuid.UUID             `gorm:"type:uuid;not null;index:idx_issuer_cred_def,unique,priority:2" json:"credential_definition_id"`
	CredentialDefinition   *CredentialDefinition `gorm:"constraint:OnDelete:CASCADE;foreignKey:CredentialDefinitionID;references:ID" json:"credential_definition,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (IssuerCredentialDefinition) TableName() string { return "issuer_credential_definition" }

type IssuerCredentialSchema struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	IssuerID uuid.UUID `gorm:"type:uuid;not null;index:idx_issuer_cred_schema,unique,priority:1" json:"issuer_id"`
	Issuer   *Issuer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:IssuerID;references:ID" json:"issuer,omitempty"`

	CredentialSchemaID uuid.UUID         `gorm:"type:uuid;not null;index:idx_issuer_cred_schema,unique,priority:2" json:"credential_schema_id"`
	CredentialSchema   *CredentialSchema `gorm:"constraint:OnDelete:CASCADE;foreignKey:CredentialSchemaID;references:ID" json:"credential_schema,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (IssuerCredentialSchema) TableName() string { return "issuer_credential_schema" }

type RelyingPartyCredentialDefinition struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	RelyingPartyID uuid.UUID     `gorm:"type:uuid;not null;index:idx_rp_cred_def,unique,priority:1" json:"relying_party_id"`
	RelyingParty   *RelyingParty `gorm:"constraint:OnDelete:CASCADE;foreignKey:RelyingPartyID;references:ID" json:"relying_party,omitempty"`

	CredentialDefinitionID uuid.UUID             `gorm:"type:uuid;not null;index:idx_rp_cred_def,unique,priority:2" json:"credential_definition_id"`
	CredentialDefinition   *CredentialDefinition `gorm:"constraint:OnDelete:CASCADE;foreignKey:CredentialDefinitionID;references:ID" json:"credential_definition,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RelyingPartyCredentialDefinition) TableName() string {
	return "relying_party_credential_definition"
}
