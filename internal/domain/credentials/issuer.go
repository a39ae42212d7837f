package credentials

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
)

// Issuer is the entity issuing credentials in an issuance scenario.
type Issuer struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Description  string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Organization string    `gorm:"column:organization" json:"organization,omitempty"`

	LogoID *uuid.UUID     `gorm:"type:uuid;index" json:"logo_id,omitempty"`
	Logo   *catalog.Asset `gorm:"constraint:OnDelete:SET NULL;foreignKey:LogoID;references:ID" json:"logo,omitempty"`

	// Stitched from the issuer join tables.
	CredentialDefinitions []*CredentialDefinition `gorm:"-" json:"credential_definitions"`
	CredentialSchemas     []*CredentialSchema     `gorm:"-" json:"credential_schemas"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Issuer) TableName() string { return "issuer" }

// RelyingParty is the entity requesting proofs in a presentation scenario.
type RelyingParty struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Description  string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Organization string    `gorm:"column:organization" json:"organization,omitempty"`

	LogoID *uuid.UUID     `gorm:"type:uuid;index" json:"logo_id,omitempty"`
	Logo   *catalog.Asset `gorm:"constraint:OnDelete:SET NULL;foreignKey:LogoID;references:ID" json:"logo,omitempty"`

	CredentialDefinitions []*CredentialDefinition `gorm:"-" json:"credential_definitions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RelyingParty) TableName() string { return "relying_party" }
