package credentials

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
)

const (
	CredentialTypeAnoncred = "ANONCRED"
)

// CredentialDefinition binds a schema to an issuable credential type.
// Approval is a one-way transition: approved_by/approved_at are null until
// an approver signs off and never revert.
type CredentialDefinition struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Version        string    `gorm:"column:version;not null" json:"version"`
	IdentifierType string    `gorm:"column:identifier_type" json:"identifier_type,omitempty"`
	Identifier     string    `gorm:"column:identifier;index" json:"identifier,omitempty"`
	Type           string    `gorm:"column:credential_type;not null" json:"type"`

	IconID *uuid.UUID     `gorm:"type:uuid;index" json:"icon_id,omitempty"`
	Icon   *catalog.Asset `gorm:"constraint:OnDelete:SET NULL;foreignKey:IconID;references:ID" json:"icon,omitempty"`

	CredentialSchemaID uuid.UUID         `gorm:"type:uuid;not null;index" json:"credential_schema_id"`
	CredentialSchema   *CredentialSchema `gorm:"constraint:OnDelete:CASCADE;foreignKey:CredentialSchemaID;references:ID" json:"credential_schema,omitempty"`

	ApprovedByID *uuid.UUID    `gorm:"type:uuid;index" json:"approved_by_id,omitempty"`
	ApprovedBy   *catalog.User `gorm:"constraint:OnDelete:SET NULL;foreignKey:ApprovedByID;references:ID" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time    `gorm:"column:approved_at;index" json:"approved_at,omitempty"`

	// Stitched from credential_revocation; nil when revocation is not set up.
	Revocation *CredentialRevocation `gorm:"-" json:"revocation,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CredentialDefinition) TableName() string { return "credential_definition" }

// CredentialRevocation is an owned child record describing how a credential
// issued off this definition can be revoked.
type CredentialRevocation struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CredentialDefinitionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"credential_definition_id"`
	Title                  string    `gorm:"column:title;not null" json:"title"`
	Description            string    `gorm:"column:description;type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CredentialRevocation) TableName() string { return "credential_revocation" }
