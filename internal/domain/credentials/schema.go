package credentials

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdentifierTypeDID = "DID"

	AttributeTypeString  = "STRING"
	AttributeTypeInteger = "INTEGER"
	AttributeTypeFloat   = "FLOAT"
	AttributeTypeBoolean = "BOOLEAN"
	AttributeTypeDate    = "DATE"
)

// CredentialSchema is the attribute shape of an issuable credential.
type CredentialSchema struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Version        string    `gorm:"column:version;not null" json:"version"`
	IdentifierType string    `gorm:"column:identifier_type" json:"identifier_type,omitempty"`
	Identifier     string    `gorm:"column:identifier;index" json:"identifier,omitempty"`

	// Stitched from credential_attribute; replaced wholesale on update.
	Attributes []*CredentialAttribute `gorm:"-" json:"attributes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CredentialSchema) TableName() string { return "credential_schema" }

// CredentialAttribute has no lifecycle of its own; rows exist only as part
// of their schema.
type CredentialAttribute struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CredentialSchemaID uuid.UUID `gorm:"type:uuid;not null;index" json:"credential_schema_id"`
	Name               string    `gorm:"column:name;not null" json:"name"`
	Value              string    `gorm:"column:value" json:"value,omitempty"`
	Type               string    `gorm:"column:attribute_type;not null" json:"type"`
	AttributeOrder     int       `gorm:"column:attribute_order;not null;default:0" json:"attribute_order"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CredentialAttribute) TableName() string { return "credential_attribute" }
