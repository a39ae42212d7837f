package showcases

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
	"github.com/openvp/showcase-backend/internal/domain/credentials"
	"github.com/openvp/showcase-backend/internal/domain/scenarios"
)

const (
	StatusActive   = "ACTIVE"
	StatusPending  = "PENDING"
	StatusArchived = "ARCHIVED"
)

// Showcase is the top-level presentable bundle of personas and scenarios
// for a tenant. It must reference at least one persona and one scenario at
// all times; archiving is status=ARCHIVED, never deletion.
type Showcase struct {
	ID                uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name              string    `gorm:"column:name;not null" json:"name"`
	Slug              string    `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Description       string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Status            string    `gorm:"column:status;not null;default:'PENDING';index" json:"status"`
	Hidden            bool      `gorm:"column:hidden;not null;default:false" json:"hidden"`
	CompletionMessage *string   `gorm:"column:completion_message;type:text" json:"completion_message,omitempty"`

	BannerImageID *uuid.UUID     `gorm:"type:uuid;index" json:"banner_image_id,omitempty"`
	BannerImage   *catalog.Asset `gorm:"constraint:OnDelete:SET NULL;foreignKey:BannerImageID;references:ID" json:"banner_image,omitempty"`

	TenantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Tenant   *catalog.Tenant `gorm:"constraint:OnDelete:CASCADE;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	CreatedByID *uuid.UUID    `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	CreatedBy   *catalog.User `gorm:"constraint:OnDelete:SET NULL;foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`

	ApprovedByID *uuid.UUID    `gorm:"type:uuid;index" json:"approved_by_id,omitempty"`
	ApprovedBy   *catalog.User `gorm:"constraint:OnDelete:SET NULL;foreignKey:ApprovedByID;references:ID" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time    `gorm:"column:approved_at;index" json:"approved_at,omitempty"`

	// Stitched from the showcase join tables.
	Personas              []*catalog.Persona                  `gorm:"-" json:"personas"`
	Scenarios             []*scenarios.Scenario               `gorm:"-" json:"scenarios"`
	CredentialDefinitions []*credentials.CredentialDefinition `gorm:"-" json:"credential_definitions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Showcase) TableName() string { return "showcase" }
