package scenarios

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
	"github.com/openvp/showcase-backend/internal/domain/credentials"
)

const (
	ScenarioTypeIssuance     = "ISSUANCE"
	ScenarioTypePresentation = "PRESENTATION"
)

// Scenario is an issuance or presentation flow composed of ordered steps.
// Exactly one of IssuerID/RelyingPartyID is set, matching ScenarioType.
type Scenario struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Slug         string    `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Description  string    `gorm:"column:description;type:text" json:"description,omitempty"`
	ScenarioType string    `gorm:"column:scenario_type;not null;index" json:"scenario_type"`
	Hidden       bool      `gorm:"column:hidden;not null;default:false" json:"hidden"`

	IssuerID *uuid.UUID          `gorm:"type:uuid;index" json:"issuer_id,omitempty"`
	Issuer   *credentials.Issuer `gorm:"constraint:OnDelete:SET NULL;foreignKey:IssuerID;references:ID" json:"issuer,omitempty"`

	RelyingPartyID *uuid.UUID                `gorm:"type:uuid;index" json:"relying_party_id,omitempty"`
	RelyingParty   *credentials.RelyingParty `gorm:"constraint:OnDelete:SET NULL;foreignKey:RelyingPartyID;references:ID" json:"relying_party,omitempty"`

	// Stitched: steps ordered by step_order, personas from the join table.
	Steps    []*Step            `gorm:"-" json:"steps"`
	Personas []*catalog.Persona `gorm:"-" json:"personas"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Scenario) TableName() string { return "scenario" }

// ScenarioPersona links a scenario to the personas acting in it. Owned by
// the scenario row and replaced wholesale on update.
type ScenarioPersona struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ScenarioID uuid.UUID `gorm:"type:uuid;not null;index:idx_scenario_persona,unique,priority:1" json:"scenario_id"`
	Scenario   *Scenario `gorm:"constraint:OnDelete:CASCADE;foreignKey:ScenarioID;references:ID" json:"scenario,omitempty"`

	PersonaID uuid.UUID        `gorm:"type:uuid;not null;index:idx_scenario_persona,unique,priority:2" json:"persona_id"`
	Persona   *catalog.Persona `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonaID;references:ID" json:"persona,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ScenarioPersona) TableName() string { return "scenario_persona" }
