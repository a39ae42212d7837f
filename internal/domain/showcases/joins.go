package showcases

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
	"github.com/openvp/showcase-backend/internal/domain/credentials"
	"github.com/openvp/showcase-backend/internal/domain/scenarios"
)

// Join rows are owned by the showcase row and replaced wholesale on every
// update; they cascade away with the showcase, never with the referenced
// root entity.

type ShowcasePersona struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ShowcaseID uuid.UUID `gorm:"type:uuid;not null;index:idx_showcase_persona,unique,priority:1" json:"showcase_id"`
	Showcase   *Showcase `gorm:"constraint:OnDelete:CASCADE;foreignKey:ShowcaseID;references:ID" json:"showcase,omitempty"`

	PersonaID uuid.UUID        `gorm:"type:uuid;not null;index:idx_showcase_persona,unique,priority:2" json:"persona_id"`
	Persona   *catalog.Persona `gorm:"constraint:OnDelete:CASCADE;foreignKey:PersonaID;references:ID" json:"persona,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ShowcasePersona) TableName() string { return "showcase_persona" }

type ShowcaseScenario struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ShowcaseID uuid.UUID `gorm:"type:uuid;not null;index:idx_showcase_scenario,unique,priority:1" json:"showcase_id"`
	Showcase   *Showcase `gorm:"constraint:OnDelete:CASCADE;foreignKey:ShowcaseID;references:ID" json:"showcase,omitempty"`

	ScenarioID uuid.UUID           `gorm:"type:uuid;not null;index:idx_showcase_scenario,unique,priority:2" json:"scenario_id"`
	Scenario   *scenarios.Scenario `gorm:"constraint:OnDelete:CASCADE;foreignKey:ScenarioID;references:ID" json:"scenario,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ShowcaseScenario) TableName() string { return "showcase_scenario" }

// ShowcaseCredentialDefinition denormalizes the credential definitions
// reachable through a showcase's scenarios, for listing without a deep walk.
type ShowcaseCredentialDefinition struct {
	ID uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`

	ShowcaseID uuid.UUID `gorm:"type:uuid;not null;index:idx_showcase_cred_def,unique,priority:1" json:"showcase_id"`
	Showcase   *Showcase `gorm:"constraint:OnDelete:CASCADE;foreignKey:ShowcaseID;references:ID" json:"showcase,omitempty"`

	CredentialDefinitionID uuid.UUID                         `gorm:"type:uuid;not null;index:idx_showcase_cred_def,unique,priority:2" json:"credential_definition_id"`
	CredentialDefinition   *credentials.CredentialDefinition `gorm:"constraint:OnDelete:CASCADE;foreignKey:CredentialDefinitionID;references:ID" json:"credential_definition,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ShowcaseCredentialDefinition) TableName() string { return "showcase_credential_definition" }
