package scenarios

import (
	"time"

	"github.com/google/uuid"
	"github.com/openvp/showcase-backend/internal/domain/catalog"
)

const (
	StepTypeHumanTask = "HUMAN_TASK"
	StepTypeService   = "SERVICE"
)

// Step is one screen of a scenario. StepOrder defines display sequence;
// uniqueness within a scenario is the caller's responsibility.
type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ScenarioID  uuid.UUID `gorm:"type:uuid;not null;index" json:"scenario_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	StepOrder   int       `gorm:"column:step_order;not null;default:0" json:"step_order"`
	Type        string    `gorm:"column:step_type;not null" json:"type"`

	AssetID *uuid.UUID     `gorm:"type:uuid;index" json:"asset_id,omitempty"`
	Asset   *catalog.Asset `gorm:"constraint:OnDelete:SET NULL;foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	// Stitched: actions ordered by action_order.
	Actions []*StepAction `gorm:"-" json:"actions"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Step) TableName() string { return "step" }
