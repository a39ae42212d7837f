package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Persona is a demo character a user role-plays through a scenario.
type Persona struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Role        string    `gorm:"column:role;not null" json:"role"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Slug        string    `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Hidden      bool      `gorm:"column:hidden;not null;default:false" json:"hidden"`

	HeadshotImageID *uuid.UUID `gorm:"type:uuid;index" json:"headshot_image_id,omitempty"`
	HeadshotImage   *Asset     `gorm:"constraint:OnDelete:SET NULL;foreignKey:HeadshotImageID;references:ID" json:"headshot_image,omitempty"`
	BodyImageID     *uuid.UUID `gorm:"type:uuid;index" json:"body_image_id,omitempty"`
	BodyImage       *Asset     `gorm:"constraint:OnDelete:SET NULL;foreignKey:BodyImageID;references:ID" json:"body_image,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Persona) TableName() string { return "persona" }
