package catalog

import (
	"time"

	"github.com/google/uuid"
)

// User is an external identity referenced as creator/approver. Account
// lifecycle is owned elsewhere.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName string     `gorm:"column:first_name" json:"first_name,omitempty"`
	LastName  string     `gorm:"column:last_name" json:"last_name,omitempty"`
	TenantID  *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id,omitempty"`
	Tenant    *Tenant    `gorm:"constraint:OnDelete:SET NULL;foreignKey:TenantID;references:ID" json:"tenant,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
