package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the ownership anchor for showcases. Rows are managed by the
// account system; this core only references them.
type Tenant struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Tenant) TableName() string { return "tenant" }
