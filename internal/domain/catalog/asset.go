package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a reference to an externally stored media file. Binary content
// lives in the asset storage service, never in this table.
type Asset struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MediaType   string    `gorm:"column:media_type;not null" json:"media_type"`
	FileName    string    `gorm:"column:file_name" json:"file_name,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	StorageKey  string    `gorm:"column:storage_key;not null;index" json:"storage_key"`
	URL         string    `gorm:"column:url" json:"url,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Asset) TableName() string { return "asset" }
