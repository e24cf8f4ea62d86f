package bus

import (
	"time"

	"bus-registration/models/organisation"
)

// Bus represents a physical bus owned by an organisation.
type Bus struct {
	ID    uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint                      `gorm:"not null" json:"org_id"`
	Org   organisation.Organisation `gorm:"foreignKey:OrgID" json:"-"`

	RegistrationNo string `gorm:"type:varchar(100);not null" json:"registration_no"`
	Capacity       int    `gorm:"not null" json:"capacity"`
	IsAvailable    bool   `gorm:"default:true" json:"is_available"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
