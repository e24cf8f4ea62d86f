package organisation

import (
	"time"
)

// Organisation represents a bus operator organisation (a school group or company).
type Organisation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null;index" json:"name"`
	ContactNo *string   `gorm:"type:varchar(12);index" json:"contact_no,omitempty"`
	Email     *string   `gorm:"type:varchar(255);unique;index" json:"email,omitempty"`
	Area      string    `gorm:"type:varchar(200)" json:"area"`
	City      string    `gorm:"type:varchar(200)" json:"city"`
	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Institution represents an institution (school/college) served by an organisation.
type Institution struct {
	ID    uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint         `gorm:"not null" json:"org_id"`
	Org   Organisation `gorm:"foreignKey:OrgID" json:"org"`

	Name      string `gorm:"type:varchar(200);not null;index" json:"name"`
	Label     string `gorm:"type:varchar(50);unique;not null" json:"label"`
	ContactNo string `gorm:"type:varchar(12);index" json:"contact_no"`
	Email     string `gorm:"type:varchar(255);unique;index" json:"email"`

	// User in charge of the institution, cleared when the user is removed.
	InchargeID *uint `gorm:"unique" json:"incharge_id,omitempty"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
