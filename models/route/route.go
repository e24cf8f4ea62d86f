package route

import (
	"time"

	"bus-registration/models/organisation"
	"bus-registration/models/registration"
)

// Route represents a bus route for an organisation and registration.
type Route struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID          uint                      `gorm:"not null" json:"org_id"`
	Org            organisation.Organisation `gorm:"foreignKey:OrgID" json:"-"`
	RegistrationID uint                      `gorm:"not null" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	Name    string   `gorm:"type:varchar(200);not null" json:"name"`
	TotalKm *float64 `gorm:"type:decimal(6,2)" json:"total_km,omitempty"`

	Stops []Stop `gorm:"foreignKey:RouteID" json:"stops,omitempty"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Stop represents a pickup/drop point on a route. A stop belongs to exactly
// one route at a time; moving it between routes goes through the stop
// transfer reconciler so existing tickets stay capacity-valid.
type Stop struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID          uint                      `gorm:"not null" json:"org_id"`
	RegistrationID uint                      `gorm:"not null" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`
	RouteID        uint                      `gorm:"not null;index" json:"route_id"`
	Route          *Route                    `gorm:"foreignKey:RouteID" json:"-"`

	Name string `gorm:"type:varchar(200);not null" json:"name"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
