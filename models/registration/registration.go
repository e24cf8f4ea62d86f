package registration

import (
	"time"

	"bus-registration/models/organisation"

	"gorm.io/gorm"
)

// Registration represents a time-boxed enrollment/booking cycle for an organisation.
type Registration struct {
	ID    uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint                      `gorm:"not null" json:"org_id"`
	Org   organisation.Organisation `gorm:"foreignKey:OrgID" json:"org"`

	Name         string `gorm:"type:varchar(200);not null" json:"name"`
	Instructions string `gorm:"type:text" json:"instructions"`
	Status       bool   `gorm:"default:false" json:"status"`
	Code         string `gorm:"type:varchar(100);unique" json:"code"`
	IsActive     bool   `gorm:"default:false" json:"is_active"` // only one active registration per org

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Activate marks the registration active and deactivates every other
// registration of the same organisation.
func (r *Registration) Activate(tx *gorm.DB) error {
	if err := tx.Model(&Registration{}).
		Where("org_id = ? AND is_active = ? AND id <> ?", r.OrgID, true, r.ID).
		Update("is_active", false).Error; err != nil {
		return err
	}
	r.IsActive = true
	return tx.Model(r).Update("is_active", true).Error
}

// Schedule represents a named time window (e.g. "Morning", "Evening") within a registration.
type Schedule struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID          uint         `gorm:"not null" json:"org_id"`
	RegistrationID uint         `gorm:"not null" json:"registration_id"`
	Registration   Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ScheduleGroup pairs a pickup and a drop schedule that students book against together.
type ScheduleGroup struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationID uint         `gorm:"not null" json:"registration_id"`
	Registration   Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	PickupScheduleID uint     `gorm:"not null" json:"pickup_schedule_id"`
	PickupSchedule   Schedule `gorm:"foreignKey:PickupScheduleID" json:"pickup_schedule"`
	DropScheduleID   uint     `gorm:"not null" json:"drop_schedule_id"`
	DropSchedule     Schedule `gorm:"foreignKey:DropScheduleID" json:"drop_schedule"`

	AllowOneWay bool   `gorm:"default:false" json:"allow_one_way"`
	Description string `gorm:"type:varchar(500)" json:"description"`
}
