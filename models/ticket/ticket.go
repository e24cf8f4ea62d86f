package ticket

import (
	"time"

	"bus-registration/models/busrecord"
	"bus-registration/models/organisation"
	"bus-registration/models/registration"
	routeModel "bus-registration/models/route"
)

// TicketType values
const (
	TicketTypeOneWay = "one_way"
	TicketTypeTwoWay = "two_way"
)

// Ticket represents a student's seat booking for a registration period.
// Either leg (pickup/drop) may be absent for one-way tickets; each present
// leg occupies one seat on the matching trip of its bus record.
type Ticket struct {
	ID    uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint                      `gorm:"not null" json:"org_id"`
	Org   organisation.Organisation `gorm:"foreignKey:OrgID" json:"-"`

	RegistrationID uint                      `gorm:"not null;index" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	InstitutionID uint                     `gorm:"not null;index" json:"institution_id"`
	Institution   organisation.Institution `gorm:"foreignKey:InstitutionID" json:"-"`

	StudentGroupID uint          `gorm:"not null" json:"student_group_id"`
	StudentGroup   StudentGroup  `gorm:"foreignKey:StudentGroupID" json:"-"`
	ReceiptID      uint          `gorm:"not null;unique" json:"receipt_id"`
	Receipt        Receipt       `gorm:"foreignKey:ReceiptID" json:"-"`

	TicketID     string `gorm:"type:varchar(300);not null;unique" json:"ticket_id"`
	StudentID    string `gorm:"type:varchar(100);not null" json:"student_id"`
	StudentName  string `gorm:"type:varchar(200);not null" json:"student_name"`
	StudentEmail string `gorm:"type:varchar(255);not null" json:"student_email"`
	ContactNo    string `gorm:"type:varchar(12)" json:"contact_no"`
	AltContactNo string `gorm:"type:varchar(12)" json:"alternative_contact_no"`

	PickupBusRecordID *uint                `gorm:"index" json:"pickup_bus_record_id,omitempty"`
	PickupBusRecord   *busrecord.BusRecord `gorm:"foreignKey:PickupBusRecordID" json:"pickup_bus_record,omitempty"`
	DropBusRecordID   *uint                `gorm:"index" json:"drop_bus_record_id,omitempty"`
	DropBusRecord     *busrecord.BusRecord `gorm:"foreignKey:DropBusRecordID" json:"drop_bus_record,omitempty"`

	PickupPointID *uint            `gorm:"index" json:"pickup_point_id,omitempty"`
	PickupPoint   *routeModel.Stop `gorm:"foreignKey:PickupPointID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"pickup_point,omitempty"`
	DropPointID   *uint            `gorm:"index" json:"drop_point_id,omitempty"`
	DropPoint     *routeModel.Stop `gorm:"foreignKey:DropPointID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"drop_point,omitempty"`

	PickupScheduleID *uint                  `json:"pickup_schedule_id,omitempty"`
	PickupSchedule   *registration.Schedule `gorm:"foreignKey:PickupScheduleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"pickup_schedule,omitempty"`
	DropScheduleID   *uint                  `json:"drop_schedule_id,omitempty"`
	DropSchedule     *registration.Schedule `gorm:"foreignKey:DropScheduleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"drop_schedule,omitempty"`

	TicketType string `gorm:"type:varchar(20);not null;default:'two_way'" json:"ticket_type"`
	Status     bool   `gorm:"default:false;index" json:"status"`

	IsTerminated bool       `gorm:"default:false;index" json:"is_terminated"`
	TerminatedAt *time.Time `json:"terminated_at,omitempty"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ReferencesStop reports whether the given stop is this ticket's pickup
// and/or drop point.
func (t *Ticket) ReferencesStop(stopID uint) (pickup, drop bool) {
	pickup = t.PickupPointID != nil && *t.PickupPointID == stopID
	drop = t.DropPointID != nil && *t.DropPointID == stopID
	return pickup, drop
}

// StudentGroup represents a group/class of students within an institution.
type StudentGroup struct {
	ID            uint                     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID         uint                     `gorm:"not null" json:"org_id"`
	InstitutionID uint                     `gorm:"not null;index" json:"institution_id"`
	Institution   organisation.Institution `gorm:"foreignKey:InstitutionID" json:"-"`

	Name string `gorm:"type:varchar(20);not null" json:"name"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Receipt represents a fee receipt that entitles one student to book one ticket.
type Receipt struct {
	ID            uint                     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID         uint                     `gorm:"not null" json:"org_id"`
	InstitutionID uint                     `gorm:"not null" json:"institution_id"`
	Institution   organisation.Institution `gorm:"foreignKey:InstitutionID" json:"-"`

	RegistrationID uint                      `gorm:"not null;uniqueIndex:idx_receipts_reg_receipt_student" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	ReceiptID string `gorm:"type:varchar(500);not null;uniqueIndex:idx_receipts_reg_receipt_student" json:"receipt_id"`
	StudentID string `gorm:"type:varchar(20);not null;uniqueIndex:idx_receipts_reg_receipt_student" json:"student_id"` // stored upper-case

	StudentGroupID uint         `gorm:"not null" json:"student_group_id"`
	StudentGroup   StudentGroup `gorm:"foreignKey:StudentGroupID" json:"-"`

	IsExpired bool `gorm:"default:false;index" json:"is_expired"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
