package busrecord

import (
	"math"
	"time"

	"bus-registration/models/bus"
	"bus-registration/models/organisation"
	"bus-registration/models/registration"
	routeModel "bus-registration/models/route"
	"bus-registration/models/user"
)

// BusRecord represents the assignment of a physical bus to a registration
// period. The bus reference is nullable: removing a bus keeps the record and
// its trips, and the capacity helpers fall back to zero.
type BusRecord struct {
	ID    uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrgID uint                      `gorm:"not null" json:"org_id"`
	Org   organisation.Organisation `gorm:"foreignKey:OrgID" json:"-"`

	BusID *uint    `gorm:"uniqueIndex:idx_bus_records_bus_registration" json:"bus_id,omitempty"`
	Bus   *bus.Bus `gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"bus,omitempty"`

	RegistrationID uint                      `gorm:"not null;uniqueIndex:idx_bus_records_bus_registration" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	Label string `gorm:"type:varchar(20);not null" json:"label"`

	AssignedDriverID *uint      `json:"assigned_driver_id,omitempty"`
	AssignedDriver   *user.User `gorm:"foreignKey:AssignedDriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"assigned_driver,omitempty"`

	// Highest booking_count across this record's trips; a replacement bus
	// must seat at least this many.
	MinRequiredCapacity int `gorm:"default:0" json:"min_required_capacity"`

	Trips []Trip `gorm:"foreignKey:RecordID" json:"trips,omitempty"`

	Slug      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Capacity returns the seat capacity of the attached bus, 0 when no bus is attached.
func (r *BusRecord) Capacity() int {
	if r.Bus == nil {
		return 0
	}
	return r.Bus.Capacity
}

// Trip is what tickets book seats against: one bus record serving one route
// on one schedule within a registration. BookingCount is the live count of
// non-terminated tickets occupying the trip's seats.
type Trip struct {
	ID             uint                      `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistrationID uint                      `gorm:"not null;uniqueIndex:idx_trips_reg_record_schedule_route" json:"registration_id"`
	Registration   registration.Registration `gorm:"foreignKey:RegistrationID" json:"-"`

	RecordID uint       `gorm:"not null;uniqueIndex:idx_trips_reg_record_schedule_route" json:"record_id"`
	Record   *BusRecord `gorm:"foreignKey:RecordID" json:"record,omitempty"`

	ScheduleID uint                  `gorm:"not null;uniqueIndex:idx_trips_reg_record_schedule_route" json:"schedule_id"`
	Schedule   registration.Schedule `gorm:"foreignKey:ScheduleID" json:"schedule"`

	RouteID uint              `gorm:"not null;index;uniqueIndex:idx_trips_reg_record_schedule_route" json:"route_id"`
	Route   *routeModel.Route `gorm:"foreignKey:RouteID" json:"route,omitempty"`

	BookingCount int `gorm:"not null;default:0" json:"booking_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TotalFilledSeatsPercentage returns how full the trip is, rounded to two
// decimals. Trips whose record has no bus (or a zero-capacity bus) report 0;
// downstream listings rely on that fallback instead of an error.
func (t *Trip) TotalFilledSeatsPercentage() float64 {
	if t.Record == nil || t.Record.Bus == nil || t.Record.Bus.Capacity == 0 {
		return 0
	}
	pct := float64(t.BookingCount*100) / float64(t.Record.Bus.Capacity)
	return math.Round(pct*100) / 100
}

// TotalAvailableSeatsCount returns the remaining seats on the trip. A
// negative result means booking_count drifted past capacity; it is reported
// as-is rather than clamped so the overflow stays visible.
func (t *Trip) TotalAvailableSeatsCount() int {
	if t.Record == nil || t.Record.Bus == nil || t.Record.Bus.Capacity == 0 {
		return 0
	}
	return t.Record.Bus.Capacity - t.BookingCount
}
