package ticket

import (
	"time"
)

// Ticket event types
const (
	EventTicketBooked      = "booked"
	EventTicketTerminated  = "terminated"
	EventTicketTransferred = "stop_transferred"
)

// TicketEvent records a snapshot of a ticket's seat assignments every time
// the booking engine touches it (booking, termination, stop transfer).
// Events are many per ticket; nothing here is unique.
type TicketEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	TicketRowID uint   `gorm:"not null;index" json:"ticket_row_id"`
	Ticket      Ticket `gorm:"foreignKey:TicketRowID" json:"-"`

	TicketID  string `gorm:"type:varchar(300);not null;index" json:"ticket_id"`
	EventType string `gorm:"type:varchar(50);not null;index" json:"event_type"`

	PickupBusRecordID *uint `json:"pickup_bus_record_id,omitempty"`
	DropBusRecordID   *uint `json:"drop_bus_record_id,omitempty"`
	PickupPointID     *uint `json:"pickup_point_id,omitempty"`
	DropPointID       *uint `json:"drop_point_id,omitempty"`
	PickupScheduleID  *uint `json:"pickup_schedule_id,omitempty"`
	DropScheduleID    *uint `json:"drop_schedule_id,omitempty"`

	IsTerminated bool `gorm:"default:false" json:"is_terminated"`

	CreatedBy string    `gorm:"type:varchar(255)" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the TicketEvent model
func (TicketEvent) TableName() string {
	return "ticket_events"
}
