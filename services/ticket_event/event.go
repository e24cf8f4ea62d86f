package ticket_event

import (
	ticketModel "bus-registration/models/ticket"

	"gorm.io/gorm"
)

// SnapshotTicketToEvent writes a snapshot of a Ticket's current seat
// assignments into TicketEvent with the given event type. The caller passes
// the ticket as it stands after the change; no re-fetch happens here, so it
// can run mid-transaction on rows updated but not yet committed.
func SnapshotTicketToEvent(tx *gorm.DB, t *ticketModel.Ticket, eventType string, createdBy string) error {
	ev := ticketModel.TicketEvent{
		TicketRowID: t.ID,
		TicketID:    t.TicketID,
		EventType:   eventType,

		PickupBusRecordID: t.PickupBusRecordID,
		DropBusRecordID:   t.DropBusRecordID,
		PickupPointID:     t.PickupPointID,
		DropPointID:       t.DropPointID,
		PickupScheduleID:  t.PickupScheduleID,
		DropScheduleID:    t.DropScheduleID,

		IsTerminated: t.IsTerminated,
		CreatedBy:    createdBy,
	}

	return tx.Create(&ev).Error
}
