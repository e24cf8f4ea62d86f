package allocation

import (
	"fmt"
	"time"

	routeModel "bus-registration/models/route"
	ticketModel "bus-registration/models/ticket"
	"bus-registration/services/ticket_event"
	"bus-registration/utils"

	"gorm.io/gorm"
)

// BookTicket persists a prepared ticket and claims its seats. The caller
// fills the leg fields (record, point, schedule per leg); this assigns the
// ticket code and slug, creates the row, bumps each leg's trip and snapshots
// a booked event, all in one transaction. Seat counts are not enforced here;
// capacity gating happens upstream in the record search.
func BookTicket(db *gorm.DB, t *ticketModel.Ticket, createdBy string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueCode(tx, &ticketModel.Ticket{}, "ticket_id", 10)
		if err != nil {
			return err
		}
		t.TicketID = fmt.Sprintf("BT-%d-%s", t.RegistrationID, code)
		t.Slug = utils.GenerateUniqueSlug(tx, &ticketModel.Ticket{}, t.TicketID)

		if err := tx.Create(t).Error; err != nil {
			return err
		}

		if t.PickupBusRecordID != nil && t.PickupScheduleID != nil && t.PickupPointID != nil {
			routeID, err := stopRouteID(tx, *t.PickupPointID)
			if err != nil {
				return err
			}
			if err := claimSeat(tx, *t.PickupBusRecordID, *t.PickupScheduleID, routeID); err != nil {
				return err
			}
		}
		if t.DropBusRecordID != nil && t.DropScheduleID != nil && t.DropPointID != nil {
			routeID, err := stopRouteID(tx, *t.DropPointID)
			if err != nil {
				return err
			}
			if err := claimSeat(tx, *t.DropBusRecordID, *t.DropScheduleID, routeID); err != nil {
				return err
			}
		}
		if err := refreshLegRecords(tx, t); err != nil {
			return err
		}

		return ticket_event.SnapshotTicketToEvent(tx, t, ticketModel.EventTicketBooked, createdBy)
	})
}

// refreshLegRecords recomputes min_required_capacity for the records a
// ticket's legs point at, after their booking counts changed.
func refreshLegRecords(tx *gorm.DB, t *ticketModel.Ticket) error {
	if t.PickupBusRecordID != nil {
		if err := RefreshMinRequiredCapacity(tx, *t.PickupBusRecordID); err != nil {
			return err
		}
	}
	if t.DropBusRecordID != nil && (t.PickupBusRecordID == nil || *t.DropBusRecordID != *t.PickupBusRecordID) {
		if err := RefreshMinRequiredCapacity(tx, *t.DropBusRecordID); err != nil {
			return err
		}
	}
	return nil
}

// TerminateTicket releases a ticket's seats and flags it terminated.
// Terminating an already-terminated ticket is a no-op that touches nothing.
// Seat releases floor at zero and tolerate trips that no longer exist, so a
// ticket whose bus record was dismantled still terminates cleanly.
func TerminateTicket(db *gorm.DB, t *ticketModel.Ticket, updatedBy string) error {
	if t.IsTerminated {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if t.PickupBusRecordID != nil && t.PickupScheduleID != nil && t.PickupPointID != nil {
			routeID, err := stopRouteID(tx, *t.PickupPointID)
			if err != nil {
				return err
			}
			if err := DecrementBooking(tx, *t.PickupBusRecordID, *t.PickupScheduleID, routeID); err != nil {
				return err
			}
		}
		if t.DropBusRecordID != nil && t.DropScheduleID != nil && t.DropPointID != nil {
			routeID, err := stopRouteID(tx, *t.DropPointID)
			if err != nil {
				return err
			}
			if err := DecrementBooking(tx, *t.DropBusRecordID, *t.DropScheduleID, routeID); err != nil {
				return err
			}
		}
		if err := refreshLegRecords(tx, t); err != nil {
			return err
		}

		now := time.Now()
		t.IsTerminated = true
		t.TerminatedAt = &now
		err := tx.Model(&ticketModel.Ticket{}).Where("id = ?", t.ID).
			Updates(map[string]interface{}{"is_terminated": true, "terminated_at": now}).Error
		if err != nil {
			return err
		}

		return ticket_event.SnapshotTicketToEvent(tx, t, ticketModel.EventTicketTerminated, updatedBy)
	})
}

// stopRouteID resolves the route a stop currently belongs to. Trips are keyed
// by route, so seat claims and releases follow the stop's present route.
func stopRouteID(tx *gorm.DB, stopID uint) (uint, error) {
	var stop routeModel.Stop
	if err := tx.Select("id", "route_id").First(&stop, stopID).Error; err != nil {
		return 0, err
	}
	return stop.RouteID, nil
}
