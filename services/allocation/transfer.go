package allocation

import (
	"fmt"

	"bus-registration/models/busrecord"
	routeModel "bus-registration/models/route"
	ticketModel "bus-registration/models/ticket"
	"bus-registration/services/ticket_event"

	"gorm.io/gorm"
)

// MoveStopAndUpdateTickets moves a stop onto another route and migrates every
// ticket boarding at that stop onto buses already serving the destination
// route. Planning runs first against an in-memory view; only a plan that
// seats every ticket is applied, inside one transaction, so a failure leaves
// stop, trips and tickets untouched.
func MoveStopAndUpdateTickets(db *gorm.DB, stopID, newRouteID uint, updatedBy string) (*TransferPlan, error) {
	var stop routeModel.Stop
	if err := db.First(&stop, stopID).Error; err != nil {
		return nil, fmt.Errorf("stop lookup failed: %w", err)
	}
	var newRoute routeModel.Route
	if err := db.First(&newRoute, newRouteID).Error; err != nil {
		return nil, fmt.Errorf("route lookup failed: %w", err)
	}
	if stop.RouteID == newRoute.ID {
		return nil, fmt.Errorf("stop %q is already on route %q", stop.Name, newRoute.Name)
	}

	var tickets []ticketModel.Ticket
	err := db.Where("(pickup_point_id = ? OR drop_point_id = ?) AND is_terminated = false", stopID, stopID).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	var records []*busrecord.BusRecord
	err = db.Preload("Bus").Preload("Trips").
		Where("id IN (?)", db.Model(&busrecord.Trip{}).Select("record_id").Where("route_id = ?", newRouteID)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	plan, err := BuildTransferPlan(&stop, &newRoute, tickets, records)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return ApplyTransferPlan(tx, plan, updatedBy)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ApplyTransferPlan commits a transfer plan: for each assignment it releases
// the old seats, claims the new ones, rewrites the ticket's moved legs, and
// snapshots an event; finally it moves the stop itself. Old-trip decrements
// tolerate missing trips and floor at zero, but a missing destination trip
// aborts the transaction since the plan promised that seat.
func ApplyTransferPlan(tx *gorm.DB, plan *TransferPlan, updatedBy string) error {
	for _, a := range plan.Assignments {
		t := a.Ticket
		updates := map[string]interface{}{}

		if a.MovePickup {
			if t.PickupBusRecordID != nil {
				if err := DecrementBooking(tx, *t.PickupBusRecordID, *t.PickupScheduleID, plan.OldRouteID); err != nil {
					return err
				}
			}
			if err := claimSeat(tx, a.Record.ID, *t.PickupScheduleID, plan.NewRouteID); err != nil {
				return err
			}
			updates["pickup_bus_record_id"] = a.Record.ID
			t.PickupBusRecordID = &a.Record.ID
		}
		if a.MoveDrop {
			if t.DropBusRecordID != nil {
				if err := DecrementBooking(tx, *t.DropBusRecordID, *t.DropScheduleID, plan.OldRouteID); err != nil {
					return err
				}
			}
			if err := claimSeat(tx, a.Record.ID, *t.DropScheduleID, plan.NewRouteID); err != nil {
				return err
			}
			updates["drop_bus_record_id"] = a.Record.ID
			t.DropBusRecordID = &a.Record.ID
		}

		if err := tx.Model(&ticketModel.Ticket{}).Where("id = ?", t.ID).Updates(updates).Error; err != nil {
			return err
		}
		if err := ticket_event.SnapshotTicketToEvent(tx, t, ticketModel.EventTicketTransferred, updatedBy); err != nil {
			return err
		}
	}

	return tx.Model(&routeModel.Stop{}).Where("id = ?", plan.StopID).
		Update("route_id", plan.NewRouteID).Error
}
