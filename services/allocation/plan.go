package allocation

import (
	"fmt"

	"bus-registration/models/busrecord"
	routeModel "bus-registration/models/route"
	ticketModel "bus-registration/models/ticket"
)

// tripKey identifies one trip's seat pool while planning: a record serving a
// schedule. The route is fixed per plan (the target route) so it is not part
// of the key.
type tripKey struct {
	recordID   uint
	scheduleID uint
}

// Assignment records where one ticket's moved legs will land on the target
// route. MovePickup/MoveDrop tell the apply phase which legs to rewrite.
type Assignment struct {
	Ticket     *ticketModel.Ticket
	Record     *busrecord.BusRecord
	MovePickup bool
	MoveDrop   bool
}

// TransferPlan is the reviewed outcome of planning a stop move: every
// affected ticket paired with a destination record that can seat it. The
// plan touches no database state; ApplyTransferPlan commits it atomically.
type TransferPlan struct {
	StopID     uint
	OldRouteID uint
	NewRouteID uint

	Assignments []Assignment
}

// BuildTransferPlan works out, without touching the database, how the
// tickets boarding at stop would be redistributed across the bus records
// already serving newRoute. Seats claimed for earlier tickets are held in
// tentative counters so one plan never double-books a seat. Records are
// tried in the order given; the first with room on every needed trip wins.
//
// It returns an error when no record serves the new route, when a candidate
// record lacks a trip for a ticket's schedule, or when every candidate is
// full for some ticket.
func BuildTransferPlan(stop *routeModel.Stop, newRoute *routeModel.Route, tickets []ticketModel.Ticket, records []*busrecord.BusRecord) (*TransferPlan, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no bus records found for route %q", newRoute.Name)
	}

	plan := &TransferPlan{
		StopID:     stop.ID,
		OldRouteID: stop.RouteID,
		NewRouteID: newRoute.ID,
	}
	tentative := make(map[tripKey]int)

	for i := range tickets {
		t := &tickets[i]
		movePickup, moveDrop := t.ReferencesStop(stop.ID)
		movePickup = movePickup && t.PickupScheduleID != nil
		moveDrop = moveDrop && t.DropScheduleID != nil
		if !movePickup && !moveDrop {
			continue
		}

		var schedules []uint
		if movePickup {
			schedules = append(schedules, *t.PickupScheduleID)
		}
		if moveDrop {
			schedules = append(schedules, *t.DropScheduleID)
		}

		record, err := pickRecord(records, newRoute.ID, schedules, tentative)
		if err != nil {
			return nil, fmt.Errorf("ticket %s: %w", t.TicketID, err)
		}
		for _, scheduleID := range schedules {
			tentative[tripKey{recordID: record.ID, scheduleID: scheduleID}]++
		}
		plan.Assignments = append(plan.Assignments, Assignment{
			Ticket:     t,
			Record:     record,
			MovePickup: movePickup,
			MoveDrop:   moveDrop,
		})
	}

	return plan, nil
}

// pickRecord returns the first record with a free seat on the new route's
// trip for every required schedule, counting seats already promised to
// earlier tickets in the same plan. A ticket whose legs share a schedule
// needs that many seats on the one trip, so demand is counted per schedule
// rather than per leg.
func pickRecord(records []*busrecord.BusRecord, routeID uint, schedules []uint, tentative map[tripKey]int) (*busrecord.BusRecord, error) {
	need := make(map[uint]int, len(schedules))
	for _, scheduleID := range schedules {
		need[scheduleID]++
	}

	sawTrips := false
	for _, record := range records {
		trips := tripsForSchedules(record, routeID, schedules)
		if trips == nil {
			continue
		}
		sawTrips = true

		capacity := record.Capacity()
		fits := true
		checked := make(map[uint]bool, len(trips))
		for _, trip := range trips {
			if checked[trip.ScheduleID] {
				continue
			}
			checked[trip.ScheduleID] = true
			held := tentative[tripKey{recordID: record.ID, scheduleID: trip.ScheduleID}]
			if trip.BookingCount+held+need[trip.ScheduleID] > capacity {
				fits = false
				break
			}
		}
		if fits {
			return record, nil
		}
	}
	if !sawTrips {
		return nil, fmt.Errorf("no trips available on the destination route for the ticket's schedules")
	}
	return nil, fmt.Errorf("all buses on the destination route are full")
}

// tripsForSchedules collects the record's trips on routeID covering every
// schedule in schedules, or nil when any schedule is unserved.
func tripsForSchedules(record *busrecord.BusRecord, routeID uint, schedules []uint) []*busrecord.Trip {
	trips := make([]*busrecord.Trip, 0, len(schedules))
	for _, scheduleID := range schedules {
		var found *busrecord.Trip
		for i := range record.Trips {
			trip := &record.Trips[i]
			if trip.RouteID == routeID && trip.ScheduleID == scheduleID {
				found = trip
				break
			}
		}
		if found == nil {
			return nil
		}
		trips = append(trips, found)
	}
	return trips
}
