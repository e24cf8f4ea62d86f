package allocation

import (
	"strings"
	"testing"

	"bus-registration/models/busrecord"
	routeModel "bus-registration/models/route"
	ticketModel "bus-registration/models/ticket"
)

func planFixture() (*routeModel.Stop, *routeModel.Route) {
	stop := &routeModel.Stop{ID: 5, RouteID: 100, Name: "Main Gate"}
	newRoute := &routeModel.Route{ID: 200, Name: "R2"}
	return stop, newRoute
}

func planRecord(id uint, capacity int, trips ...busrecord.Trip) *busrecord.BusRecord {
	r := makeRecord(id, capacity, trips...)
	return &r
}

func planTicket(id uint, ticketID string, pickupStop, dropStop *uint, pickupSched, dropSched *uint) ticketModel.Ticket {
	recordID := uint(1)
	t := ticketModel.Ticket{
		ID:               id,
		TicketID:         ticketID,
		PickupPointID:    pickupStop,
		DropPointID:      dropStop,
		PickupScheduleID: pickupSched,
		DropScheduleID:   dropSched,
	}
	if pickupStop != nil {
		t.PickupBusRecordID = &recordID
	}
	if dropStop != nil {
		t.DropBusRecordID = &recordID
	}
	return t
}

func uintPtr(v uint) *uint { return &v }

func TestBuildTransferPlanNoRecordsForRoute(t *testing.T) {
	stop, newRoute := planFixture()
	_, err := BuildTransferPlan(stop, newRoute, nil, nil)
	if err == nil {
		t.Fatal("expected error for route without records")
	}
	if !strings.Contains(err.Error(), `route "R2"`) {
		t.Fatalf("error should name the route, got: %v", err)
	}
}

func TestBuildTransferPlanAssignsBothLegs(t *testing.T) {
	stop, newRoute := planFixture()
	records := []*busrecord.BusRecord{
		planRecord(2, 40,
			makeTrip(2, 10, 200, 0),
			makeTrip(2, 11, 200, 0),
		),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), uintPtr(5), uintPtr(10), uintPtr(11)),
	}

	plan, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.OldRouteID != 100 || plan.NewRouteID != 200 {
		t.Fatalf("wrong route ids in plan: %+v", plan)
	}
	if len(plan.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(plan.Assignments))
	}
	a := plan.Assignments[0]
	if a.Record.ID != 2 || !a.MovePickup || !a.MoveDrop {
		t.Fatalf("unexpected assignment: %+v", a)
	}
}

func TestBuildTransferPlanSkipsUnaffectedTickets(t *testing.T) {
	stop, newRoute := planFixture()
	records := []*busrecord.BusRecord{
		planRecord(2, 40, makeTrip(2, 10, 200, 0)),
	}
	tickets := []ticketModel.Ticket{
		// Boards elsewhere: nothing to move.
		planTicket(1, "BT-1-A", uintPtr(9), nil, uintPtr(10), nil),
		// References the stop but has no schedule on that leg.
		planTicket(2, "BT-1-B", uintPtr(5), nil, nil, nil),
	}

	plan, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Assignments) != 0 {
		t.Fatalf("expected no assignments, got %d", len(plan.Assignments))
	}
}

func TestBuildTransferPlanFirstFitSpillsToNextRecord(t *testing.T) {
	stop, newRoute := planFixture()
	// Record 2 has exactly one seat left; the second ticket must land on
	// record 3 because the planner holds the first ticket's seat tentatively.
	records := []*busrecord.BusRecord{
		planRecord(2, 40, makeTrip(2, 10, 200, 39)),
		planRecord(3, 40, makeTrip(3, 10, 200, 0)),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), nil, uintPtr(10), nil),
		planTicket(2, "BT-1-B", uintPtr(5), nil, uintPtr(10), nil),
	}

	plan, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(plan.Assignments))
	}
	if plan.Assignments[0].Record.ID != 2 {
		t.Fatalf("first ticket should use record 2, got %d", plan.Assignments[0].Record.ID)
	}
	if plan.Assignments[1].Record.ID != 3 {
		t.Fatalf("second ticket should spill to record 3, got %d", plan.Assignments[1].Record.ID)
	}
}

func TestBuildTransferPlanTwoWayNeedsRoomOnBothTrips(t *testing.T) {
	stop, newRoute := planFixture()
	// Record 2 has room in the morning but none in the evening; the whole
	// ticket must land on record 3.
	records := []*busrecord.BusRecord{
		planRecord(2, 40,
			makeTrip(2, 10, 200, 0),
			makeTrip(2, 11, 200, 40),
		),
		planRecord(3, 40,
			makeTrip(3, 10, 200, 0),
			makeTrip(3, 11, 200, 0),
		),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), uintPtr(5), uintPtr(10), uintPtr(11)),
	}

	plan, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Assignments[0].Record.ID != 3 {
		t.Fatalf("expected record 3, got %d", plan.Assignments[0].Record.ID)
	}
}

func TestBuildTransferPlanErrorsWhenEveryBusIsFull(t *testing.T) {
	stop, newRoute := planFixture()
	records := []*busrecord.BusRecord{
		planRecord(2, 1, makeTrip(2, 10, 200, 1)),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), nil, uintPtr(10), nil),
	}

	_, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err == nil {
		t.Fatal("expected capacity error")
	}
	if !strings.Contains(err.Error(), "BT-1-A") || !strings.Contains(err.Error(), "full") {
		t.Fatalf("error should name the ticket and the shortage, got: %v", err)
	}
}

func TestBuildTransferPlanErrorsWhenScheduleUnserved(t *testing.T) {
	stop, newRoute := planFixture()
	// Destination records only run mornings; an evening ticket has no trip.
	records := []*busrecord.BusRecord{
		planRecord(2, 40, makeTrip(2, 10, 200, 0)),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", nil, uintPtr(5), nil, uintPtr(11)),
	}

	_, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err == nil {
		t.Fatal("expected missing-trip error")
	}
	if !strings.Contains(err.Error(), "no trips available") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildTransferPlanBothLegsOnOneScheduleNeedTwoSeats(t *testing.T) {
	stop, newRoute := planFixture()
	// Pickup and drop both board at the stop on the same schedule: the
	// ticket needs two seats on the single destination trip, so one free
	// seat must not satisfy it.
	records := []*busrecord.BusRecord{
		planRecord(2, 40, makeTrip(2, 10, 200, 39)),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), uintPtr(5), uintPtr(10), uintPtr(10)),
	}

	_, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err == nil {
		t.Fatal("expected capacity error for a two-seat ticket on a one-seat trip")
	}
	if !strings.Contains(err.Error(), "BT-1-A") {
		t.Fatalf("error should name the ticket, got: %v", err)
	}

	// With two free seats the same ticket fits.
	records = []*busrecord.BusRecord{
		planRecord(2, 40, makeTrip(2, 10, 200, 38)),
	}
	plan, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Assignments) != 1 || plan.Assignments[0].Record.ID != 2 {
		t.Fatalf("unexpected plan: %+v", plan.Assignments)
	}
}

func TestBuildTransferPlanTentativeCountsAreMultiSet(t *testing.T) {
	stop, newRoute := planFixture()
	// Capacity 3, 1 already booked: only two of the three tickets fit.
	records := []*busrecord.BusRecord{
		planRecord(2, 3, makeTrip(2, 10, 200, 1)),
	}
	tickets := []ticketModel.Ticket{
		planTicket(1, "BT-1-A", uintPtr(5), nil, uintPtr(10), nil),
		planTicket(2, "BT-1-B", uintPtr(5), nil, uintPtr(10), nil),
		planTicket(3, "BT-1-C", uintPtr(5), nil, uintPtr(10), nil),
	}

	_, err := BuildTransferPlan(stop, newRoute, tickets, records)
	if err == nil {
		t.Fatal("expected the third ticket to overflow")
	}
	if !strings.Contains(err.Error(), "BT-1-C") {
		t.Fatalf("error should name the overflowing ticket, got: %v", err)
	}
}
