package allocation

import (
	"testing"

	"bus-registration/models/bus"
	"bus-registration/models/busrecord"
	routeModel "bus-registration/models/route"
)

func makeRecord(id uint, capacity int, trips ...busrecord.Trip) busrecord.BusRecord {
	busID := id
	return busrecord.BusRecord{
		ID:    id,
		BusID: &busID,
		Bus:   &bus.Bus{ID: busID, Capacity: capacity},
		Trips: trips,
	}
}

func makeTrip(recordID, scheduleID, routeID uint, bookingCount int, stopIDs ...uint) busrecord.Trip {
	route := &routeModel.Route{ID: routeID}
	for _, stopID := range stopIDs {
		route.Stops = append(route.Stops, routeModel.Stop{ID: stopID, RouteID: routeID})
	}
	return busrecord.Trip{
		RecordID:     recordID,
		ScheduleID:   scheduleID,
		RouteID:      routeID,
		Route:        route,
		BookingCount: bookingCount,
	}
}

func TestFilterBusRecordsSkipsRecordsWithoutBus(t *testing.T) {
	records := []busrecord.BusRecord{
		{ID: 1, Trips: []busrecord.Trip{makeTrip(1, 10, 100, 0, 5)}},
	}
	got := FilterBusRecords(records, []uint{10}, 5)
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestFilterBusRecordsSkipsFullTrips(t *testing.T) {
	records := []busrecord.BusRecord{
		makeRecord(1, 40, makeTrip(1, 10, 100, 40, 5)),
		makeRecord(2, 40, makeTrip(2, 10, 100, 39, 5)),
	}
	got := FilterBusRecords(records, []uint{10}, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ID != 2 {
		t.Fatalf("expected record 2, got %d", got[0].ID)
	}
}

func TestFilterBusRecordsRequiresEverySchedule(t *testing.T) {
	// Record 1 serves both schedules at the stop, record 2 only the morning.
	records := []busrecord.BusRecord{
		makeRecord(1, 40,
			makeTrip(1, 10, 100, 0, 5),
			makeTrip(1, 11, 100, 0, 5),
		),
		makeRecord(2, 40, makeTrip(2, 10, 100, 0, 5)),
	}
	got := FilterBusRecords(records, []uint{10, 11}, 5)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only record 1, got %+v", got)
	}
}

func TestFilterBusRecordsRequiresStopOnRoute(t *testing.T) {
	records := []busrecord.BusRecord{
		makeRecord(1, 40, makeTrip(1, 10, 100, 0, 7, 8)),
		makeRecord(2, 40, makeTrip(2, 10, 200, 0, 5, 6)),
	}
	got := FilterBusRecords(records, []uint{10}, 5)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only record 2, got %+v", got)
	}
}

func TestFilterBusRecordsDifferentTripsMaySatisfyDifferentSchedules(t *testing.T) {
	// Morning served by a trip on route 100, evening by a trip on route 200;
	// both routes pass the stop, so the record qualifies.
	records := []busrecord.BusRecord{
		makeRecord(1, 40,
			makeTrip(1, 10, 100, 0, 5),
			makeTrip(1, 11, 200, 0, 5),
		),
	}
	got := FilterBusRecords(records, []uint{10, 11}, 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

func TestSearchBusRecordsRejectsEmptySchedules(t *testing.T) {
	_, err := SearchBusRecords(nil, nil, 5)
	if err != ErrScheduleRequired {
		t.Fatalf("expected ErrScheduleRequired, got %v", err)
	}
}
