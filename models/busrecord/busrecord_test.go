package busrecord

import (
	"testing"

	"bus-registration/models/bus"
)

func tripWithBus(capacity, bookingCount int) Trip {
	busID := uint(1)
	return Trip{
		Record: &BusRecord{
			BusID: &busID,
			Bus:   &bus.Bus{ID: busID, Capacity: capacity},
		},
		BookingCount: bookingCount,
	}
}

func TestTotalFilledSeatsPercentage(t *testing.T) {
	cases := []struct {
		name string
		trip Trip
		want float64
	}{
		{"empty trip", tripWithBus(40, 0), 0},
		{"half full", tripWithBus(40, 20), 50},
		{"rounded to two decimals", tripWithBus(3, 1), 33.33},
		{"full", tripWithBus(40, 40), 100},
		{"no record", Trip{BookingCount: 10}, 0},
		{"no bus", Trip{Record: &BusRecord{}, BookingCount: 10}, 0},
		{"zero capacity", tripWithBus(0, 10), 0},
	}
	for _, tc := range cases {
		if got := tc.trip.TotalFilledSeatsPercentage(); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTotalAvailableSeatsCount(t *testing.T) {
	cases := []struct {
		name string
		trip Trip
		want int
	}{
		{"empty trip", tripWithBus(40, 0), 40},
		{"partially booked", tripWithBus(40, 15), 25},
		{"overbooked stays negative", tripWithBus(40, 42), -2},
		{"no record", Trip{BookingCount: 10}, 0},
		{"no bus", Trip{Record: &BusRecord{}, BookingCount: 10}, 0},
		{"zero capacity", tripWithBus(0, 10), 0},
	}
	for _, tc := range cases {
		if got := tc.trip.TotalAvailableSeatsCount(); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRecordCapacityFallsBackToZero(t *testing.T) {
	r := &BusRecord{}
	if got := r.Capacity(); got != 0 {
		t.Fatalf("record without bus should report 0 capacity, got %d", got)
	}
	busID := uint(1)
	r = &BusRecord{BusID: &busID, Bus: &bus.Bus{ID: busID, Capacity: 52}}
	if got := r.Capacity(); got != 52 {
		t.Fatalf("got %d, want 52", got)
	}
}
