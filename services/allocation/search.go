// Package allocation implements the trip capacity tracker, the bus/trip
// search, and the stop transfer reconciler. Bookings count seats per trip
// (one bus record serving one route on one schedule); every mutation here
// keeps trip booking counts consistent with the non-terminated tickets
// referencing them.
package allocation

import (
	"errors"

	"bus-registration/models/busrecord"
	routeModel "bus-registration/models/route"

	"gorm.io/gorm"
)

// ErrScheduleRequired is returned when a bus search is attempted without any schedule.
var ErrScheduleRequired = errors.New("at least one schedule id is required")

// SearchBusRecords returns the bus records that can take one more booking at
// the given stop for EVERY requested schedule. A record qualifies only when
// it has a bus and, per schedule, at least one trip with a free seat whose
// route contains the stop.
func SearchBusRecords(db *gorm.DB, scheduleIDs []uint, stopID uint) ([]busrecord.BusRecord, error) {
	if len(scheduleIDs) == 0 {
		return nil, ErrScheduleRequired
	}

	// Load every record with its bus and only the trips belonging to the
	// requested schedules, plus each trip's route and that route's stops.
	var records []busrecord.BusRecord
	err := db.
		Preload("Bus").
		Preload("Trips", "schedule_id IN ?", scheduleIDs).
		Preload("Trips.Route").
		Preload("Trips.Route.Stops").
		Order("label").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return FilterBusRecords(records, scheduleIDs, stopID), nil
}

// FilterBusRecords applies the search conditions to preloaded records. Split
// out of SearchBusRecords so the matching rules are testable without a
// database.
func FilterBusRecords(records []busrecord.BusRecord, scheduleIDs []uint, stopID uint) []busrecord.BusRecord {
	filtered := make([]busrecord.BusRecord, 0, len(records))

	for _, record := range records {
		// Skip records that have no associated bus
		if record.Bus == nil {
			continue
		}
		totalCapacity := record.Bus.Capacity

		validForAll := true
		for _, scheduleID := range scheduleIDs {
			validTripFound := false

			for i := range record.Trips {
				trip := &record.Trips[i]
				if trip.ScheduleID != scheduleID {
					continue
				}
				// The trip must strictly have room for one more booking
				if trip.BookingCount > totalCapacity-1 {
					continue
				}
				if trip.Route != nil && routeContainsStop(trip.Route.Stops, stopID) {
					validTripFound = true
					break
				}
			}

			if !validTripFound {
				validForAll = false
				break
			}
		}

		if validForAll {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

func routeContainsStop(stops []routeModel.Stop, stopID uint) bool {
	for i := range stops {
		if stops[i].ID == stopID {
			return true
		}
	}
	return false
}
