package allocation

import (
	"errors"
	"fmt"

	"bus-registration/models/busrecord"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockTrip loads the trip for (record, schedule, route) with a row lock so
// concurrent bookings against the same trip serialize instead of losing
// updates. Must run inside a transaction.
func lockTrip(tx *gorm.DB, recordID, scheduleID, routeID uint) (*busrecord.Trip, error) {
	var trip busrecord.Trip
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("record_id = ? AND schedule_id = ? AND route_id = ?", recordID, scheduleID, routeID).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// claimSeat adds one booking to the trip for (record, schedule, route).
// A missing trip is an error: callers only claim seats they were promised,
// so the row disappearing means the booking would be lost.
func claimSeat(tx *gorm.DB, recordID, scheduleID, routeID uint) error {
	trip, err := lockTrip(tx, recordID, scheduleID, routeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("trip missing for record %d schedule %d on route %d", recordID, scheduleID, routeID)
	}
	if err != nil {
		return err
	}
	return tx.Model(trip).Update("booking_count", trip.BookingCount+1).Error
}

// DecrementBooking removes one booking from the trip for (record, schedule,
// route), flooring at zero. Missing trips are skipped silently.
func DecrementBooking(tx *gorm.DB, recordID, scheduleID, routeID uint) error {
	trip, err := lockTrip(tx, recordID, scheduleID, routeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	newCount := trip.BookingCount - 1
	if newCount < 0 {
		newCount = 0
	}
	return tx.Model(trip).Update("booking_count", newCount).Error
}

// RefreshMinRequiredCapacity recomputes a record's min_required_capacity as
// the highest booking count across its trips; a replacement bus must seat at
// least that many students.
func RefreshMinRequiredCapacity(tx *gorm.DB, recordID uint) error {
	return tx.Exec(`UPDATE bus_records
		SET min_required_capacity = COALESCE(
			(SELECT MAX(booking_count) FROM trips WHERE trips.record_id = bus_records.id), 0)
		WHERE id = ?`, recordID).Error
}

// RefreshAllMinRequiredCapacities recomputes min_required_capacity for every
// bus record; used by the nightly reconciliation job.
func RefreshAllMinRequiredCapacities(tx *gorm.DB) error {
	return tx.Exec(`UPDATE bus_records
		SET min_required_capacity = COALESCE(
			(SELECT MAX(booking_count) FROM trips WHERE trips.record_id = bus_records.id), 0)`).Error
}
