package allocation

import (
	"strings"
	"testing"

	"bus-registration/models/busrecord"
	ticketModel "bus-registration/models/ticket"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return gdb, mock
}

func tripRows(id, recordID, scheduleID, routeID uint, bookingCount int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "registration_id", "record_id", "schedule_id", "route_id", "booking_count"}).
		AddRow(id, 1, recordID, scheduleID, routeID, bookingCount)
}

func TestApplyTransferPlanCommitsSeatMoves(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	oldRecordID := uint(1)
	scheduleID := uint(10)
	ticket := &ticketModel.Ticket{
		ID:                7,
		TicketID:          "BT-1-A",
		PickupBusRecordID: &oldRecordID,
		PickupPointID:     uintPtr(5),
		PickupScheduleID:  &scheduleID,
	}
	plan := &TransferPlan{
		StopID:     5,
		OldRouteID: 100,
		NewRouteID: 200,
		Assignments: []Assignment{
			{Ticket: ticket, Record: &busrecord.BusRecord{ID: 2}, MovePickup: true},
		},
	}

	mock.ExpectBegin()
	// Old trip goes 5 → 4, new trip 0 → 1: one seat moved, none created.
	mock.ExpectQuery(`SELECT (.+) FROM "trips"`).
		WillReturnRows(tripRows(11, 1, 10, 100, 5))
	mock.ExpectExec(`UPDATE "trips"`).
		WithArgs(4, sqlmock.AnyArg(), 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "trips"`).
		WillReturnRows(tripRows(22, 2, 10, 200, 0))
	mock.ExpectExec(`UPDATE "trips"`).
		WithArgs(1, sqlmock.AnyArg(), 22).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "tickets"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "ticket_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(`UPDATE "stops"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return ApplyTransferPlan(tx, plan, "admin")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyTransferPlanAbortsWhenDestinationTripMissing(t *testing.T) {
	gdb, mock := newMockDB(t)

	scheduleID := uint(10)
	// No old record on the leg, so the first statement is the destination
	// trip lookup.
	ticket := &ticketModel.Ticket{
		ID:               7,
		TicketID:         "BT-1-A",
		PickupPointID:    uintPtr(5),
		PickupScheduleID: &scheduleID,
	}
	plan := &TransferPlan{
		StopID:     5,
		OldRouteID: 100,
		NewRouteID: 200,
		Assignments: []Assignment{
			{Ticket: ticket, Record: &busrecord.BusRecord{ID: 2}, MovePickup: true},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "trips"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "record_id", "schedule_id", "route_id", "booking_count"}))
	mock.ExpectRollback()

	err := gdb.Transaction(func(tx *gorm.DB) error {
		return ApplyTransferPlan(tx, plan, "admin")
	})
	if err == nil {
		t.Fatal("expected error when the destination trip row is gone")
	}
	if !strings.Contains(err.Error(), "trip missing") {
		t.Fatalf("unexpected error: %v", err)
	}
	// Rollback only: no ticket, trip or stop row may have been written.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
