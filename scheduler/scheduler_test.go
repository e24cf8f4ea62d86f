package scheduler

import (
	"testing"

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

func TestMarkExpiredReceiptsSkipsUsedReceipts(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("UPDATE receipts").
		WillReturnResult(sqlmock.NewResult(0, 2))

	s := &Scheduler{DB: gdb}
	s.MarkExpiredReceipts()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRefreshMinRequiredCapacities(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec("UPDATE bus_records").
		WillReturnResult(sqlmock.NewResult(0, 5))

	s := &Scheduler{DB: gdb}
	s.RefreshMinRequiredCapacities()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
