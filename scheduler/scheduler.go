// Package scheduler runs the nightly maintenance jobs that keep derived
// booking state honest without blocking request handlers.
package scheduler

import (
	"fmt"

	"bus-registration/logger"
	"bus-registration/services/allocation"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	DB   *gorm.DB
	cron *cron.Cron
}

// New builds a scheduler with the nightly jobs registered but not started.
func New(db *gorm.DB) (*Scheduler, error) {
	s := &Scheduler{
		DB:   db,
		cron: cron.New(),
	}

	// Past-due receipts of inactive registrations can no longer be used.
	if _, err := s.cron.AddFunc("15 0 * * *", s.MarkExpiredReceipts); err != nil {
		return nil, err
	}
	// Keep min_required_capacity aligned with actual booking counts.
	if _, err := s.cron.AddFunc("30 0 * * *", s.RefreshMinRequiredCapacities); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop halts the cron runner, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}

// MarkExpiredReceipts expires every unused receipt belonging to a
// registration that is no longer active. Receipts already consumed by a
// ticket stay untouched so bookings keep their paper trail.
func (s *Scheduler) MarkExpiredReceipts() {
	result := s.DB.Exec(`UPDATE receipts
		SET is_expired = true
		WHERE is_expired = false
		  AND registration_id IN (SELECT id FROM registrations WHERE is_active = false)
		  AND id NOT IN (SELECT receipt_id FROM tickets)`)
	if result.Error != nil {
		logger.Error("Failed to mark expired receipts", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info(fmt.Sprintf("Marked %d receipts expired", result.RowsAffected))
	}
}

// RefreshMinRequiredCapacities recomputes every record's minimum required
// capacity from its trips' booking counts.
func (s *Scheduler) RefreshMinRequiredCapacities() {
	if err := allocation.RefreshAllMinRequiredCapacities(s.DB); err != nil {
		logger.Error("Failed to refresh min required capacities", err)
		return
	}
	logger.Info("Min required capacities refreshed")
}
