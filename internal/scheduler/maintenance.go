package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Checkpointer folds the write-ahead log into the main database file.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// MaintenanceScheduler periodically checkpoints the local store so the WAL
// file does not grow without bound.
type MaintenanceScheduler struct {
	store    Checkpointer
	schedule string
	timeout  time.Duration

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	lastRun   time.Time
	lastErr   error
}

// NewMaintenanceScheduler creates a new scheduler instance
func NewMaintenanceScheduler(store Checkpointer, schedule string) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		store:    store,
		schedule: schedule,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Start begins the scheduler. It stops when ctx is cancelled.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCheckpoint()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running checkpoint to finish.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	s.mu.Unlock()

	// The lock is released first: a running job records its result under it.
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(entryID)

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow performs a checkpoint immediately and returns its error.
func (s *MaintenanceScheduler) RunNow() error {
	return s.runCheckpoint()
}

// IsRunning returns whether the scheduler is active
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next checkpoint will occur
func (s *MaintenanceScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// LastRun returns the time and result of the most recent checkpoint.
func (s *MaintenanceScheduler) LastRun() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

func (s *MaintenanceScheduler) runCheckpoint() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	startTime := time.Now()
	err := s.store.Checkpoint(ctx)

	s.mu.Lock()
	s.lastRun = startTime
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		log.Printf("Maintenance: checkpoint failed: %v", err)
		return err
	}
	log.Printf("Maintenance: checkpoint completed in %v", time.Since(startTime).Round(time.Millisecond))
	return nil
}
