// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs: the unreferenced upload
// report and event log retention.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
	"github.com/olegiv/companysite/internal/store"
)

// Job names.
const (
	JobOrphanUploads  = "orphan-uploads"
	JobEventRetention = "event-retention"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// Config selects which jobs run and when.
type Config struct {
	// OrphanScan is the cron spec for the orphan upload report; empty disables it.
	OrphanScan string
	// EventRetention prunes events older than this once a day; 0 disables it.
	EventRetention time.Duration
}

type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	run         func(ctx context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	LastRun     time.Time `json:"last_run"`
	NextRun     time.Time `json:"next_run"`
}

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	engine *store.Engine
	files  *service.FileStore
	events *service.EventService
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(engine *store.Engine, files *service.FileStore, events *service.EventService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		engine: engine,
		files:  files,
		events: events,
		cron:   cron.New(),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start(cfg Config) error {
	if cfg.OrphanScan != "" {
		if err := s.register(JobOrphanUploads, "Report uploaded files no row references", cfg.OrphanScan, s.reportOrphans); err != nil {
			return err
		}
	}
	if cfg.EventRetention > 0 {
		retention := cfg.EventRetention
		if err := s.register(JobEventRetention, "Delete events older than "+retention.String(), "@daily", func(ctx context.Context) error {
			return s.pruneEvents(ctx, retention)
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) register(name, description, schedule string, run func(ctx context.Context) error) error {
	if err := ValidateSchedule(schedule); err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}

	job := &registeredJob{
		name:        name,
		description: description,
		schedule:    schedule,
		run:         run,
	}

	entryID, err := s.cron.AddFunc(schedule, func() {
		if err := s.execute(job); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", name, err)
	}
	job.entryID = entryID

	s.mu.Lock()
	s.jobs[name] = job
	s.mu.Unlock()

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

func (s *Scheduler) execute(job *registeredJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	return job.run(ctx)
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := s.cron.Entry(job.entryID)
		result = append(result, JobInfo{
			Name:        job.name,
			Description: job.description,
			Schedule:    job.schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a registered job immediately.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job %q: %w", name, model.ErrNotFound)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.execute(job)
}

// reportOrphans logs stored uploads that no row references. Files are never
// deleted: a replaced image may still be linked from outside the site.
func (s *Scheduler) reportOrphans(ctx context.Context) error {
	orphans, err := service.OrphanFiles(ctx, s.engine, s.files)
	if err != nil {
		return fmt.Errorf("scanning uploads: %w", err)
	}
	if len(orphans) == 0 {
		s.logger.Debug("no orphaned uploads")
		return nil
	}

	s.logger.Warn("orphaned upload files found",
		"category", model.EventCategoryUpload,
		"count", len(orphans),
		"files", orphans,
	)
	return nil
}

func (s *Scheduler) pruneEvents(ctx context.Context, olderThan time.Duration) error {
	n, err := s.events.DeleteOldEvents(ctx, olderThan)
	if err != nil {
		return fmt.Errorf("pruning events: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned old events", "deleted", n, "older_than", olderThan.String())
	}
	return nil
}
