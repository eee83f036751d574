// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/service"
	"github.com/olegiv/companysite/internal/testutil"
)

type testScheduler struct {
	*Scheduler
	files *service.FileStore
	logs  *bytes.Buffer
}

func newTestScheduler(t *testing.T) *testScheduler {
	t.Helper()

	engine, cleanup := testutil.TestEngine(t)
	t.Cleanup(cleanup)

	files, err := service.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := New(engine, files, service.NewEventService(engine.DB()), logger)
	return &testScheduler{Scheduler: s, files: files, logs: &buf}
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.Start(Config{OrphanScan: "@daily", EventRetention: 24 * time.Hour}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	jobs := s.List()
	if len(jobs) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(jobs))
	}
	if jobs[0].Name != JobEventRetention || jobs[1].Name != JobOrphanUploads {
		t.Errorf("jobs = %+v, want sorted by name", jobs)
	}
	if jobs[1].NextRun.IsZero() {
		t.Error("NextRun should be set once the scheduler is running")
	}
}

func TestScheduler_DisabledJobs(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.Start(Config{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	if jobs := s.List(); len(jobs) != 0 {
		t.Errorf("len(List()) = %d, want 0", len(jobs))
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := newTestScheduler(t)

	if err := s.Start(Config{OrphanScan: "every day"}); err == nil {
		t.Fatal("Start() should reject an invalid schedule")
	}
}

func TestScheduler_TriggerOrphanReport(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.Start(Config{OrphanScan: "@daily"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop()

	ref, err := s.files.Save(context.Background(), strings.NewReader("x"), "stray.png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.TriggerNow(JobOrphanUploads); err != nil {
		t.Fatalf("TriggerNow() error = %v", err)
	}

	logs := s.logs.String()
	if !strings.Contains(logs, "orphaned upload files found") || !strings.Contains(logs, ref) {
		t.Errorf("log output missing orphan report: %s", logs)
	}

	// Reporting never deletes.
	if _, err := s.files.Path(ref); err != nil {
		t.Errorf("Path(%q) error = %v", ref, err)
	}
	refs, _ := s.files.List()
	if len(refs) != 1 {
		t.Errorf("files after report = %v, want the stray file kept", refs)
	}
}

func TestScheduler_TriggerUnknownJob(t *testing.T) {
	s := newTestScheduler(t)

	err := s.TriggerNow("nope")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("TriggerNow() error = %v, want ErrNotFound", err)
	}
}
