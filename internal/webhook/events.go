// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package webhook notifies an external endpoint when site content changes.
package webhook

import (
	"time"

	"github.com/olegiv/companysite/internal/model"
)

// Event types.
const (
	EventContentCreated = "content.created"
	EventContentUpdated = "content.updated"
	EventContentDeleted = "content.deleted"
	EventUploadCreated  = "upload.created"
)

// Event represents a webhook event to be dispatched.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates a new webhook event.
func NewEvent(eventType string, data any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ContentEventData identifies the entity that changed. ID is zero for the
// about singleton.
type ContentEventData struct {
	Family model.Family `json:"family"`
	ID     int64        `json:"id,omitempty"`
}

// UploadEventData describes a stored upload.
type UploadEventData struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
