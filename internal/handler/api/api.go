// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for site content.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/olegiv/companysite/internal/cache"
	"github.com/olegiv/companysite/internal/model"
	"github.com/olegiv/companysite/internal/scheduler"
	"github.com/olegiv/companysite/internal/service"
)

// JobRunner lists and triggers scheduled maintenance jobs.
type JobRunner interface {
	List() []scheduler.JobInfo
	TriggerNow(name string) error
}

// Services bundles the dependencies of the API handlers.
type Services struct {
	Products        *service.LocalizedService
	BlogPosts       *service.LocalizedService
	Activities      *service.LocalizedService
	Awards          *service.SimpleService
	ParentCompanies *service.SimpleService
	About           *service.AboutService
	Files           *service.FileStore
	Events          *service.EventService
	Cache           *cache.ContentCache
	Jobs            JobRunner // optional
}

// EventDispatcher receives content change notifications.
type EventDispatcher interface {
	DispatchEvent(ctx context.Context, eventType string, data any) error
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc        Services
	validate   *validator.Validate
	dispatcher EventDispatcher
}

// NewHandler creates a new API handler.
func NewHandler(svc Services) *Handler {
	return &Handler{
		svc:      svc,
		validate: newValidator(),
	}
}

// SetDispatcher sets the webhook dispatcher for content change events.
func (h *Handler) SetDispatcher(d EventDispatcher) {
	h.dispatcher = d
}

// dispatchEvent reports a change to the dispatcher, if one is set.
func (h *Handler) dispatchEvent(ctx context.Context, eventType string, data any) {
	if h.dispatcher == nil {
		return
	}
	if err := h.dispatcher.DispatchEvent(ctx, eventType, data); err != nil {
		slog.Error("failed to dispatch webhook event", "error", err, "event_type", eventType)
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// writeServiceError maps a service error to its HTTP response. Unexpected
// errors are logged and reported as 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	var ve *model.ValidationError
	switch {
	case errors.Is(err, model.ErrNotFound):
		WriteNotFound(w, entity+" not found")
	case errors.As(err, &ve):
		WriteValidationError(w, ve.Fields)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"entity", entity,
			"error", err,
		)
		WriteInternalError(w, "Failed to process "+entity)
	}
}
