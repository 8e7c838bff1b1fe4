// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package trip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmesh/tripmesh/internal/core/location"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// LocationLister loads the locations owned by a trip, for hydration on
// single-trip reads.
type LocationLister interface {
	ListByTrip(ctx context.Context, tripID string) ([]*location.Location, error)
}

// Service implements the trip use cases.
type Service struct {
	repo      Repository
	users     UserFinder
	locations LocationLister
	logger    *slog.Logger
}

// NewService constructs a new trip [Service].
func NewService(repo Repository, users UserFinder, locations LocationLister, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		locations: locations,
		logger:    logger,
	}
}

// Input holds the writable trip fields shared by Create and Update.
type Input struct {
	Title          string
	Description    string
	Destination    string
	StartDate      time.Time
	EndDate        time.Time
	Status         Status // empty means PLANNING on create, unchanged on update
	Latitude       *float64
	Longitude      *float64
	ParticipantIDs []string // create only; organizer is added regardless
}

// validateInput applies the shared field rules.
func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required("title", input.Title).MaxLen("title", input.Title, 100)
	validator.Required("destination", input.Destination).MaxLen("destination", input.Destination, 100)
	validator.MaxLen("description", input.Description, 1000)
	validator.Custom("start_date", input.StartDate.IsZero(), "This field is required")
	validator.Custom("end_date", input.EndDate.IsZero(), "This field is required")
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() {
		validator.Custom("end_date", input.EndDate.Before(input.StartDate), "Must not be before start_date")
	}
	if input.Status != "" {
		validator.OneOf("status", string(input.Status), StatusNames()...)
	}
	if input.Latitude != nil {
		validator.Latitude("latitude", *input.Latitude)
	}
	if input.Longitude != nil {
		validator.Longitude("longitude", *input.Longitude)
	}
	return validator.Err()
}

// Create validates and persists a new trip.
//
// # Business Rules
//   - The organizer must exist (NotFound).
//   - The organizer is always added to the participant set, even when the
//     input omits them.
//   - Unknown participant IDs are rejected (NotFound).
//   - Status defaults to PLANNING.
func (service *Service) Create(context context.Context, input Input, organizerID string) (*Trip, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := service.users.Exists(context, organizerID)
	if err != nil {
		return nil, fmt.Errorf("trip_service_organizer_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Organizer")
	}

	// ── 2. Participant Set Construction ───────────────────────────────────

	// The organizer leads the set; requested participants follow,
	// deduplicated against the organizer and each other.
	now := time.Now()
	participants := []Participant{{UserID: organizerID, JoinedAt: now}}
	seen := map[string]bool{organizerID: true}

	for _, participantID := range input.ParticipantIDs {
		if seen[participantID] {
			continue
		}
		exists, err := service.users.Exists(context, participantID)
		if err != nil {
			return nil, fmt.Errorf("trip_service_participant_lookup_failed: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("User")
		}
		seen[participantID] = true
		participants = append(participants, Participant{UserID: participantID, JoinedAt: now})
	}

	// ── 3. Entity Construction & Persistence ──────────────────────────────

	status := input.Status
	if status == "" {
		status = StatusPlanning
	}

	trip := &Trip{
		ID:           uuidv7.New(),
		Title:        input.Title,
		Description:  input.Description,
		Destination:  input.Destination,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       status,
		OrganizerID:  organizerID,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Participants: participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.repo.Create(context, trip); err != nil {
		return nil, fmt.Errorf("trip_service_create_failed: %w", err)
	}

	service.logger.Info("trip_created",
		slog.String("trip_id", trip.ID),
		slog.String("organizer_id", organizerID),
	)
	return trip, nil
}

// Get returns the trip with its participant set and owned locations.
func (service *Service) Get(context context.Context, id string) (*Trip, error) {
	trip, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	locations, err := service.locations.ListByTrip(context, id)
	if err != nil {
		return nil, fmt.Errorf("trip_service_locations_failed: %w", err)
	}
	trip.Locations = locations

	return trip, nil
}

// Update applies new field values to an existing trip. Organizer-only.
func (service *Service) Update(context context.Context, id string, input Input, actorID string) (*Trip, error) {
	// ── 1. Fetch & Authorize ──────────────────────────────────────────────

	trip, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if trip.OrganizerID != actorID {
		return nil, apperr.Forbidden("Only the trip organizer can modify it")
	}

	// ── 2. Validation ─────────────────────────────────────────────────────

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// ── 3. Apply & Persist ────────────────────────────────────────────────

	trip.Title = input.Title
	trip.Description = input.Description
	trip.Destination = input.Destination
	trip.StartDate = input.StartDate
	trip.EndDate = input.EndDate
	trip.Latitude = input.Latitude
	trip.Longitude = input.Longitude
	if input.Status != "" {
		trip.Status = input.Status
	}
	trip.UpdatedAt = time.Now()

	if err := service.repo.Update(context, trip); err != nil {
		return nil, fmt.Errorf("trip_service_update_failed: %w", err)
	}

	service.logger.Info("trip_updated", slog.String("trip_id", trip.ID))
	return trip, nil
}

// Delete removes a trip and all its locations. Organizer-only.
func (service *Service) Delete(context context.Context, id, actorID string) error {
	trip, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if trip.OrganizerID != actorID {
		return apperr.Forbidden("Only the trip organizer can delete it")
	}

	if err := service.repo.Delete(context, trip.ID); err != nil {
		return fmt.Errorf("trip_service_delete_failed: %w", err)
	}

	service.logger.Warn("trip_deleted", slog.String("trip_id", trip.ID))
	return nil
}

// List returns a filtered, paginated trip page.
//
// Status values are validated here so a bad query parameter reads as a 400
// rather than an empty result.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Trip, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "status",
			Message: fmt.Sprintf("Must be one of: %v", StatusNames()),
		})
	}

	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "to",
			Message: "Must not be before 'from'",
		})
	}

	return service.repo.List(context, filter, limit, offset)
}

// AddParticipant adds a user to the trip's participant set. Organizer-only.
func (service *Service) AddParticipant(context context.Context, tripID, userID, actorID string) (*Trip, error) {
	// ── 1. Fetch & Authorize ──────────────────────────────────────────────

	trip, err := service.repo.FindByID(context, tripID)
	if err != nil {
		return nil, err
	}

	if trip.OrganizerID != actorID {
		return nil, apperr.Forbidden("Only the trip organizer can manage participants")
	}

	// ── 2. Target Checks ──────────────────────────────────────────────────

	exists, err := service.users.Exists(context, userID)
	if err != nil {
		return nil, fmt.Errorf("trip_service_participant_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("User")
	}

	if trip.HasParticipant(userID) {
		return nil, apperr.Conflict("User is already a participant of this trip")
	}

	// ── 3. Persist & Re-read ──────────────────────────────────────────────

	if err := service.repo.AddParticipant(context, tripID, userID, time.Now()); err != nil {
		return nil, err
	}

	service.logger.Info("trip_participant_added",
		slog.String("trip_id", tripID),
		slog.String("user_id", userID),
	)
	return service.repo.FindByID(context, tripID)
}

// RemoveParticipant removes a user from the trip's participant set.
//
// The organizer may remove anyone; a participant may remove themselves
// (leave). Removing the organizer is always a validation error, since the
// organizer must stay in the set.
func (service *Service) RemoveParticipant(context context.Context, tripID, userID, actorID string) (*Trip, error) {
	trip, err := service.repo.FindByID(context, tripID)
	if err != nil {
		return nil, err
	}

	if trip.OrganizerID != actorID && userID != actorID {
		return nil, apperr.Forbidden("Only the trip organizer can remove other participants")
	}

	if userID == trip.OrganizerID {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "user_id",
			Message: "The organizer cannot be removed from the trip",
		})
	}

	if !trip.HasParticipant(userID) {
		return nil, apperr.NotFound("Participant")
	}

	if err := service.repo.RemoveParticipant(context, tripID, userID); err != nil {
		return nil, fmt.Errorf("trip_service_remove_participant_failed: %w", err)
	}

	service.logger.Info("trip_participant_removed",
		slog.String("trip_id", tripID),
		slog.String("user_id", userID),
	)
	return service.repo.FindByID(context, tripID)
}
