// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package location

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// Service implements the location use cases.
type Service struct {
	repo   Repository
	trips  TripFinder
	logger *slog.Logger
}

// NewService constructs a new location [Service].
func NewService(repo Repository, trips TripFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		trips:  trips,
		logger: logger,
	}
}

// Input holds the writable location fields.
type Input struct {
	Name        string
	Address     string
	Category    string
	Description string
	Latitude    float64
	Longitude   float64
}

func validateInput(input Input) error {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 200)
	validator.Latitude("latitude", input.Latitude)
	validator.Longitude("longitude", input.Longitude)
	return validator.Err()
}

// AddToTrip validates and pins a new location to the given trip.
func (service *Service) AddToTrip(context context.Context, tripID string, input Input) (*Location, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := service.trips.Exists(context, tripID)
	if err != nil {
		return nil, fmt.Errorf("location_service_trip_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Trip")
	}

	now := time.Now()
	location := &Location{
		ID:          uuidv7.New(),
		TripID:      tripID,
		Name:        input.Name,
		Address:     input.Address,
		Category:    input.Category,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, location); err != nil {
		return nil, err
	}

	service.logger.Info("location_added",
		slog.String("location_id", location.ID),
		slog.String("trip_id", tripID),
	)
	return location, nil
}

// Get returns the location with the given ID.
func (service *Service) Get(context context.Context, id string) (*Location, error) {
	return service.repo.FindByID(context, id)
}

// Update applies new field values to an existing location. The owning trip
// never changes.
func (service *Service) Update(context context.Context, id string, input Input) (*Location, error) {
	location, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	location.Name = input.Name
	location.Address = input.Address
	location.Category = input.Category
	location.Description = input.Description
	location.Latitude = input.Latitude
	location.Longitude = input.Longitude
	location.UpdatedAt = time.Now()

	if err := service.repo.Update(context, location); err != nil {
		return nil, fmt.Errorf("location_service_update_failed: %w", err)
	}

	return location, nil
}

// Delete removes a location.
func (service *Service) Delete(context context.Context, id string) error {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("location_service_delete_failed: %w", err)
	}

	service.logger.Info("location_deleted", slog.String("location_id", id))
	return nil
}

// ListByTrip returns every location pinned to the trip.
//
// Listing on a missing trip is NotFound, not an empty slice, so clients can
// distinguish "no pins yet" from "no such trip".
func (service *Service) ListByTrip(context context.Context, tripID string) ([]*Location, error) {
	exists, err := service.trips.Exists(context, tripID)
	if err != nil {
		return nil, fmt.Errorf("location_service_trip_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Trip")
	}

	return service.repo.ListByTrip(context, tripID)
}
