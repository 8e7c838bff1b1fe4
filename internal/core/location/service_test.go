// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package location_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/core/location"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// memoryLocationStore is an in-memory [location.Repository] plus
// [location.TripFinder].
type memoryLocationStore struct {
	locations map[string]*location.Location
	trips     map[string]bool
}

func newMemoryLocationStore(tripIDs ...string) *memoryLocationStore {
	store := &memoryLocationStore{
		locations: make(map[string]*location.Location),
		trips:     make(map[string]bool),
	}
	for _, id := range tripIDs {
		store.trips[id] = true
	}
	return store
}

func (store *memoryLocationStore) FindByID(_ context.Context, id string) (*location.Location, error) {
	if record, ok := store.locations[id]; ok {
		return record, nil
	}
	return nil, apperr.NotFound("Location")
}

func (store *memoryLocationStore) ListByTrip(_ context.Context, tripID string) ([]*location.Location, error) {
	records := []*location.Location{}
	for _, record := range store.locations {
		if record.TripID == tripID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (store *memoryLocationStore) Create(_ context.Context, record *location.Location) error {
	store.locations[record.ID] = record
	return nil
}

func (store *memoryLocationStore) Update(_ context.Context, record *location.Location) error {
	store.locations[record.ID] = record
	return nil
}

func (store *memoryLocationStore) Delete(_ context.Context, id string) error {
	delete(store.locations, id)
	return nil
}

func (store *memoryLocationStore) Exists(_ context.Context, tripID string) (bool, error) {
	return store.trips[tripID], nil
}

func newTestService(tripIDs ...string) (*location.Service, *memoryLocationStore) {
	store := newMemoryLocationStore(tripIDs...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return location.NewService(store, store, logger), store
}

func validInput() location.Input {
	return location.Input{
		Name:      "Refuge du Goûter",
		Address:   "Saint-Gervais-les-Bains",
		Category:  "hotel",
		Latitude:  45.8506,
		Longitude: 6.8306,
	}
}

/*
TestService_AddToTrip covers trip existence and field validation.
*/
func TestService_AddToTrip(t *testing.T) {
	ctx := context.Background()
	tripID := uuidv7.New()
	service, _ := newTestService(tripID)

	created, err := service.AddToTrip(ctx, tripID, validInput())
	require.NoError(t, err)
	assert.Equal(t, tripID, created.TripID)
	assert.NotEmpty(t, created.ID)

	t.Run("missing_trip", func(t *testing.T) {
		_, err := service.AddToTrip(ctx, uuidv7.New(), validInput())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	tests := []struct {
		name   string
		mutate func(*location.Input)
	}{
		{"empty_name", func(i *location.Input) { i.Name = "" }},
		{"latitude_out_of_range", func(i *location.Input) { i.Latitude = -90.5 }},
		{"longitude_out_of_range", func(i *location.Input) { i.Longitude = 180.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := service.AddToTrip(ctx, tripID, input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestService_UpdateDelete verifies field updates and removal.
*/
func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	tripID := uuidv7.New()
	service, store := newTestService(tripID)

	created, err := service.AddToTrip(ctx, tripID, validInput())
	require.NoError(t, err)

	t.Run("update", func(t *testing.T) {
		input := validInput()
		input.Name = "Refuge de Tête Rousse"
		updated, err := service.Update(ctx, created.ID, input)
		require.NoError(t, err)
		assert.Equal(t, "Refuge de Tête Rousse", updated.Name)
		assert.Equal(t, tripID, updated.TripID, "the owning trip never changes")
	})

	t.Run("update_missing", func(t *testing.T) {
		_, err := service.Update(ctx, uuidv7.New(), validInput())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, created.ID))
		assert.Empty(t, store.locations)
	})

	t.Run("delete_missing", func(t *testing.T) {
		err := service.Delete(ctx, created.ID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_ListByTrip distinguishes empty trips from missing trips.
*/
func TestService_ListByTrip(t *testing.T) {
	ctx := context.Background()
	tripID := uuidv7.New()
	service, _ := newTestService(tripID)

	t.Run("empty_trip", func(t *testing.T) {
		records, err := service.ListByTrip(ctx, tripID)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("missing_trip", func(t *testing.T) {
		_, err := service.ListByTrip(ctx, uuidv7.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("lists_pins", func(t *testing.T) {
		_, err := service.AddToTrip(ctx, tripID, validInput())
		require.NoError(t, err)

		records, err := service.ListByTrip(ctx, tripID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}
