// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package location

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/middleware"
	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
)

// Handler exposes trip locations over HTTP. The place-search and
// points-of-interest endpoints share this route group but live in the geo
// packages; the server mounts them alongside.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the location endpoints onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/trips/{tripID}", handler.listByTrip)
	router.Get("/{id}", handler.get)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/trips/{tripID}", handler.addToTrip)
		authRoute.Put("/{id}", handler.update)
		authRoute.Delete("/{id}", handler.delete)
	})
}

// locationPayload is the JSON body for create and update.
type locationPayload struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (payload locationPayload) toInput() Input {
	return Input{
		Name:        payload.Name,
		Address:     payload.Address,
		Category:    payload.Category,
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
	}
}

func (handler *Handler) addToTrip(writer http.ResponseWriter, request *http.Request) {
	var payload locationPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.AddToTrip(request.Context(), requestutil.Param(request, "tripID"), payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, location)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	location, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, location)
}

func (handler *Handler) listByTrip(writer http.ResponseWriter, request *http.Request) {
	locations, err := handler.service.ListByTrip(request.Context(), requestutil.Param(request, "tripID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, locations)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var payload locationPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	location, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, location)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
