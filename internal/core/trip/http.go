// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package trip

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/middleware"
	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
	"github.com/tripmesh/tripmesh/pkg/pagination"
)

// dateLayout is the wire format for trip dates. Time-of-day is never
// accepted or emitted.
const dateLayout = "2006-01-02"

// Handler exposes the trip store over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the trip endpoints onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.create)
		authRoute.Put("/{id}", handler.update)
		authRoute.Delete("/{id}", handler.delete)
		authRoute.Post("/{id}/participants/{userID}", handler.addParticipant)
		authRoute.Delete("/{id}/participants/{userID}", handler.removeParticipant)
	})
}

// tripPayload is the JSON body for create and update.
type tripPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"start_date"` // YYYY-MM-DD
	EndDate        string   `json:"end_date"`   // YYYY-MM-DD
	Status         string   `json:"status"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	ParticipantIDs []string `json:"participant_ids"`
}

// toInput converts the payload, turning malformed dates into field errors.
func (payload tripPayload) toInput() (Input, error) {
	input := Input{
		Title:          payload.Title,
		Description:    payload.Description,
		Destination:    payload.Destination,
		Status:         Status(payload.Status),
		Latitude:       payload.Latitude,
		Longitude:      payload.Longitude,
		ParticipantIDs: payload.ParticipantIDs,
	}

	var err error
	if payload.StartDate != "" {
		if input.StartDate, err = time.Parse(dateLayout, payload.StartDate); err != nil {
			return input, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: "start_date", Message: "Must be a date in YYYY-MM-DD format",
			})
		}
	}
	if payload.EndDate != "" {
		if input.EndDate, err = time.Parse(dateLayout, payload.EndDate); err != nil {
			return input, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: "end_date", Message: "Must be a date in YYYY-MM-DD format",
			})
		}
	}

	return input, nil
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload tripPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := payload.toInput()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.Create(request.Context(), input, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, trip)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	trip, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}

// list handles GET /api/v1/trips with the optional filters
// organizer, participant, status, destination, from, to, page, limit.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		OrganizerID:   queryParams.Get("organizer"),
		ParticipantID: queryParams.Get("participant"),
		Status:        Status(queryParams.Get("status")),
		Destination:   queryParams.Get("destination"),
	}

	if raw := queryParams.Get("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: "from", Message: "Must be a date in YYYY-MM-DD format",
			}))
			return
		}
		filter.From = &from
	}
	if raw := queryParams.Get("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field: "to", Message: "Must be a date in YYYY-MM-DD format",
			}))
			return
		}
		filter.To = &to
	}

	trips, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, trips, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload tripPayload
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := payload.toInput()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.Update(request.Context(), requestutil.Param(request, "id"), input, actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Param(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) addParticipant(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.AddParticipant(
		request.Context(),
		requestutil.Param(request, "id"),
		requestutil.Param(request, "userID"),
		actorID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}

func (handler *Handler) removeParticipant(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	trip, err := handler.service.RemoveParticipant(
		request.Context(),
		requestutil.Param(request, "id"),
		requestutil.Param(request, "userID"),
		actorID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, trip)
}
