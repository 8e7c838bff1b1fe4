// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package weather

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
)

// Handler exposes weather forecasts over HTTP.
type Handler struct {
	client *Client
}

// NewHandler constructs a new [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts GET /forecast onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/forecast", handler.forecast)
}

// forecast handles GET .../forecast?latitude=&longitude=.
func (handler *Handler) forecast(writer http.ResponseWriter, request *http.Request) {
	latitude, err := requestutil.QueryFloat(request, "latitude")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	longitude, err := requestutil.QueryFloat(request, "longitude")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Latitude("latitude", latitude).Longitude("longitude", longitude)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	forecast, err := handler.client.Get(request.Context(), latitude, longitude)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, forecast)
}
