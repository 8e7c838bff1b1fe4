// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package poi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
	"github.com/tripmesh/tripmesh/pkg/convert"
	"github.com/tripmesh/tripmesh/pkg/query"
)

// defaultRadiusMeters applies when the radius query parameter is absent.
const defaultRadiusMeters = 1000

// Handler exposes points-of-interest search over HTTP.
type Handler struct {
	client *Client
}

// NewHandler constructs a new [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts GET /poi onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/poi", handler.search)
}

// search handles GET .../poi?latitude=&longitude=&radius=&types=a,b,c.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
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

	radius := convert.ToInt(request.URL.Query().Get("radius"))
	if radius <= 0 {
		radius = defaultRadiusMeters
	}
	categories := query.StringSlice(request.URL.Query().Get("types"))

	points, err := handler.client.Search(request.Context(), latitude, longitude, radius, categories)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, points)
}
