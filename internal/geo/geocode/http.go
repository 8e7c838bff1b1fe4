// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package geocode

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/respond"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
)

// Handler exposes place search over HTTP.
type Handler struct {
	client *Client
}

// NewHandler constructs a new [Handler].
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts GET /search onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
}

// search handles GET .../search?query=<text>.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("query")
	if query == "" {
		respond.Error(writer, request, validate.RequiredError("query", "is required"))
		return
	}

	places, err := handler.client.Search(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, places)
}
