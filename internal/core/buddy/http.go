// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package buddy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripmesh/tripmesh/internal/platform/middleware"
	"github.com/tripmesh/tripmesh/internal/platform/requestutil"
	"github.com/tripmesh/tripmesh/internal/platform/respond"
)

// Handler exposes the relationship ledger over HTTP. Every route requires
// authentication; the acting user is always taken from the token, never
// from the payload.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the ledger endpoints onto the given router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listAccepted)
	router.Delete("/{id}", handler.remove)

	router.Route("/requests", func(requestRoute chi.Router) {
		requestRoute.Post("/", handler.sendRequest)
		requestRoute.Get("/incoming", handler.listIncoming)
		requestRoute.Get("/outgoing", handler.listOutgoing)
		requestRoute.Post("/{id}/accept", handler.acceptRequest)
		requestRoute.Delete("/{id}", handler.rejectRequest)
	})
}

// sendRequestPayload carries the target of a new buddy request.
type sendRequestPayload struct {
	TargetID string `json:"target_id"`
}

func (handler *Handler) sendRequest(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input sendRequestPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	buddy, err := handler.service.SendRequest(request.Context(), actorID, input.TargetID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, buddy)
}

func (handler *Handler) acceptRequest(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	buddy, err := handler.service.AcceptRequest(request.Context(), requestutil.Param(request, "id"), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, buddy)
}

func (handler *Handler) rejectRequest(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RejectRequest(request.Context(), requestutil.Param(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), requestutil.Param(request, "id"), actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) listAccepted(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListAccepted(request.Context(), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

func (handler *Handler) listIncoming(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListIncoming(request.Context(), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

func (handler *Handler) listOutgoing(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views, err := handler.service.ListOutgoing(request.Context(), actorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}
