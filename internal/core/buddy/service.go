// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package buddy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/validate"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// Service implements the relationship ledger use cases.
type Service struct {
	repo   Repository
	users  UserFinder
	logger *slog.Logger
}

// NewService constructs a new ledger [Service].
func NewService(repo Repository, users UserFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// SendRequest creates a pending relationship from requester to target.
//
// # Business Rules
//   - A user cannot buddy themselves (Validation).
//   - The target account must exist (NotFound).
//   - A row in either direction blocks a new one (Conflict) — "A requested B"
//     and "B requested A" describe the same pair.
func (service *Service) SendRequest(context context.Context, requesterID, targetID string) (*Buddy, error) {
	// ── 1. Validation ─────────────────────────────────────────────────────

	validator := &validate.Validator{}
	validator.Required("target_id", targetID).UUID("target_id", targetID)
	validator.Custom("target_id", requesterID == targetID, "Cannot send a buddy request to yourself")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Target Existence ───────────────────────────────────────────────

	exists, err := service.users.Exists(context, targetID)
	if err != nil {
		return nil, fmt.Errorf("buddy_service_target_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("User")
	}

	// ── 3. Symmetric Duplicate Check ──────────────────────────────────────

	// The store-level unique index on the normalized pair is the final
	// arbiter; this lookup exists to produce a friendly message in the
	// common, non-racy case.
	if _, err := service.repo.FindByPair(context, requesterID, targetID); err == nil {
		return nil, apperr.Conflict("A buddy relationship already exists between these users")
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	buddy := &Buddy{
		ID:          uuidv7.New(),
		RequesterID: requesterID,
		AddresseeID: targetID,
		Accepted:    false,
		CreatedAt:   time.Now(),
	}

	if err := service.repo.Create(context, buddy); err != nil {
		return nil, err
	}

	service.logger.Info("buddy_request_sent",
		slog.String("buddy_id", buddy.ID),
		slog.String("requester_id", requesterID),
	)
	return buddy, nil
}

// AcceptRequest marks a pending request accepted.
//
// Only the addressee may accept; anyone else gets Forbidden even if they are
// the requester.
func (service *Service) AcceptRequest(context context.Context, id, actorID string) (*Buddy, error) {
	buddy, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if buddy.AddresseeID != actorID {
		return nil, apperr.Forbidden("Only the recipient of a buddy request can accept it")
	}

	if buddy.Accepted {
		return nil, apperr.Conflict("Buddy request is already accepted")
	}

	now := time.Now()
	buddy.Accepted = true
	buddy.AcceptedAt = &now

	if err := service.repo.Accept(context, buddy); err != nil {
		return nil, fmt.Errorf("buddy_service_accept_failed: %w", err)
	}

	service.logger.Info("buddy_request_accepted", slog.String("buddy_id", buddy.ID))
	return buddy, nil
}

// RejectRequest deletes a pending request. Same addressee-only guard as
// [Service.AcceptRequest]; rejection leaves no trace, so the requester can
// try again later.
func (service *Service) RejectRequest(context context.Context, id, actorID string) error {
	buddy, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if buddy.AddresseeID != actorID {
		return apperr.Forbidden("Only the recipient of a buddy request can reject it")
	}

	if buddy.Accepted {
		return apperr.Conflict("Accepted relationships must be removed, not rejected")
	}

	if err := service.repo.Delete(context, buddy.ID); err != nil {
		return fmt.Errorf("buddy_service_reject_failed: %w", err)
	}

	service.logger.Info("buddy_request_rejected", slog.String("buddy_id", buddy.ID))
	return nil
}

// Remove deletes a relationship in any state. Either party may remove;
// outsiders get Forbidden.
func (service *Service) Remove(context context.Context, id, actorID string) error {
	buddy, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if !buddy.Involves(actorID) {
		return apperr.Forbidden("Only a member of the relationship can remove it")
	}

	if err := service.repo.Delete(context, buddy.ID); err != nil {
		return fmt.Errorf("buddy_service_remove_failed: %w", err)
	}

	service.logger.Info("buddy_removed", slog.String("buddy_id", buddy.ID))
	return nil
}

// ListAccepted returns the user's accepted relationships, each resolved to
// the counterpart's profile.
func (service *Service) ListAccepted(context context.Context, userID string) ([]*View, error) {
	return service.repo.ListAccepted(context, userID)
}

// ListIncoming returns pending requests addressed to the user.
func (service *Service) ListIncoming(context context.Context, userID string) ([]*View, error) {
	return service.repo.ListIncoming(context, userID)
}

// ListOutgoing returns pending requests the user has sent.
func (service *Service) ListOutgoing(context context.Context, userID string) ([]*View, error) {
	return service.repo.ListOutgoing(context, userID)
}
