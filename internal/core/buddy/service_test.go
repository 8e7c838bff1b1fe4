// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package buddy_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/core/buddy"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/pkg/uuidv7"
)

// memoryLedger is an in-memory [buddy.Repository] plus [buddy.UserFinder].
// It mirrors the store-level unordered-pair uniqueness in Create.
type memoryLedger struct {
	rows  map[string]*buddy.Buddy
	users map[string]bool
}

func newMemoryLedger(userIDs ...string) *memoryLedger {
	ledger := &memoryLedger{
		rows:  make(map[string]*buddy.Buddy),
		users: make(map[string]bool),
	}
	for _, id := range userIDs {
		ledger.users[id] = true
	}
	return ledger
}

func (ledger *memoryLedger) FindByID(_ context.Context, id string) (*buddy.Buddy, error) {
	if row, ok := ledger.rows[id]; ok {
		return row, nil
	}
	return nil, apperr.NotFound("Buddy relationship")
}

func (ledger *memoryLedger) FindByPair(_ context.Context, userA, userB string) (*buddy.Buddy, error) {
	for _, row := range ledger.rows {
		if (row.RequesterID == userA && row.AddresseeID == userB) ||
			(row.RequesterID == userB && row.AddresseeID == userA) {
			return row, nil
		}
	}
	return nil, apperr.NotFound("Buddy relationship")
}

func (ledger *memoryLedger) Create(ctx context.Context, row *buddy.Buddy) error {
	if _, err := ledger.FindByPair(ctx, row.RequesterID, row.AddresseeID); err == nil {
		return apperr.Conflict("A buddy relationship already exists between these users")
	}
	ledger.rows[row.ID] = row
	return nil
}

func (ledger *memoryLedger) Accept(_ context.Context, row *buddy.Buddy) error {
	ledger.rows[row.ID] = row
	return nil
}

func (ledger *memoryLedger) Delete(_ context.Context, id string) error {
	delete(ledger.rows, id)
	return nil
}

func (ledger *memoryLedger) ListAccepted(_ context.Context, userID string) ([]*buddy.View, error) {
	return ledger.views(func(row *buddy.Buddy) bool {
		return row.Accepted && row.Involves(userID)
	}, userID), nil
}

func (ledger *memoryLedger) ListIncoming(_ context.Context, userID string) ([]*buddy.View, error) {
	return ledger.views(func(row *buddy.Buddy) bool {
		return !row.Accepted && row.AddresseeID == userID
	}, userID), nil
}

func (ledger *memoryLedger) ListOutgoing(_ context.Context, userID string) ([]*buddy.View, error) {
	return ledger.views(func(row *buddy.Buddy) bool {
		return !row.Accepted && row.RequesterID == userID
	}, userID), nil
}

func (ledger *memoryLedger) Exists(_ context.Context, userID string) (bool, error) {
	return ledger.users[userID], nil
}

func (ledger *memoryLedger) views(match func(*buddy.Buddy) bool, userID string) []*buddy.View {
	views := []*buddy.View{}
	for _, row := range ledger.rows {
		if match(row) {
			views = append(views, &buddy.View{
				ID:         row.ID,
				UserID:     row.OtherUser(userID),
				Accepted:   row.Accepted,
				CreatedAt:  row.CreatedAt,
				AcceptedAt: row.AcceptedAt,
			})
		}
	}
	return views
}

func newTestService(userIDs ...string) (*buddy.Service, *memoryLedger) {
	ledger := newMemoryLedger(userIDs...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return buddy.NewService(ledger, ledger, logger), ledger
}

/*
TestService_SendRequest covers self-requests, missing targets, and the
symmetric duplicate rule.
*/
func TestService_SendRequest(t *testing.T) {
	ctx := context.Background()
	alice, bob := uuidv7.New(), uuidv7.New()
	service, _ := newTestService(alice, bob)

	row, err := service.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, row.Accepted)
	assert.Nil(t, row.AcceptedAt, "a pending row must not carry an acceptance time")
	assert.Equal(t, alice, row.RequesterID)
	assert.Equal(t, bob, row.AddresseeID)

	t.Run("self_request", func(t *testing.T) {
		_, err := service.SendRequest(ctx, alice, alice)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing_target", func(t *testing.T) {
		_, err := service.SendRequest(ctx, alice, uuidv7.New())
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("duplicate_same_direction", func(t *testing.T) {
		_, err := service.SendRequest(ctx, alice, bob)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("duplicate_reverse_direction", func(t *testing.T) {
		_, err := service.SendRequest(ctx, bob, alice)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code, "B→A is the same pair as A→B")
	})
}

/*
TestService_AcceptRequest verifies the addressee-only guard and the
Accepted/AcceptedAt coupling.
*/
func TestService_AcceptRequest(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := uuidv7.New(), uuidv7.New(), uuidv7.New()
	service, _ := newTestService(alice, bob, carol)

	row, err := service.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	t.Run("requester_cannot_accept", func(t *testing.T) {
		_, err := service.AcceptRequest(ctx, row.ID, alice)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("outsider_cannot_accept", func(t *testing.T) {
		_, err := service.AcceptRequest(ctx, row.ID, carol)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("addressee_accepts", func(t *testing.T) {
		accepted, err := service.AcceptRequest(ctx, row.ID, bob)
		require.NoError(t, err)
		assert.True(t, accepted.Accepted)
		require.NotNil(t, accepted.AcceptedAt, "acceptance must stamp AcceptedAt")
	})

	t.Run("double_accept", func(t *testing.T) {
		_, err := service.AcceptRequest(ctx, row.ID, bob)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestService_RejectRequest verifies that rejection deletes the row so the
requester can try again later.
*/
func TestService_RejectRequest(t *testing.T) {
	ctx := context.Background()
	alice, bob := uuidv7.New(), uuidv7.New()
	service, ledger := newTestService(alice, bob)

	row, err := service.SendRequest(ctx, alice, bob)
	require.NoError(t, err)

	t.Run("requester_cannot_reject", func(t *testing.T) {
		err := service.RejectRequest(ctx, row.ID, alice)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	require.NoError(t, service.RejectRequest(ctx, row.ID, bob))
	assert.Empty(t, ledger.rows, "rejection leaves no trace")

	t.Run("requester_can_retry_after_rejection", func(t *testing.T) {
		_, err := service.SendRequest(ctx, alice, bob)
		require.NoError(t, err)
	})
}

/*
TestService_Remove verifies that either party, and only a party, can remove
a relationship in any state.
*/
func TestService_Remove(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := uuidv7.New(), uuidv7.New(), uuidv7.New()

	t.Run("outsider_cannot_remove", func(t *testing.T) {
		service, _ := newTestService(alice, bob, carol)
		row, err := service.SendRequest(ctx, alice, bob)
		require.NoError(t, err)

		err = service.Remove(ctx, row.ID, carol)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("requester_removes_pending", func(t *testing.T) {
		service, ledger := newTestService(alice, bob)
		row, err := service.SendRequest(ctx, alice, bob)
		require.NoError(t, err)

		require.NoError(t, service.Remove(ctx, row.ID, alice))
		assert.Empty(t, ledger.rows)
	})

	t.Run("addressee_removes_accepted", func(t *testing.T) {
		service, ledger := newTestService(alice, bob)
		row, err := service.SendRequest(ctx, alice, bob)
		require.NoError(t, err)
		_, err = service.AcceptRequest(ctx, row.ID, bob)
		require.NoError(t, err)

		require.NoError(t, service.Remove(ctx, row.ID, bob))
		assert.Empty(t, ledger.rows)
	})
}

/*
TestService_Listings resolves each listing to the correct counterpart.
*/
func TestService_Listings(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := uuidv7.New(), uuidv7.New(), uuidv7.New()
	service, _ := newTestService(alice, bob, carol)

	// alice→bob accepted, carol→alice pending.
	accepted, err := service.SendRequest(ctx, alice, bob)
	require.NoError(t, err)
	_, err = service.AcceptRequest(ctx, accepted.ID, bob)
	require.NoError(t, err)

	pending, err := service.SendRequest(ctx, carol, alice)
	require.NoError(t, err)

	t.Run("accepted_resolves_other_user", func(t *testing.T) {
		views, err := service.ListAccepted(ctx, alice)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, bob, views[0].UserID)

		views, err = service.ListAccepted(ctx, bob)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, alice, views[0].UserID, "the same row reads symmetrically from both sides")
	})

	t.Run("incoming", func(t *testing.T) {
		views, err := service.ListIncoming(ctx, alice)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, pending.ID, views[0].ID)
		assert.Equal(t, carol, views[0].UserID)
	})

	t.Run("outgoing", func(t *testing.T) {
		views, err := service.ListOutgoing(ctx, carol)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, alice, views[0].UserID)
	})

	t.Run("pending_rows_are_not_accepted_listings", func(t *testing.T) {
		views, err := service.ListAccepted(ctx, carol)
		require.NoError(t, err)
		assert.Empty(t, views)
	})
}
