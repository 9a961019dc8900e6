package order_test

import (
	"testing"
	"time"

	"freelance/internal/core/domain/model/kernel"
	"freelance/internal/core/domain/model/order"
	"freelance/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newDetails(t *testing.T) order.Details {
	t.Helper()
	d, err := order.NewDetails("Сделать сайт", "landing page", "small", "Go", 5000)
	require.NoError(t, err)
	return d
}

func newPersistedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(1, newDetails(t), now)
	require.NoError(t, err)
	o.IdentifyAs(14)
	return o
}

func assignedOrder(t *testing.T, performerID kernel.ID) *order.Order {
	t.Helper()
	o := newPersistedOrder(t)
	require.NoError(t, o.AssignPerformer(performerID, now))
	o.PullEvents()
	return o
}

func assertInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, o.Status().ValidateCanHavePerformer(o.HasPerformer()))
}

func TestNewDetails(t *testing.T) {
	t.Run("should trim and keep fields", func(t *testing.T) {
		d, err := order.NewDetails("  Bot  ", " desc ", "scope", "Go, Postgres", 0)

		require.NoError(t, err)
		assert.Equal(t, "Bot", d.Title())
		assert.Equal(t, "desc", d.Description())
		assert.Equal(t, "Go, Postgres", d.TechStack())
	})

	t.Run("should reject blank title and negative budget", func(t *testing.T) {
		_, err := order.NewDetails(" ", "", "", "", -1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should publish active order without performer", func(t *testing.T) {
		o, err := order.NewOrder(1, newDetails(t), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Active, o.Status())
		assert.Nil(t, o.Performer())
		assert.False(t, o.IsDeletedByCustomer())
		assert.Equal(t, now, o.Timeline().PublishedAt)
		assert.True(t, o.ID().IsZero())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should fail without customer", func(t *testing.T) {
		o, err := order.NewOrder(0, newDetails(t), now)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject performer on active order", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 1, newDetails(t), kernel.IDPtr(2), order.Active, false,
			order.Timeline{PublishedAt: now}, 0, 0)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should reject done order without performer", func(t *testing.T) {
		_, err := order.RestoreOrder(1, 1, newDetails(t), nil, order.Done, false,
			order.Timeline{PublishedAt: now}, 0, 0)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should restore consistent state", func(t *testing.T) {
		o, err := order.RestoreOrder(9, 1, newDetails(t), kernel.IDPtr(2), order.OnCheck, true,
			order.Timeline{PublishedAt: now}, 3, 7)

		require.NoError(t, err)
		assert.Equal(t, kernel.ID(9), o.ID())
		assert.True(t, o.IsAssignedTo(2))
		assert.True(t, o.IsDeletedByCustomer())
		assert.Equal(t, 3, o.ReplyBind())
		assert.Equal(t, 7, o.Version())
	})
}

func TestOrder_Deactivate(t *testing.T) {
	t.Run("should deactivate and activate again", func(t *testing.T) {
		o := newPersistedOrder(t)

		require.NoError(t, o.Deactivate())
		assert.Equal(t, order.Inactive, o.Status())
		require.ErrorIs(t, o.AcceptsReplies(), errs.ErrInvalidState)

		require.NoError(t, o.Activate())
		assert.Equal(t, order.Active, o.Status())
	})

	t.Run("should refuse to deactivate assigned order", func(t *testing.T) {
		o := assignedOrder(t, 2)

		err := o.Deactivate()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, order.InProcess, o.Status())
	})
}

func TestOrder_AssignPerformer(t *testing.T) {
	t.Run("should take order into work and record event", func(t *testing.T) {
		o := newPersistedOrder(t)

		require.NoError(t, o.AssignPerformer(2, now))

		assert.Equal(t, order.InProcess, o.Status())
		assert.True(t, o.IsAssignedTo(2))
		assert.Equal(t, &now, o.Timeline().StartedAt)
		assertInvariant(t, o)

		events := o.PullEvents()
		require.Len(t, events, 1)
		assigned, ok := events[0].(order.PerformerAssigned)
		require.True(t, ok)
		assert.Equal(t, kernel.ID(14), assigned.OrderID)
		assert.Equal(t, kernel.ID(1), assigned.CustomerID)
		assert.Equal(t, kernel.ID(2), assigned.PerformerID)
		assert.Equal(t, "Сделать сайт", assigned.Title)
	})

	t.Run("should reject second assignment", func(t *testing.T) {
		o := assignedOrder(t, 2)

		require.ErrorIs(t, o.AssignPerformer(3, now), errs.ErrInvalidState)
		assert.True(t, o.IsAssignedTo(2))
	})

	t.Run("should reject deleted order", func(t *testing.T) {
		o := newPersistedOrder(t)
		o.SoftDeleteByCustomer()

		require.ErrorIs(t, o.AssignPerformer(2, now), errs.ErrInvalidState)
	})
}

func TestOrder_RefusePerformer(t *testing.T) {
	t.Run("should fail fast without performer", func(t *testing.T) {
		o := newPersistedOrder(t)

		_, err := o.RefusePerformer(kernel.Customer, now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Empty(t, o.PullEvents())
	})

	for _, from := range []order.Status{order.InProcess, order.OnCheck} {
		t.Run("should return "+from.String()+" order to active", func(t *testing.T) {
			o := assignedOrder(t, 2)
			require.NoError(t, o.SetOnCheck(from == order.OnCheck))

			released, err := o.RefusePerformer(kernel.Performer, now)

			require.NoError(t, err)
			assert.Equal(t, kernel.ID(2), released)
			assert.Equal(t, order.Active, o.Status())
			assert.Nil(t, o.Performer())
			assertInvariant(t, o)

			events := o.PullEvents()
			require.Len(t, events, 1)
			refused := events[0].(order.PerformerRefused)
			assert.Equal(t, kernel.Performer, refused.RefusedBy)
			assert.Equal(t, kernel.ID(2), refused.PerformerID)
		})
	}

	t.Run("should not refuse done order", func(t *testing.T) {
		o := assignedOrder(t, 2)
		require.NoError(t, o.Complete(now))

		_, err := o.RefusePerformer(kernel.Customer, now)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.True(t, o.IsAssignedTo(2))
	})
}

func TestOrder_CompletionCycle(t *testing.T) {
	o := assignedOrder(t, 2)

	require.ErrorIs(t, o.SubmitForCheck(3, now), errs.ErrInvalidState)

	require.NoError(t, o.SubmitForCheck(2, now))
	assert.Equal(t, order.OnCheck, o.Status())

	require.NoError(t, o.RequestCorrection(2, now))
	assert.Equal(t, order.InProcess, o.Status())
	require.ErrorIs(t, o.RequestCorrection(2, now), errs.ErrInvalidState)

	require.NoError(t, o.SubmitForCheck(2, now))
	require.NoError(t, o.Complete(now))
	assert.Equal(t, order.Done, o.Status())
	assert.Equal(t, &now, o.Timeline().EndedAt)
	assertInvariant(t, o)

	var names []string
	for _, e := range o.PullEvents() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{
		order.EventWorkSubmitted,
		order.EventCorrectionRequested,
		order.EventWorkSubmitted,
		order.EventOrderCompleted,
	}, names)
}

func TestOrder_SetOnCheck(t *testing.T) {
	t.Run("should toggle without events", func(t *testing.T) {
		o := assignedOrder(t, 2)

		require.NoError(t, o.SetOnCheck(true))
		assert.Equal(t, order.OnCheck, o.Status())
		require.NoError(t, o.SetOnCheck(true))
		require.NoError(t, o.SetOnCheck(false))
		assert.Equal(t, order.InProcess, o.Status())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("should reject unassigned order", func(t *testing.T) {
		require.ErrorIs(t, newPersistedOrder(t).SetOnCheck(true), errs.ErrInvalidState)
	})
}

func TestOrder_SoftDeleteKeepsStatus(t *testing.T) {
	o := assignedOrder(t, 2)
	require.NoError(t, o.Complete(now))

	o.SoftDeleteByCustomer()
	o.SoftDeleteByCustomer()

	assert.True(t, o.IsDeletedByCustomer())
	assert.Equal(t, order.Done, o.Status())
	assert.True(t, o.IsAssignedTo(2))
}
