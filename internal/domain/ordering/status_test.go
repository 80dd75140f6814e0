package ordering_test

import (
	"testing"

	"github.com/jhoicas/menu-admin-api/internal/domain"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/domain/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	s, err := ordering.ParseTarget("delivered")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, s)

	s, err = ordering.ParseTarget("Preparing")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPreparing, s)

	for _, bad := range []string{"READY", "cancelled", "pending", "", "foo"} {
		_, err := ordering.ParseTarget(bad)
		assert.ErrorIs(t, err, domain.ErrOrderStatusNotAllowed, bad)
	}
}

func TestTransition(t *testing.T) {
	cases := []struct {
		name      string
		current   entity.OrderStatus
		requested entity.OrderStatus
		changed   bool
		err       error
	}{
		{"preparing a delivered", entity.OrderStatusPreparing, entity.OrderStatusDelivered, true, nil},
		{"mismo estado es no-op", entity.OrderStatusPreparing, entity.OrderStatusPreparing, false, nil},
		{"mismo estado sin distinguir mayúsculas", "delivered", entity.OrderStatusDelivered, false, nil},
		{"delivered es terminal", entity.OrderStatusDelivered, entity.OrderStatusPreparing, false, domain.ErrOrderAlreadyDelivered},
		{"cancelled es terminal", entity.OrderStatusCancelled, entity.OrderStatusDelivered, false, domain.ErrOrderCancelled},
		{"pending a preparing", entity.OrderStatusPending, entity.OrderStatusPreparing, true, nil},
		{"ready a delivered", entity.OrderStatusReady, entity.OrderStatusDelivered, true, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := ordering.Transition(tc.current, tc.requested)
			assert.Equal(t, tc.changed, changed)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	assert.ErrorIs(t, ordering.CanDelete(entity.OrderStatusDelivered), domain.ErrOrderDeliveredNotDeletable)
	assert.NoError(t, ordering.CanDelete(entity.OrderStatusPreparing))
	assert.NoError(t, ordering.CanDelete(entity.OrderStatusCancelled))
}
