package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
		OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusOutForDelivery: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted:      {},
		OrderStatusCancelled:      {},
	}

	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusCompleted,
		OrderStatusCancelled,
	}

	for from, targets := range allowed {
		allowedSet := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			allowedSet[to] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			require.Equal(t, allowedSet[to], got, "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	require.True(t, OrderStatusCompleted.IsTerminal())
	require.True(t, OrderStatusCancelled.IsTerminal())
	require.False(t, OrderStatusPending.IsTerminal())
	require.False(t, OrderStatusOutForDelivery.IsTerminal())

	// terminal states reject every outgoing edge, including self-loops
	all := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusCompleted,
		OrderStatusCancelled,
	}
	for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		for _, to := range all {
			require.False(t, terminal.CanTransitionTo(to), "%s -> %s", terminal, to)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	require.True(t, OrderStatusPending.Valid())
	require.True(t, OrderStatusOutForDelivery.Valid())
	require.False(t, OrderStatus("shipped").Valid())
	require.False(t, OrderStatus("").Valid())
}
