package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPacked, false},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusPacked, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusShipped, false},
		{OrderStatusPacked, OrderStatusShipped, true},
		{OrderStatusPacked, OrderStatusCancelled, true},
		{OrderStatusPacked, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusSelfTransitionNeverAllowed(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.Falsef(t, s.CanTransitionTo(s), "%s -> %s", s, s)
	}
}

func TestOrderStatusTerminalStatesHaveNoEdges(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusCancelled, OrderStatusDelivered} {
		require.True(t, terminal.IsTerminal())
		for _, target := range ValidStatuses() {
			assert.Falsef(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
		}
	}
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, OrderStatus("REFUNDED").IsValid())
	assert.False(t, OrderStatus("pending").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestAddressScanRoundTrip(t *testing.T) {
	in := Address{Line1: "12 Market Rd", City: "Coimbatore", State: "TN", PostalCode: "641001"}

	v, err := in.Value()
	require.NoError(t, err)

	var out Address
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	var fromNil Address
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, Address{}, fromNil)

	assert.Error(t, out.Scan(42))
}

func TestVariantAvailable(t *testing.T) {
	v := ProductVariant{StockQty: 10, ReservedQty: 3}
	assert.Equal(t, 7, v.Available())
}
