package notifier

import (
	"testing"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *model.Order {
	return &model.Order{
		BaseModel:     model.BaseModel{ID: "order-1"},
		OrderNumber:   "NT-ABC123XYZ",
		CustomerName:  "Priya",
		CustomerPhone: "9876501234",
		Total:         950,
		ShippingAddress: &model.Address{
			Line1: "12 Market Rd", Line2: "Near Bus Stand",
			City: "Coimbatore", State: "TN", PostalCode: "641001",
		},
		Items: []model.OrderItem{
			{ProductName: "Cotton Saree", Size: "Free", Color: "Red", Qty: 2, UnitPrice: 450},
		},
	}
}

func TestBuildOrderMessage(t *testing.T) {
	msg := BuildOrderMessage(sampleOrder())

	assert.Contains(t, msg, "New Order - Naveen Textiles")
	assert.Contains(t, msg, "NT-ABC123XYZ")
	assert.Contains(t, msg, "Priya")
	assert.Contains(t, msg, "9876501234")
	assert.Contains(t, msg, "Cotton Saree (Free, Red) x2 - ₹900")
	assert.Contains(t, msg, "Coimbatore, TN - 641001")
	assert.Contains(t, msg, "₹950")
	assert.Contains(t, msg, "Cash on Delivery")
}

func TestBuildOrderMessageWithoutAddress(t *testing.T) {
	o := sampleOrder()
	o.ShippingAddress = nil
	assert.Contains(t, BuildOrderMessage(o), "Not provided")
}

func TestBuildStatusMessage(t *testing.T) {
	o := sampleOrder()

	for _, status := range []model.OrderStatus{
		model.OrderStatusConfirmed,
		model.OrderStatusPacked,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	} {
		msg, ok := BuildStatusMessage(o, status)
		require.Truef(t, ok, "expected message for %s", status)
		assert.Contains(t, msg, o.CustomerName)
		assert.Contains(t, msg, o.OrderNumber)
	}

	_, ok := BuildStatusMessage(o, model.OrderStatusPending)
	assert.False(t, ok)
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/919876543210?text=hello+there",
		WhatsAppURL("+91 98765 43210", "hello there"))

	// Bare 10-digit numbers get the country code prefixed.
	assert.Equal(t,
		"https://wa.me/919876543210?text=hi",
		WhatsAppURL("9876543210", "hi"))
}
