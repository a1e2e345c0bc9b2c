package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
)

// BuildOrderMessage is the hand-off text a new checkout sends to the shop's
// WhatsApp: a human confirms the order from it, there is no payment gateway.
func BuildOrderMessage(o *model.Order) string {
	var items strings.Builder
	for _, item := range o.Items {
		fmt.Fprintf(&items, "• %s (%s, %s) x%d - ₹%.0f\n",
			item.ProductName, item.Size, item.Color, item.Qty, item.UnitPrice*float64(item.Qty))
	}

	address := "Not provided"
	if a := o.ShippingAddress; a != nil {
		address = fmt.Sprintf("%s, %s\n%s, %s - %s", a.Line1, a.Line2, a.City, a.State, a.PostalCode)
	}

	return fmt.Sprintf(`🛒 *New Order - Naveen Textiles*

📦 *Order ID:* %s

👤 *Customer:* %s
📱 *Phone:* %s

📍 *Delivery Address:*
%s

🛍️ *Items:*
%s
💰 *Total:* ₹%.0f
💳 *Payment:* Cash on Delivery

Please confirm this order. 🙏`,
		o.OrderNumber, o.CustomerName, o.CustomerPhone, address, items.String(), o.Total)
}

// BuildStatusMessage returns the customer notification for a status change,
// or ok=false when the status has no customer-facing message.
func BuildStatusMessage(o *model.Order, newStatus model.OrderStatus) (string, bool) {
	switch newStatus {
	case model.OrderStatusConfirmed:
		return fmt.Sprintf("✅ *Order Confirmed!*\n\nHi %s,\n\nYour order *%s* has been confirmed!\n\nWe're preparing your items for dispatch.\n\nThank you for shopping with Naveen Textiles! 🙏",
			o.CustomerName, o.OrderNumber), true
	case model.OrderStatusPacked:
		return fmt.Sprintf("📦 *Order Packed!*\n\nHi %s,\n\nGreat news! Your order *%s* has been packed and is ready for shipping.\n\nYou'll receive tracking details soon.\n\n- Naveen Textiles",
			o.CustomerName, o.OrderNumber), true
	case model.OrderStatusShipped:
		return fmt.Sprintf("🚚 *Order Shipped!*\n\nHi %s,\n\nYour order *%s* is on its way!\n\nExpected delivery: 3-5 business days\n\nTrack your order or contact us for updates.\n\n- Naveen Textiles",
			o.CustomerName, o.OrderNumber), true
	case model.OrderStatusDelivered:
		return fmt.Sprintf("🎉 *Order Delivered!*\n\nHi %s,\n\nYour order *%s* has been delivered!\n\nWe hope you love your purchase. If you have any questions, feel free to reach out.\n\nThank you for choosing Naveen Textiles! ⭐",
			o.CustomerName, o.OrderNumber), true
	case model.OrderStatusCancelled:
		return fmt.Sprintf("❌ *Order Cancelled*\n\nHi %s,\n\nYour order *%s* has been cancelled.\n\nIf you didn't request this cancellation or have questions, please contact us.\n\n- Naveen Textiles",
			o.CustomerName, o.OrderNumber), true
	}
	return "", false
}

// WhatsAppURL builds a wa.me link for an Indian number, prefixing the country
// code when the caller passed a bare 10-digit number.
func WhatsAppURL(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	if !strings.HasPrefix(clean, "91") {
		clean = "91" + clean
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", clean, url.QueryEscape(message))
}
