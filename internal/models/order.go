// Package models contains data models for the ticket notifier.
package models

import (
	"encoding/json"
	"math"
)

// NotificationRequest represents an order confirmation request from the
// order processing system
type NotificationRequest struct {
	// Recipient address, the receipt is never sent anywhere else
	Email string `json:"email" binding:"required"`

	// Order identifier, used verbatim in subject and body
	OrderID string `json:"orderId" binding:"required"`

	// Customer name for the greeting, may be empty
	Name string `json:"name"`

	// Purchased tickets in display order
	Tickets []TicketLine `json:"tickets"`

	// Order total exactly as the caller sent it. It is never recomputed
	// from the ticket lines.
	TotalPrice json.Number `json:"totalPrice"`
}

// TicketLine represents one purchased item on the receipt
type TicketLine struct {
	Event    string  `json:"event"`
	Date     string  `json:"date"`
	Venue    string  `json:"venue"`
	Quantity float64 `json:"quantity"` // Whole number, 2 and 2.0 alike
	Price    float64 `json:"price"`
}

// Subtotal returns the line amount, price times quantity
func (t TicketLine) Subtotal() float64 {
	return t.Price * t.Quantity
}

// HasWholeQuantity reports whether Quantity is an integral number of tickets
func (t TicketLine) HasWholeQuantity() bool {
	return t.Quantity == math.Trunc(t.Quantity)
}

// Total returns the caller-supplied order total, "0" when it was omitted
func (r *NotificationRequest) Total() string {
	if r.TotalPrice == "" {
		return "0"
	}
	return r.TotalPrice.String()
}
