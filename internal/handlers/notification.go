// Package handlers contains HTTP request handlers for the ticket notifier.
package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/ticket-notifier/internal/email"
	"github.com/sebasr/ticket-notifier/internal/receipt"
)

// NotificationHandler sends order confirmation receipts
type NotificationHandler struct {
	emailService email.Service
	sender       receipt.Sender
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(emailService email.Service, sender receipt.Sender) *NotificationHandler {
	return &NotificationHandler{
		emailService: emailService,
		sender:       sender,
	}
}

// Handle runs one order confirmation through validation, rendering and delivery
// OPTIONS|POST /api/v1/send-email
func (h *NotificationHandler) Handle(c *gin.Context) {
	if !gate(c) {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	req, err := DecodeNotificationRequest(body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := receipt.Render(req, h.sender)
	if err != nil {
		log.Printf("Failed to render receipt for order %s: %v", req.OrderID, err)
		respondError(c, http.StatusInternalServerError, "Failed to render email: "+err.Error())
		return
	}

	if err := h.emailService.Send(c.Request.Context(), msg); err != nil {
		log.Printf("Order %s confirmation not sent (request %s): %v", req.OrderID, c.GetString("RequestID"), err)
		status, message := deliveryStatus(err)
		respondError(c, status, message)
		return
	}

	log.Printf("Order %s confirmation sent (request %s)", req.OrderID, c.GetString("RequestID"))
	respondSent(c)
}

// gate dispatches on the request method. It reports whether the request
// should continue to validation; otherwise the response is already written.
func gate(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodPost:
		return true
	case http.MethodOptions:
		respondPreflight(c)
		return false
	default:
		MethodNotAllowed(c)
		return false
	}
}
