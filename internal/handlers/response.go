package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/ticket-notifier/internal/email"
)

// Response messages
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgMissingFields    = "Email and orderId are required"
	MsgNotConfigured    = "SMTP settings not configured"
	MsgSendFailedPrefix = "Failed to send email: "
	MsgSent             = "Email sent successfully"
)

// ErrorResponse represents every failed response body
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents the delivered response body
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// allowAnyOrigin sets the CORS origin header carried by every response
func allowAnyOrigin(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
}

// respondPreflight answers a CORS preflight with an empty body
func respondPreflight(c *gin.Context) {
	allowAnyOrigin(c)
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Max-Age", "86400")
	c.Status(http.StatusOK)
}

// respondError writes the error body with the CORS origin header and stops the chain
func respondError(c *gin.Context, status int, message string) {
	allowAnyOrigin(c)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

// respondSent writes the delivered response
func respondSent(c *gin.Context) {
	allowAnyOrigin(c)
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: MsgSent})
}

// deliveryStatus maps a delivery outcome to a status code and error message
func deliveryStatus(err error) (int, string) {
	var deliveryErr *email.DeliveryError
	switch {
	case errors.Is(err, email.ErrNotConfigured):
		return http.StatusInternalServerError, MsgNotConfigured
	case errors.As(err, &deliveryErr):
		return http.StatusInternalServerError, MsgSendFailedPrefix + deliveryErr.Reason
	default:
		return http.StatusInternalServerError, MsgSendFailedPrefix + err.Error()
	}
}

// MethodNotAllowed answers methods the router has no handler for
func MethodNotAllowed(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
