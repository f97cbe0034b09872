package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sebasr/ticket-notifier/internal/models"
)

// ValidationErrorKind distinguishes an unreadable body from a readable body
// that lacks required fields
type ValidationErrorKind int

const (
	// MalformedBody means the body is not a JSON object of the expected shape
	MalformedBody ValidationErrorKind = iota
	// MissingRequiredField means email or orderId is absent or empty
	MissingRequiredField
)

// ValidationError is returned by DecodeNotificationRequest
type ValidationError struct {
	Kind ValidationErrorKind
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Kind == MissingRequiredField {
		return "Email and orderId are required"
	}
	return "Invalid JSON body: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// requiredFields is read before the full request so that a missing email or
// orderId is reported even when other fields are mistyped
type requiredFields struct {
	Email   interface{} `json:"email"`
	OrderID interface{} `json:"orderId"`
}

func (f requiredFields) missing() bool {
	return isBlank(f.Email) || isBlank(f.OrderID)
}

// isBlank matches absent, null and empty string values.
// Present values of another type fall through to the typed decode.
func isBlank(v interface{}) bool {
	s, isString := v.(string)
	return v == nil || (isString && s == "")
}

// DecodeNotificationRequest parses and validates a request body.
// An empty body is treated as an empty JSON object. Missing required fields
// are reported before any type mismatch in the remaining fields.
func DecodeNotificationRequest(body []byte) (*models.NotificationRequest, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var required requiredFields
	if err := json.Unmarshal(body, &required); err != nil {
		return nil, &ValidationError{Kind: MalformedBody, Err: err}
	}
	if required.missing() {
		return nil, &ValidationError{Kind: MissingRequiredField, Err: errors.New("email and orderId must be non-empty strings")}
	}

	var req models.NotificationRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, &ValidationError{Kind: MissingRequiredField, Err: err}
		}
		return nil, &ValidationError{Kind: MalformedBody, Err: err}
	}

	for i, t := range req.Tickets {
		if !t.HasWholeQuantity() {
			return nil, &ValidationError{
				Kind: MalformedBody,
				Err:  fmt.Errorf("tickets[%d].quantity must be a whole number, got %s", i, strconv.FormatFloat(t.Quantity, 'f', -1, 64)),
			}
		}
	}

	if req.Tickets == nil {
		req.Tickets = []models.TicketLine{}
	}
	return &req, nil
}
