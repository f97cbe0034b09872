package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNotificationRequest(t *testing.T) {
	t.Run("extracts fields and keeps ticket order", func(t *testing.T) {
		req, err := DecodeNotificationRequest([]byte(`{
			"email": "a@b.com",
			"orderId": "X1",
			"name": "Ann",
			"tickets": [
				{"event": "B", "date": "2024-05-02", "venue": "Club", "quantity": 1, "price": 50},
				{"event": "A", "date": "2024-05-01", "venue": "Hall", "quantity": 2, "price": 100}
			],
			"totalPrice": 250
		}`))
		require.NoError(t, err)

		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "X1", req.OrderID)
		assert.Equal(t, "Ann", req.Name)
		require.Len(t, req.Tickets, 2)
		assert.Equal(t, "B", req.Tickets[0].Event)
		assert.Equal(t, "A", req.Tickets[1].Event)
		assert.Equal(t, 2.0, req.Tickets[1].Quantity)
		assert.Equal(t, "250", req.Total())
	})

	t.Run("applies defaults for optional fields", func(t *testing.T) {
		req, err := DecodeNotificationRequest([]byte(`{"email":"a@b.com","orderId":"X1"}`))
		require.NoError(t, err)

		assert.Empty(t, req.Name)
		assert.NotNil(t, req.Tickets)
		assert.Empty(t, req.Tickets)
		assert.Equal(t, "0", req.Total())
	})

	t.Run("ignores unknown fields", func(t *testing.T) {
		_, err := DecodeNotificationRequest([]byte(`{"email":"a@b.com","orderId":"X1","coupon":"SPRING"}`))
		assert.NoError(t, err)
	})

	t.Run("accepts integral quantities written as decimals", func(t *testing.T) {
		req, err := DecodeNotificationRequest([]byte(`{"email":"a@b.com","orderId":"X1","tickets":[{"event":"A","quantity":2.0,"price":100}],"totalPrice":200}`))
		require.NoError(t, err)

		require.Len(t, req.Tickets, 1)
		assert.Equal(t, 2.0, req.Tickets[0].Quantity)
		assert.Equal(t, 200.0, req.Tickets[0].Subtotal())
	})

	t.Run("orderId format is not validated", func(t *testing.T) {
		req, err := DecodeNotificationRequest([]byte(`{"email":"a@b.com","orderId":"  weird id #42 "}`))
		require.NoError(t, err)
		assert.Equal(t, "  weird id #42 ", req.OrderID)
	})
}

func TestDecodeNotificationRequest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind ValidationErrorKind
	}{
		{name: "missing email", body: `{"orderId":"X1"}`, wantKind: MissingRequiredField},
		{name: "missing order id", body: `{"email":"a@b.com"}`, wantKind: MissingRequiredField},
		{name: "whitespace body", body: " \n\t", wantKind: MissingRequiredField},
		{name: "empty email", body: `{"email":"","orderId":"X1"}`, wantKind: MissingRequiredField},
		{name: "null order id", body: `{"email":"a@b.com","orderId":null}`, wantKind: MissingRequiredField},
		{name: "missing email with mistyped total", body: `{"orderId":"X1","totalPrice":"200 RUB"}`, wantKind: MissingRequiredField},
		{name: "missing email with fractional quantity", body: `{"orderId":"X1","tickets":[{"event":"A","quantity":2.5,"price":100}]}`, wantKind: MissingRequiredField},
		{name: "missing order id with mistyped tickets", body: `{"email":"a@b.com","tickets":"two"}`, wantKind: MissingRequiredField},
		{name: "syntax error", body: `{"email":`, wantKind: MalformedBody},
		{name: "not an object", body: `["a@b.com","X1"]`, wantKind: MalformedBody},
		{name: "fractional quantity", body: `{"email":"a@b.com","orderId":"X1","tickets":[{"event":"A","quantity":2.5,"price":100}]}`, wantKind: MalformedBody},
		{name: "wrong type", body: `{"email":42,"orderId":"X1"}`, wantKind: MalformedBody},
		{name: "total price is not a number", body: `{"email":"a@b.com","orderId":"X1","totalPrice":"lots"}`, wantKind: MalformedBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := DecodeNotificationRequest([]byte(tt.body))

			assert.Nil(t, req)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantKind, validationErr.Kind)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	missing := &ValidationError{Kind: MissingRequiredField, Err: errors.New("Key: 'NotificationRequest.Email'")}
	assert.Equal(t, "Email and orderId are required", missing.Error())

	malformed := &ValidationError{Kind: MalformedBody, Err: errors.New("unexpected EOF")}
	assert.Equal(t, "Invalid JSON body: unexpected EOF", malformed.Error())
}
