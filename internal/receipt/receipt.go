// Package receipt renders the order confirmation email.
package receipt

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strconv"
	texttemplate "text/template"

	"github.com/sebasr/ticket-notifier/internal/email"
	"github.com/sebasr/ticket-notifier/internal/models"
)

const (
	subjectFormat = "Ваши билеты - Заказ %s"
	quantityUnit  = "шт."
	currency      = "₽"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/receipt.html.tmpl"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/receipt.txt.tmpl"))
)

// Sender identifies the From address of every receipt
type Sender struct {
	Address string
	Name    string
}

type view struct {
	OrderID  string
	Name     string
	Rows     []row
	Total    string
	Unit     string
	Currency string
}

type row struct {
	Event    string
	Date     string
	Venue    string
	Quantity string
	Subtotal string
}

// Render builds the receipt message for req. Rows follow the order of
// req.Tickets and the total is req.TotalPrice as sent by the caller.
func Render(req *models.NotificationRequest, from Sender) (*email.Message, error) {
	v := view{
		OrderID:  req.OrderID,
		Name:     req.Name,
		Rows:     make([]row, 0, len(req.Tickets)),
		Total:    req.Total(),
		Unit:     quantityUnit,
		Currency: currency,
	}
	for _, t := range req.Tickets {
		v.Rows = append(v.Rows, row{
			Event:    t.Event,
			Date:     t.Date,
			Venue:    t.Venue,
			Quantity: FormatAmount(t.Quantity),
			Subtotal: FormatAmount(t.Subtotal()),
		})
	}

	var html, text bytes.Buffer
	if err := htmlTemplate.Execute(&html, v); err != nil {
		return nil, fmt.Errorf("failed to render html receipt: %w", err)
	}
	if err := textTemplate.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("failed to render text receipt: %w", err)
	}

	return &email.Message{
		Subject:  Subject(req.OrderID),
		HTMLBody: html.String(),
		TextBody: text.String(),
		From:     from.Address,
		FromName: from.Name,
		To:       req.Email,
	}, nil
}

// Subject returns the subject line for an order
func Subject(orderID string) string {
	return fmt.Sprintf(subjectFormat, orderID)
}

// FormatAmount prints an amount as the shortest exact decimal, 200 or 201.5
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
