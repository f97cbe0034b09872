package email

import (
	"context"
	"log"
)

// ConsoleService is an email service that logs emails to the console
// This is useful for local development and testing
type ConsoleService struct{}

// NewConsoleService creates a new console-based email service
func NewConsoleService() *ConsoleService {
	return &ConsoleService{}
}

// Send logs the rendered message to the console
func (s *ConsoleService) Send(_ context.Context, msg *Message) error {
	log.Println("========================================")
	log.Println("📧 ORDER CONFIRMATION EMAIL (Console Mode)")
	log.Println("========================================")
	log.Printf("To: %s", msg.To)
	if msg.FromName != "" {
		log.Printf("From: %s <%s>", msg.FromName, msg.From)
	} else {
		log.Printf("From: %s", msg.From)
	}
	log.Printf("Subject: %s", msg.Subject)
	log.Println("----------------------------------------")
	if msg.TextBody != "" {
		log.Println(msg.TextBody)
	} else {
		log.Println(msg.HTMLBody)
	}
	log.Println("========================================")

	return nil
}
