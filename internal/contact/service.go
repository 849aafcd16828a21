package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"docbuilder-backend/internal/shared/metrics"
	"docbuilder-backend/internal/shared/telemetry"
)

const maxMessageLength = 5000

// Input is a contact form submission as sent by clients.
type Input struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Subject  string `json:"subject" binding:"max=200"`
	Message  string `json:"message" binding:"required"`
	WhatsApp string `json:"whatsapp" binding:"max=32"`
}

// Receipt reports what happened to a submission.
type Receipt struct {
	ID        string `json:"id"`
	Delivered bool   `json:"delivered"`
}

// Service stores contact messages and forwards them by email.
type Service struct {
	Repo   Repo
	Mailer Mailer
}

// Submit stores the message first; a delivery failure is logged and
// reported in the receipt without losing the message.
func (s *Service) Submit(ctx context.Context, in Input) (Receipt, error) {
	msg, err := normalize(in)
	if err != nil {
		return Receipt{}, err
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{ID: msg.ID}
	if s.Mailer == nil {
		metrics.IncContact(false)
		return receipt, nil
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		metrics.IncContact(false)
		telemetry.Warn("contact.send_failed", map[string]any{
			"contact_id": msg.ID,
			"error":      err.Error(),
		})
		return receipt, nil
	}
	metrics.IncContact(true)
	receipt.Delivered = true
	return receipt, nil
}

func normalize(in Input) (Message, error) {
	msg := Message{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
		WhatsApp:  strings.TrimSpace(in.WhatsApp),
		CreatedAt: time.Now().UTC(),
	}
	if msg.Name == "" || msg.Message == "" {
		return Message{}, fmt.Errorf("%w: name and message are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return Message{}, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if utf8.RuneCountInString(msg.Message) > maxMessageLength {
		return Message{}, fmt.Errorf("%w: message too long", ErrInvalidInput)
	}
	if msg.Subject == "" {
		msg.Subject = "Contact form"
	}
	return msg, nil
}
