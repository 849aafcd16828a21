package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMailerNotConfigured is returned when no email service credentials are set.
var ErrMailerNotConfigured = errors.New("mailer not configured")

// Mailer forwards a contact message to a human inbox.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EmailJSMailer posts messages to an EmailJS-compatible REST endpoint.
type EmailJSMailer struct {
	URL        string
	ServiceID  string
	TemplateID string
	UserID     string
	Client     *http.Client
}

func NewEmailJSMailer(url, serviceID, templateID, userID string) *EmailJSMailer {
	return &EmailJSMailer{
		URL:        url,
		ServiceID:  serviceID,
		TemplateID: templateID,
		UserID:     userID,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJSMailer) configured() bool {
	return m != nil && m.URL != "" && m.ServiceID != "" && m.TemplateID != "" && m.UserID != ""
}

func (m *EmailJSMailer) Send(ctx context.Context, msg Message) error {
	if !m.configured() {
		return ErrMailerNotConfigured
	}
	body, err := json.Marshal(emailJSRequest{
		ServiceID:  m.ServiceID,
		TemplateID: m.TemplateID,
		UserID:     m.UserID,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.Email,
			"subject":    msg.Subject,
			"message":    msg.Message,
			"whatsapp":   msg.WhatsApp,
			"reply_to":   msg.Email,
		},
	})
	if err != nil {
		return fmt.Errorf("encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send email: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
