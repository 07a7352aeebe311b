package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

const resendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// EmailNotifier emails the site owner through Resend whenever a contact message arrives
type EmailNotifier struct {
	apiKey     string
	from       string
	recipients []string
	baseURL    string
	client     *http.Client
}

func NewEmailNotifier(apiKey, from string, recipients []string) *EmailNotifier {
	return &EmailNotifier{
		apiKey:     apiKey,
		from:       from,
		recipients: recipients,
		baseURL:    resendBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *EmailNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	phone := "-"
	if msg.Phone != nil {
		phone = *msg.Phone
	}

	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p><strong>Phone:</strong> %s</p><p><strong>Subject:</strong> %s</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(phone),
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Message),
	)

	return n.send(ctx, ResendEmailRequest{
		From:    n.from,
		To:      n.recipients,
		Subject: "New portfolio message: " + msg.Subject,
		Html:    body,
		ReplyTo: msg.Email,
	})
}

func (n *EmailNotifier) send(ctx context.Context, payload ResendEmailRequest) error {
	if len(payload.To) == 0 {
		return errors.New("at least one recipient is required")
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
