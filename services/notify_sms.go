package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const maxSMSBody = 320

type smsSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type smsResult struct {
	resp *twilioApi.ApiV2010Message
	err  error
}

// SMSNotifier texts the site owner through Twilio whenever a contact message arrives
type SMSNotifier struct {
	api  smsSender
	from string
	to   string
}

func NewSMSNotifier(accountSID, authToken, from, to string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{api: client.Api, from: from, to: to}
}

func (n *SMSNotifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(smsBody(msg))

	// the Twilio client takes no context, so a slow call is left behind once ctx ends
	done := make(chan smsResult, 1)
	go func() {
		resp, err := n.api.CreateMessage(params)
		done <- smsResult{resp, err}
	}()

	var resp *twilioApi.ApiV2010Message
	select {
	case <-ctx.Done():
		return fmt.Errorf("sending SMS via Twilio: %w", ctx.Err())
	case result := <-done:
		if result.err != nil {
			return fmt.Errorf("failed to send SMS via Twilio: %w", result.err)
		}
		resp = result.resp
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	log.Info().Str("sid", sid).Msg("Successfully sent SMS via Twilio")
	return nil
}

func smsBody(msg *models.ContactMessage) string {
	body := fmt.Sprintf("New message from %s <%s>: %s\n%s", msg.Name, msg.Email, msg.Subject, msg.Message)
	runes := []rune(body)
	if len(runes) > maxSMSBody {
		return string(runes[:maxSMSBody-3]) + "..."
	}
	return body
}
