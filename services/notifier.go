package services

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/models"
)

// ContactNotifier is told about every accepted contact message.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
}

// Notifiers fans a message out to every notifier and joins their errors.
// An empty Notifiers is a valid no-op.
type Notifiers []ContactNotifier

func (ns Notifiers) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	var errList []error
	for _, n := range ns {
		if err := n.NotifyContact(ctx, msg); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// NotifiersFromConfig builds the notifiers enabled in cfg.
func NotifiersFromConfig(cfg *config.Config) Notifiers {
	var ns Notifiers
	if cfg.EmailNotificationsEnabled() {
		ns = append(ns, NewEmailNotifier(cfg.ResendAPIKey, cfg.ResendFromEmail, cfg.ContactNotifyEmails))
	}
	if cfg.SMSNotificationsEnabled() {
		ns = append(ns, NewSMSNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.ContactNotifyPhone))
	}
	return ns
}
