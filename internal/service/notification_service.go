package service

import (
	"context"
	"fmt"
	"strings"

	"go-clinic-scheduling/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Notification channels
const (
	ChannelEmail = "email"
)

// Notification is one templated message for a recipient. Template variables
// are rendered by the dispatcher.
type Notification struct {
	Channel   string
	Recipient string
	Subject   string
	Template  string
	Variables map[string]string
}

// NotificationDispatcher sends messages best-effort. Dispatch failures are
// logged and swallowed by callers: appointment writes never roll back because
// a message could not be delivered.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notification Notification) error
}

// Message templates
const (
	TemplateAppointmentConfirmation = "appointment_confirmation"
	TemplateAppointmentCancellation = "appointment_cancellation"
	TemplateAppointmentReminder     = "appointment_reminder"
)

var templateBodies = map[string]string{
	TemplateAppointmentConfirmation: "Hello {{patient}}, your appointment on {{date}} at {{time}} is booked. Confirm: {{confirm_url}} Cancel: {{cancel_url}}",
	TemplateAppointmentCancellation: "Hello {{patient}}, your appointment on {{date}} at {{time}} was cancelled. Reason: {{reason}}",
	TemplateAppointmentReminder:     "Hello {{patient}}, reminder: you have an appointment on {{date}} at {{time}}.",
}

type smtpDispatcher struct {
	log    *logrus.Logger
	dialer *gomail.Dialer
	from   string
}

func NewSMTPDispatcher(log *logrus.Logger, cfg config.SMTPConfig) NotificationDispatcher {
	return &smtpDispatcher{
		log:    log,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (d *smtpDispatcher) Dispatch(ctx context.Context, notification Notification) error {
	if notification.Channel != ChannelEmail {
		return fmt.Errorf("unsupported notification channel: %s", notification.Channel)
	}
	if notification.Recipient == "" {
		d.log.Debugf("Skipping notification %s: no recipient", notification.Template)
		return nil
	}

	body, ok := templateBodies[notification.Template]
	if !ok {
		return fmt.Errorf("unknown notification template: %s", notification.Template)
	}
	body = renderTemplate(body, notification.Variables)

	msg := gomail.NewMessage()
	msg.SetHeader("From", d.from)
	msg.SetHeader("To", notification.Recipient)
	msg.SetHeader("Subject", notification.Subject)
	msg.SetBody("text/plain", body)

	if err := d.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", notification.Template, notification.Recipient, err)
	}

	d.log.Infof("Notification sent: template=%s, recipient=%s", notification.Template, notification.Recipient)
	return nil
}

// logDispatcher logs messages instead of sending them; used when SMTP is not
// configured (local development).
type logDispatcher struct {
	log *logrus.Logger
}

func NewLogDispatcher(log *logrus.Logger) NotificationDispatcher {
	return &logDispatcher{log: log}
}

func (d *logDispatcher) Dispatch(ctx context.Context, notification Notification) error {
	body := renderTemplate(templateBodies[notification.Template], notification.Variables)
	d.log.WithFields(logrus.Fields{
		"channel":   notification.Channel,
		"recipient": notification.Recipient,
		"template":  notification.Template,
	}).Infof("Notification (log only): %s", body)
	return nil
}

func renderTemplate(body string, variables map[string]string) string {
	for key, value := range variables {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body
}
