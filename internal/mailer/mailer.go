// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mailer sends staff notification emails.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v3"
)

// ErrNoRecipients is returned when an email has nobody to go to.
var ErrNoRecipients = errors.New("mailer: no recipients")

// Email is one outgoing message.
type Email struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Resend delivers mail through the Resend API.
type Resend struct {
	client *resend.Client
	from   string
}

// NewResend returns a Resend sender using apiKey and the given From header.
func NewResend(apiKey, from string) *Resend {
	return &Resend{client: resend.NewClient(apiKey), from: from}
}

// Send implements Sender.
func (s *Resend) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	})
	if err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	return nil
}

// Noop logs emails instead of sending them. Used when no API key is set.
type Noop struct{}

// Send implements Sender.
func (Noop) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipients
	}
	slog.InfoContext(ctx, "email not sent, mailer disabled",
		"to", email.To, "subject", email.Subject)
	return nil
}

// New picks the Resend sender when apiKey is set and Noop otherwise.
func New(apiKey, from string) Sender {
	if apiKey == "" {
		return Noop{}
	}
	return NewResend(apiKey, from)
}
