// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"khrm/internal/markdown"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.md"))

// Kind names a staff notification.
type Kind string

const (
	KindApplication Kind = "application"
	KindInquiry     Kind = "inquiry"
	KindContact     Kind = "contact"
)

var subjects = map[Kind]string{
	KindApplication: "New job application: %s",
	KindInquiry:     "New employer inquiry: %s",
	KindContact:     "New contact message: %s",
}

// Notification describes a submission staff should look at.
type Notification struct {
	Kind     Kind              `json:"kind"`
	Title    string            `json:"title"`
	ReplyTo  string            `json:"reply_to,omitempty"`
	Fields   map[string]string `json:"fields"`
	Message  string            `json:"message,omitempty"`
	AdminURL string            `json:"admin_url,omitempty"`
}

// Build renders n into an email addressed to recipients. The body is
// written in Markdown and sent both as text and as sanitised HTML.
func Build(n Notification, recipients []string) (*Email, error) {
	format, ok := subjects[n.Kind]
	if !ok {
		return nil, fmt.Errorf("mailer: unknown notification kind %q", n.Kind)
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(n.Kind)+".md", n); err != nil {
		return nil, fmt.Errorf("mailer: render %s: %w", n.Kind, err)
	}
	html, err := markdown.ToHTML(body.String())
	if err != nil {
		return nil, fmt.Errorf("mailer: markdown %s: %w", n.Kind, err)
	}

	return &Email{
		To:      recipients,
		ReplyTo: n.ReplyTo,
		Subject: fmt.Sprintf(format, n.Title),
		Text:    body.String(),
		HTML:    html,
	}, nil
}
