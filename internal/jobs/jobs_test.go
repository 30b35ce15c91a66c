// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khrm/internal/mailer"
)

type recordingSender struct {
	sent []*mailer.Email
	err  error
}

func (s *recordingSender) Send(_ context.Context, e *mailer.Email) error {
	s.sent = append(s.sent, e)
	return s.err
}

type fakeExpirer struct {
	today time.Time
	n     int64
	err   error
}

func (f *fakeExpirer) CloseExpired(_ context.Context, today time.Time) (int64, error) {
	f.today = today
	return f.n, f.err
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("0 * * * *")
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), s.Next(from))

	_, err = ParseSchedule("every hour")
	assert.Error(t, err)

	_, err = ParseSchedule("0 0 * * * *")
	assert.Error(t, err, "six fields are not accepted")
}

func TestNotifyWorker_SendsToRecipients(t *testing.T) {
	sender := &recordingSender{}
	w := &NotifyWorker{sender: sender, recipients: []string{"ops@example.com"}}

	err := w.Work(context.Background(), &river.Job[NotifyArgs]{Args: NotifyArgs{
		Notification: mailer.Notification{Kind: mailer.KindInquiry, Title: "Acme Gulf"},
	}})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "New employer inquiry: Acme Gulf", sender.sent[0].Subject)
}

func TestNotifyWorker_NoRecipientsIsNoop(t *testing.T) {
	sender := &recordingSender{}
	w := &NotifyWorker{sender: sender}

	err := w.Work(context.Background(), &river.Job[NotifyArgs]{Args: NotifyArgs{
		Notification: mailer.Notification{Kind: mailer.KindContact, Title: "Hi"},
	}})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestNotifyWorker_SendErrorRetries(t *testing.T) {
	boom := errors.New("smtp down")
	w := &NotifyWorker{sender: &recordingSender{err: boom}, recipients: []string{"ops@example.com"}}

	err := w.Work(context.Background(), &river.Job[NotifyArgs]{Args: NotifyArgs{
		Notification: mailer.Notification{Kind: mailer.KindContact, Title: "Hi"},
	}})
	assert.ErrorIs(t, err, boom)
}

func TestNotifyWorker_UnknownKindCancelled(t *testing.T) {
	sender := &recordingSender{}
	w := &NotifyWorker{sender: sender, recipients: []string{"ops@example.com"}}

	err := w.Work(context.Background(), &river.Job[NotifyArgs]{Args: NotifyArgs{
		Notification: mailer.Notification{Kind: "bogus"},
	}})
	assert.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestCloseExpiredWorker(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC)
	exp := &fakeExpirer{n: 3}
	w := &CloseExpiredWorker{expirer: exp, now: func() time.Time { return now }}

	require.NoError(t, w.Work(context.Background(), &river.Job[CloseExpiredArgs]{}))
	assert.Equal(t, now, exp.today)

	exp.err = errors.New("db gone")
	assert.Error(t, w.Work(context.Background(), &river.Job[CloseExpiredArgs]{}))
}

func TestArgsKinds(t *testing.T) {
	assert.Equal(t, "notify_staff", NotifyArgs{}.Kind())
	assert.Equal(t, "close_expired_jobs", CloseExpiredArgs{}.Kind())
	assert.Equal(t, 5, NotifyArgs{}.InsertOpts().MaxAttempts)
}
