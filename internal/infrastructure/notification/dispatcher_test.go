package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return m.err
}

func TestDispatcher_SendsEveryKind(t *testing.T) {
	mailer := &recordingMailer{}
	d := NewDispatcher(mailer, "InternLink")

	d.SendOTP("a@x.com", "123456")
	d.SendPasswordReset("a@x.com", "654321")
	d.SendPendingApproval("a@x.com", "Alice")
	d.SendApproval("a@x.com", "Alice")
	d.SendRejection("a@x.com", "Alice")
	d.Wait()

	require.Len(t, mailer.sent, 5)
	bodies := ""
	for _, m := range mailer.sent {
		assert.Equal(t, "a@x.com", m.to)
		assert.Contains(t, m.subject, "InternLink")
		bodies += m.body
	}
	assert.Contains(t, bodies, "123456")
	assert.Contains(t, bodies, "654321")
	assert.Contains(t, bodies, "Hello Alice")
}

func TestDispatcher_FailureIsSwallowedAndCounted(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(mailer, "InternLink")

	before := testutil.ToFloat64(notificationsTotal.WithLabelValues(string(KindApproval), "error"))
	d.SendApproval("b@x.com", "Bob")
	d.Wait()
	after := testutil.ToFloat64(notificationsTotal.WithLabelValues(string(KindApproval), "error"))

	assert.Equal(t, before+1, after)
	assert.Len(t, mailer.sent, 1)
}
