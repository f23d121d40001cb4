package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeMailer replays one behaviour per call; the last one repeats.
type fakeMailer struct {
	mu      sync.Mutex
	calls   int
	emails  []*entities.Email
	results []func(ctx context.Context) (string, error)
}

func (m *fakeMailer) Send(ctx context.Context, email *entities.Email) (string, error) {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	m.emails = append(m.emails, email)
	if idx >= len(m.results) {
		idx = len(m.results) - 1
	}
	fn := m.results[idx]
	m.mu.Unlock()
	return fn(ctx)
}

func (m *fakeMailer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func ok(id string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return id, nil }
}

func fail(err error) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return "", err }
}

func hang(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

var testPolicy = Policy{Timeout: 20 * time.Millisecond, MaxAttempts: 3, RetryDelay: time.Millisecond}

func testNotification() entities.Notification {
	return entities.Notification{
		RecordID:     "rec-1",
		MeetingName:  "Weekly Sync",
		Summary:      "Plan to ship Friday",
		ActionItems:  "• Ship feature (Owner: Alice)",
		KeyQuestions: "• Who owns QA?",
		RecordURL:    "https://www.notion.so/rec1",
	}
}

func TestDispatcher_SendsOnFirstAttempt(t *testing.T) {
	mailer := &fakeMailer{results: []func(context.Context) (string, error){ok("msg-1")}}
	d := NewDispatcher(mailer, "Notes <notes@example.com>", "team@example.com", testPolicy, nil)

	res := d.Send(context.Background(), testNotification())

	require.True(t, res.Sent)
	assert.Equal(t, "Email sent successfully", res.Message)
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, entities.DeliverySucceeded, res.Attempts[0].Outcome)
	assert.Equal(t, "msg-1", res.Attempts[0].MessageID)

	require.Len(t, mailer.emails, 1)
	email := mailer.emails[0]
	assert.Equal(t, []string{"team@example.com"}, email.To)
	assert.Equal(t, "Meeting Summary: Weekly Sync", email.Subject)
	assert.Contains(t, email.HTML, `href="https://www.notion.so/rec1"`)
	assert.Contains(t, email.Text, "https://www.notion.so/rec1")
}

func TestDispatcher_DoesNotRetryNonTimeoutFailure(t *testing.T) {
	mailer := &fakeMailer{results: []func(context.Context) (string, error){fail(errors.New("422 invalid from"))}}
	d := NewDispatcher(mailer, "notes@example.com", "team@example.com", testPolicy, nil)

	res := d.Send(context.Background(), testNotification())

	assert.False(t, res.Sent)
	assert.Equal(t, 1, mailer.Calls())
	assert.Contains(t, res.Message, "422 invalid from")
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, entities.DeliveryFailed, res.Attempts[0].Outcome)
}

func TestDispatcher_RetriesTimeoutsUpToBound(t *testing.T) {
	mailer := &fakeMailer{results: []func(context.Context) (string, error){hang}}
	d := NewDispatcher(mailer, "notes@example.com", "team@example.com", testPolicy, nil)

	res := d.Send(context.Background(), testNotification())

	assert.False(t, res.Sent)
	assert.Equal(t, 3, mailer.Calls())
	assert.Len(t, res.Attempts, 3)
	assert.Equal(t, "Email sending timed out after 3 attempts", res.Message)
}

func TestDispatcher_RecoversAfterTimeout(t *testing.T) {
	mailer := &fakeMailer{results: []func(context.Context) (string, error){hang, ok("msg-2")}}
	d := NewDispatcher(mailer, "notes@example.com", "team@example.com", testPolicy, nil)

	res := d.Send(context.Background(), testNotification())

	require.True(t, res.Sent)
	assert.Equal(t, 2, mailer.Calls())
	require.Len(t, res.Attempts, 2)
	assert.Equal(t, entities.DeliveryFailed, res.Attempts[0].Outcome)
	assert.Equal(t, entities.DeliverySucceeded, res.Attempts[1].Outcome)
}

func TestDispatcher_SingleAttemptPolicy(t *testing.T) {
	mailer := &fakeMailer{results: []func(context.Context) (string, error){hang}}
	policy := testPolicy
	policy.MaxAttempts = 0
	d := NewDispatcher(mailer, "notes@example.com", "team@example.com", policy, nil)

	res := d.Send(context.Background(), testNotification())

	assert.False(t, res.Sent)
	assert.Equal(t, 1, mailer.Calls())
}
