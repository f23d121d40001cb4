package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

type fakeStore struct {
	mu         sync.Mutex
	records    []entities.MeetingRecord
	duplicate  bool
	queryDelay time.Duration
	markErr    error
	markCalls  int
}

func (s *fakeStore) add(id, name, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	props := entities.NewRecordProperties(name, summary, "• Ship feature (Owner: Alice)", "• Who owns QA?", time.Now())
	s.records = append(s.records, entities.MeetingRecord{
		ID:         id,
		URL:        "https://www.notion.so/" + id,
		Properties: props,
	})
}

func (s *fakeStore) Create(_ context.Context, props entities.Properties) (*entities.MeetingRecord, error) {
	panic("not used by the sweep")
}

func (s *fakeStore) QueryUnsent(ctx context.Context, limit int) (*entities.RecordPage, error) {
	if s.queryDelay > 0 {
		select {
		case <-time.After(s.queryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page := &entities.RecordPage{}
	for _, r := range s.records {
		if r.Sent() {
			continue
		}
		if len(page.Records) == limit {
			page.HasMore = true
			break
		}
		page.Records = append(page.Records, r)
		if s.duplicate && len(page.Records) < limit {
			page.Records = append(page.Records, r)
		}
	}
	return page, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markCalls++
	if s.markErr != nil {
		return s.markErr
	}
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Properties[entities.PropSent] = entities.CheckboxProperty(true)
			return nil
		}
	}
	return entities.ErrRecordNotFound
}

func (s *fakeStore) Backend() string { return "fake" }

// nilPageStore answers QueryUnsent with neither a page nor an error
type nilPageStore struct {
	fakeStore
}

func (s *nilPageStore) QueryUnsent(context.Context, int) (*entities.RecordPage, error) {
	return nil, nil
}

func (s *fakeStore) sent(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r.Sent()
		}
	}
	return false
}

type fakeSender struct {
	mu    sync.Mutex
	fail  bool
	// block holds every send until ctx is done, then reports a failure
	block bool
	sent  []entities.Notification
}

func (f *fakeSender) Send(ctx context.Context, n entities.Notification) *entities.DeliveryResult {
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return &entities.DeliveryResult{Message: ctx.Err().Error()}
	}
	if f.fail {
		return &entities.DeliveryResult{Message: "Email sending timed out after 3 attempts"}
	}
	return &entities.DeliveryResult{Sent: true, Message: "Email sent successfully"}
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeLease struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *fakeLease) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *fakeLease) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
