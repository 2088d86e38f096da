package notify_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/propstack/notifykit/pkg/notify"
)

// testChannel is a controllable channel for dispatcher and trigger tests.
type testChannel struct {
	id        string
	available bool
	err       error
	delay     time.Duration
	panics    bool

	mu    sync.Mutex
	sends []notify.Notification

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newTestChannel(id string) *testChannel {
	return &testChannel{id: id, available: true}
}

func (c *testChannel) ID() string { return c.id }

func (c *testChannel) AvailableFor(notify.Recipient, notify.Notification) bool {
	return c.available
}

func (c *testChannel) Send(ctx context.Context, _ notify.Recipient, notif notify.Notification) error {
	cur := c.inflight.Add(1)
	defer c.inflight.Add(-1)
	for {
		prev := c.maxInflight.Load()
		if cur <= prev || c.maxInflight.CompareAndSwap(prev, cur) {
			break
		}
	}

	if c.panics {
		panic("send exploded")
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if c.err != nil {
		return c.err
	}

	c.mu.Lock()
	c.sends = append(c.sends, notif)
	c.mu.Unlock()
	return nil
}

func (c *testChannel) sent() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Notification, len(c.sends))
	copy(out, c.sends)
	return out
}

// stubIdentity resolves recipients from a fixed in-memory set.
type stubIdentity struct {
	users      map[string]notify.Recipient
	profileErr error
	listErr    error
}

func (s *stubIdentity) PublicProfile(_ context.Context, userID string) (*notify.Recipient, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	r, ok := s.users[userID]
	if !ok {
		return nil, notify.ErrRecipientNotFound
	}
	return &r, nil
}

func (s *stubIdentity) ListByRoles(_ context.Context, roles []string, excludeUserID string) ([]notify.Recipient, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	wanted := make(map[string]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}
	var out []notify.Recipient
	for _, r := range s.users {
		if r.ID != excludeUserID && wanted[r.Role] {
			out = append(out, r)
		}
	}
	return out, nil
}

// failingStorage wraps a storage and fails Create for selected users.
type failingStorage struct {
	notify.Storage
	failFor map[string]bool
}

func (s *failingStorage) Create(ctx context.Context, notif notify.Notification) error {
	if s.failFor[notif.UserID] {
		return fmt.Errorf("storage offline")
	}
	return s.Storage.Create(ctx, notif)
}
