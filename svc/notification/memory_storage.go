package notification

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation for development and
// tests. Records are copied on the way in and out so callers cannot mutate
// stored state.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]*Notification
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]*Notification)}
}

func (s *MemoryStorage) Insert(_ context.Context, n *Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[n.ID] = copyNotification(n)
	return nil
}

func (s *MemoryStorage) Get(_ context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.records[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	return copyNotification(n), nil
}

func (s *MemoryStorage) List(_ context.Context, target Target, opts ListOptions) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Notification
	for _, n := range s.records {
		if !matchesTarget(n, target) || !matchesOptions(n, opts) {
			continue
		}
		result = append(result, *copyNotification(n))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(result) {
			return nil, nil
		}
		result = result[opts.Offset:]
	}
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (s *MemoryStorage) UpdateDeliveryStatus(_ context.Context, id string, statuses map[Channel]ChannelStatus, suppressed bool, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok {
		return ErrNotificationNotFound
	}
	if n.DeliveryStatus == nil {
		n.DeliveryStatus = make(map[Channel]ChannelStatus, len(statuses))
	}
	for ch, st := range statuses {
		n.DeliveryStatus[ch] = st
	}
	n.Suppressed = suppressed
	n.SuppressedReason = reason
	n.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStorage) MarkRead(_ context.Context, id string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.records[id]
	if !ok {
		return ErrNotificationNotFound
	}
	n.MarkAsRead(readAt)
	n.UpdatedAt = readAt
	return nil
}

func (s *MemoryStorage) CountUnread(_ context.Context, target Target) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.records {
		if matchesTarget(n, target) && !n.Read {
			count++
		}
	}
	return count, nil
}

func matchesTarget(n *Notification, t Target) bool {
	if t.OrganizationID != "" && n.OrganizationID != t.OrganizationID {
		return false
	}
	if t.UserID != "" && n.UserID != t.UserID {
		return false
	}
	if t.TenantID != "" && n.TenantID != t.TenantID {
		return false
	}
	return true
}

func matchesOptions(n *Notification, opts ListOptions) bool {
	if opts.OnlyUnread && n.Read {
		return false
	}
	if opts.Since != nil && n.CreatedAt.Before(*opts.Since) {
		return false
	}
	if len(opts.Types) > 0 {
		found := false
		for _, t := range opts.Types {
			if n.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func copyNotification(n *Notification) *Notification {
	dup := *n
	if n.Channels != nil {
		dup.Channels = make([]Channel, len(n.Channels))
		copy(dup.Channels, n.Channels)
	}
	if n.DeliveryStatus != nil {
		dup.DeliveryStatus = make(map[Channel]ChannelStatus, len(n.DeliveryStatus))
		for ch, st := range n.DeliveryStatus {
			dup.DeliveryStatus[ch] = st
		}
	}
	if n.Metadata != nil {
		dup.Metadata = make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			dup.Metadata[k] = v
		}
	}
	return &dup
}
