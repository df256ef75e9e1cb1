package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
)

// MemorySet - множество уведомлённых заказов в памяти процесса.
// Не переживает перезапуск: после старта все ожидающие заказы будут отправлены заново.
type MemorySet struct {
	mu       sync.Mutex
	notified map[models.OrderID]struct{}
	cleared  map[models.OrderID]time.Time
	now      func() time.Time
}

func NewMemorySet() *MemorySet {
	return &MemorySet{
		notified: make(map[models.OrderID]struct{}),
		cleared:  make(map[models.OrderID]time.Time),
		now:      time.Now,
	}
}

func (s *MemorySet) IsNotified(_ context.Context, id models.OrderID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notified[id]
	return ok, nil
}

func (s *MemorySet) MarkNotified(_ context.Context, id models.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified[id] = struct{}{}
	delete(s.cleared, id)
	return nil
}

// MarkAttempted совпадает с MarkNotified: множество в памяти и так живёт до перезапуска
func (s *MemorySet) MarkAttempted(ctx context.Context, id models.OrderID) error {
	return s.MarkNotified(ctx, id)
}

func (s *MemorySet) Clear(_ context.Context, id models.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notified, id)
	s.cleared[id] = s.now()
	return nil
}

func (s *MemorySet) ClearedSince(_ context.Context, id models.OrderID, since time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.cleared[id]
	return ok && !at.Before(since), nil
}

func (s *MemorySet) Prune(_ context.Context, before time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range s.cleared {
		if at.Before(before) {
			delete(s.cleared, id)
		}
	}
	return nil
}

// Len - количество уведомлённых заказов
func (s *MemorySet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notified)
}

func (s *MemorySet) Close() error {
	return nil
}
