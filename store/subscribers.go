package store

import (
	"sync"
	"sync/atomic"
)

type subscription struct {
	listener func()
	active   atomic.Bool
}

// subscribers is an ordered listener list. A listener removed while a
// notification is in flight is skipped if it has not run yet.
type subscribers struct {
	list []*subscription
	mu   sync.Mutex
}

func (s *subscribers) add(listener func()) func() {
	sub := &subscription{listener: listener}
	sub.active.Store(true)

	s.mu.Lock()
	s.list = append(s.list, sub)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.active.Store(false)

			s.mu.Lock()
			defer s.mu.Unlock()
			for i, candidate := range s.list {
				if candidate == sub {
					s.list = append(s.list[:i:i], s.list[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	subs := make([]*subscription, len(s.list))
	copy(subs, s.list)
	s.mu.Unlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.listener()
		}
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}
