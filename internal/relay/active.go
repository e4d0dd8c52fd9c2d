package relay

import (
	"sync"
	"time"
)

// ActiveCall is the in-memory state of a call that has not reached a
// terminal status yet. On the terminal transition it is archived into the
// call log and dropped from the registry.
type ActiveCall struct {
	SID            string    `json:"sid"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Status         string    `json:"status"`
	Direction      string    `json:"direction"`
	ClientIdentity string    `json:"clientIdentity"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Duration       int64     `json:"duration"`
}

// =======================
// REGISTRY
// =======================

type ActiveCallStore struct {
	mu    sync.RWMutex
	calls map[string]ActiveCall
}

func NewActiveCallStore() *ActiveCallStore {
	return &ActiveCallStore{
		calls: make(map[string]ActiveCall),
	}
}

func (s *ActiveCallStore) Get(sid string) (ActiveCall, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.calls[sid]
	return c, ok
}

// Upsert merges a patch into the stored call, creating it first if absent.
func (s *ActiveCallStore) Upsert(sid string, patch func(*ActiveCall)) ActiveCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.calls[sid]
	if !ok {
		c = ActiveCall{SID: sid, StartTime: time.Now()}
	}
	patch(&c)
	c.SID = sid
	s.calls[sid] = c
	return c
}

// Remove deletes the call and hands back its final state for archival.
// A second terminal delivery finds nothing and is a no-op.
func (s *ActiveCallStore) Remove(sid string) (ActiveCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.calls[sid]
	if !ok {
		return ActiveCall{}, false
	}
	delete(s.calls, sid)
	return c, true
}

func (s *ActiveCallStore) Snapshot() []ActiveCall {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]ActiveCall, 0, len(s.calls))
	for _, c := range s.calls {
		res = append(res, c)
	}
	return res
}

func (s *ActiveCallStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}
