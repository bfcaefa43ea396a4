package session

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// Session is the server-side state attached to one session cookie.
// It is safe for concurrent use.
type Session struct {
	// ID is the value of the session cookie.
	ID string

	// CreatedAt is when the session was first issued.
	CreatedAt time.Time

	mu         sync.RWMutex
	lastActive time.Time
	values     map[string]json.RawMessage
	isNew      bool
	dirty      bool
	destroyed  bool
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		lastActive: now,
		values:     make(map[string]json.RawMessage),
		isNew:      true,
	}
}

// IsNew reports whether the session was minted by the request that started
// it, rather than resumed from the store.
func (s *Session) IsNew() bool {
	return s.isNew
}

// LastActive returns when the session was last started or resumed. The
// stored copy only advances when Save writes changed values.
func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Set stores value under key. The value must be JSON-serializable.
func (s *Session) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = data
	s.dirty = true
	s.mu.Unlock()
	return nil
}

// Get decodes the value stored under key into dst. It reports false when the
// key is absent.
func (s *Session) Get(key string, dst any) (bool, error) {
	s.mu.RLock()
	data, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

// GetString returns the string stored under key, or "" when the key is
// absent or holds another type.
func (s *Session) GetString(key string) string {
	var v string
	if ok, err := s.Get(key, &v); !ok || err != nil {
		return ""
	}
	return v
}

// Delete removes key.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	if _, ok := s.values[key]; ok {
		delete(s.values, key)
		s.dirty = true
	}
	s.mu.Unlock()
}

// Keys returns the stored keys in sorted order.
func (s *Session) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *Session) isDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Session) markClean() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

func (s *Session) markDestroyed() {
	s.mu.Lock()
	s.destroyed = true
	s.mu.Unlock()
}

func (s *Session) isDestroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}

func (s *Session) snapshot() *SerializableSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]json.RawMessage, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return &SerializableSession{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
		Values:     values,
	}
}

func restore(ss *SerializableSession) *Session {
	values := ss.Values
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	return &Session{
		ID:         ss.ID,
		CreatedAt:  ss.CreatedAt,
		lastActive: ss.LastActive,
		values:     values,
	}
}
