package pipeline

import (
	"sync"

	"image-picker/internal/media"
	"image-picker/internal/metrics"
)

// Session is the running list of media picked since it was last cleared.
// It is safe for concurrent use and never persisted.
type Session struct {
	mu    sync.Mutex
	items []media.SelectedMedia
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Append adds items to the end of the session.
func (s *Session) Append(items ...media.SelectedMedia) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
	metrics.SessionItems.Set(float64(len(s.items)))
}

// Snapshot returns a copy of the session. The result is never nil.
func (s *Session) Snapshot() []media.SelectedMedia {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]media.SelectedMedia, len(s.items))
	copy(out, s.items)
	return out
}

// RemoveAt removes the item at index i. Out-of-range indexes are ignored;
// the return value reports whether an item was removed.
func (s *Session) RemoveAt(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	metrics.SessionItems.Set(float64(len(s.items)))
	return true
}

// Clear empties the session.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	metrics.SessionItems.Set(0)
}

// Len returns the number of items in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
