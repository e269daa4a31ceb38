package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	flashNewKey = "_flash.new"
	flashOldKey = "_flash.old"
)

// Session holds per-visitor data between requests.
type Session struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// New creates an empty session with a random id.
func New(ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Data:      make(map[string]any),
		ExpiresAt: time.Now().Add(ttl),
	}
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get retrieves a value from session data
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// Set stores a value in session data
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Flash stores a value that survives only the next request.
func (s *Session) Flash(key string, value any) {
	if s == nil {
		return
	}
	s.Set(key, value)
	s.Set(flashNewKey, appendUnique(s.strings(flashNewKey), key))
	s.Set(flashOldKey, remove(s.strings(flashOldKey), key))
}

// Reflash keeps every flashed value for one more request.
func (s *Session) Reflash() {
	if s == nil {
		return
	}
	keys := s.strings(flashNewKey)
	for _, k := range s.strings(flashOldKey) {
		keys = appendUnique(keys, k)
	}
	s.Set(flashNewKey, keys)
	s.Set(flashOldKey, []string{})
}

// AgeFlash drops values flashed before the current request and marks the
// current request's flashes as old. Call it once when a request ends.
func (s *Session) AgeFlash() {
	if s == nil {
		return
	}
	for _, k := range s.strings(flashOldKey) {
		s.Delete(k)
	}
	s.Set(flashOldKey, s.strings(flashNewKey))
	s.Set(flashNewKey, []string{})
}

// StringMap reads a map[string]string value. Values decoded from JSON
// arrive as map[string]any and are converted.
func (s *Session) StringMap(key string) map[string]string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch m := val.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if str, ok := v.(string); ok {
				out[k] = str
			}
		}
		return out
	}
	return nil
}

// StringsMap reads a map[string][]string value, such as an error bag.
func (s *Session) StringsMap(key string) map[string][]string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch m := val.(type) {
	case map[string][]string:
		return m
	case map[string]any:
		out := make(map[string][]string, len(m))
		for k, v := range m {
			out[k] = toStrings(v)
		}
		return out
	}
	return nil
}

func (s *Session) strings(key string) []string {
	val, _ := s.Get(key)
	return toStrings(val)
}

func toStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func appendUnique(list []string, key string) []string {
	for _, k := range list {
		if k == key {
			return list
		}
	}
	return append(list, key)
}

func remove(list []string, key string) []string {
	out := list[:0]
	for _, k := range list {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}
