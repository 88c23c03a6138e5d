package interps

import (
	"sync"

	"github.com/google/uuid"
	"github.com/reusee/smol/syncs"
	"go.starlark.net/starlark"
)

// Session holds the bindings that persist across successive Execute
// calls. One call is in flight per session at a time; inFlight is the
// serialization point.
type Session struct {
	id       string
	inFlight syncs.Semaphore

	mu       sync.Mutex
	bindings starlark.StringDict
}

func NewSession() *Session {
	return &Session{
		id:       uuid.NewString(),
		inFlight: syncs.NewSemaphore(1),
		bindings: make(starlark.StringDict),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Current returns a copy of the bindings. The values are shared
// references, so in-place mutations by later executions are visible to
// the store.
func (s *Session) Current() starlark.StringDict {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make(starlark.StringDict, len(s.bindings))
	for name, value := range s.bindings {
		ret[name] = value
	}
	return ret
}

// Apply merges new and changed bindings. The merged map is fully built
// before the swap, so a concurrent Current never observes a partial
// application.
func (s *Session) Apply(newBindings starlark.StringDict) {
	if len(newBindings) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make(starlark.StringDict, len(s.bindings)+len(newBindings))
	for name, value := range s.bindings {
		merged[name] = value
	}
	for name, value := range newBindings {
		merged[name] = value
	}
	s.bindings = merged
}

// Reset clears all bindings atomically.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings = make(starlark.StringDict)
}

// Inspect returns a read-only Go-value view of the bindings.
func (s *Session) Inspect() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make(map[string]any, len(s.bindings))
	for name, value := range s.bindings {
		ret[name] = fromStarlarkValue(value)
	}
	return ret
}

// Bind seeds one binding from a Go value, for callers that want to load
// context before the first execution.
func (s *Session) Bind(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := make(starlark.StringDict, len(s.bindings)+1)
	for n, v := range s.bindings {
		merged[n] = v
	}
	merged[name] = toStarlarkValue(value)
	s.bindings = merged
}

// Get returns one binding as a Go value.
func (s *Session) Get(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.bindings[name]
	if !ok {
		return nil, false
	}
	return fromStarlarkValue(value), true
}
