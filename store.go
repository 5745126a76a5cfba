package storefront

import "sync"

// broadcaster fans a value out to subscribers. Listeners are called outside
// of the lock, in subscription order.
type broadcaster[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	order     []uint64
	listeners map[uint64]func(T)
}

func (b *broadcaster[T]) subscribe(fn func(T)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = map[uint64]func(T){}
	}

	b.nextID++
	id := b.nextID
	b.listeners[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	fns := make([]func(T), 0, len(b.order))
	for _, id := range b.order {
		fns = append(fns, b.listeners[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// SessionStore holds the process wide session and applies actions through
// Reduce. Concurrent dispatches are serialized; whichever settles last wins.
//
// Listeners must not call Dispatch synchronously.
type SessionStore struct {
	dispatchMu sync.Mutex
	mu         sync.RWMutex
	state      SessionState
	listeners  broadcaster[SessionState]
	logger     Logger
}

// NewSessionStore returns an anonymous, idle store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		state:  InitialSessionState(),
		logger: defLogger{},
	}
}

func (s *SessionStore) WithLogger(logger Logger) *SessionStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// State returns a snapshot of the current session
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Dispatch reduces action into the store, notifies subscribers and returns
// the resulting state.
func (s *SessionStore) Dispatch(action Action) SessionState {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, action)
	snapshot := s.state.Clone()
	s.mu.Unlock()

	s.logger.Debug("session action",
		"action", action.String(),
		"request_id", action.RequestID,
		"authenticated", snapshot.IsAuthenticated,
		"loading", snapshot.Loading,
	)

	s.listeners.publish(snapshot)
	return snapshot
}

// Subscribe registers fn for every state change. Call the returned function
// to stop receiving updates.
func (s *SessionStore) Subscribe(fn func(SessionState)) func() {
	return s.listeners.subscribe(fn)
}

// SubscribeCurrent calls fn with the current state, then registers it like
// Subscribe. No dispatch can run between the two, so fn never sees a change
// before the state it was based on.
func (s *SessionStore) SubscribeCurrent(fn func(SessionState)) func() {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	unsubscribe := s.listeners.subscribe(fn)
	fn(s.State())
	return unsubscribe
}

// ClearError clears the error message and the field errors
func (s *SessionStore) ClearError() {
	s.Dispatch(Action{Type: ActionClearError})
}

// ClearValidationErrors clears the field errors only
func (s *SessionStore) ClearValidationErrors() {
	s.Dispatch(Action{Type: ActionClearValidationErrors})
}

// SetUser marks the session authenticated without a loading transition
func (s *SessionStore) SetUser(user *User) {
	s.Dispatch(Action{Type: ActionSetUser, User: user})
}
