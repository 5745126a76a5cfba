package storefront

import (
	"sync"
	"time"
)

// ToastType is the severity of a toast
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
	ToastWarning ToastType = "warning"
)

// Theme is the color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toast is a transient notification
type Toast struct {
	ID      uint64    `json:"id"`
	Message string    `json:"message"`
	Type    ToastType `json:"type"`
}

// UIState holds the ephemeral, non persisted UI flags.
type UIState struct {
	Toast          *Toast `json:"toast"`
	MobileMenuOpen bool   `json:"mobileMenuOpen"`
	SidebarOpen    bool   `json:"sidebarOpen"`
	Theme          Theme  `json:"theme"`
}

func (s UIState) clone() UIState {
	c := s
	if s.Toast != nil {
		t := *s.Toast
		c.Toast = &t
	}
	return c
}

// UIStore is independent of the session store. Updates are serialized with
// their notification, so subscribers see changes in order.
//
// Listeners must not call UIStore methods synchronously.
type UIStore struct {
	updateMu  sync.Mutex
	mu        sync.Mutex
	state     UIState
	seq       uint64
	timer     *time.Timer
	listeners broadcaster[UIState]
}

// NewUIStore returns a store with the light theme and everything closed
func NewUIStore() *UIStore {
	return &UIStore{state: UIState{Theme: ThemeLight}}
}

// State returns a snapshot of the UI flags
func (s *UIStore) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn for every change
func (s *UIStore) Subscribe(fn func(UIState)) func() {
	return s.listeners.subscribe(fn)
}

// ShowToast replaces the current toast. With a positive duration the toast
// hides itself, unless another toast replaced it first.
func (s *UIStore) ShowToast(message string, kind ToastType, duration time.Duration) uint64 {
	if kind == "" {
		kind = ToastInfo
	}

	var id uint64
	s.update(func(st *UIState) {
		s.seq++
		id = s.seq
		st.Toast = &Toast{ID: id, Message: message, Type: kind}

		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		if duration > 0 {
			s.timer = time.AfterFunc(duration, func() { s.DismissToast(id) })
		}
	})

	return id
}

// HideToast clears any toast
func (s *UIStore) HideToast() {
	s.update(func(st *UIState) {
		st.Toast = nil
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
	})
}

// DismissToast clears the toast only if it is still the one with id
func (s *UIStore) DismissToast(id uint64) {
	s.updateIf(func(st *UIState) bool {
		if st.Toast == nil || st.Toast.ID != id {
			return false
		}
		st.Toast = nil
		return true
	})
}

func (s *UIStore) ToggleMobileMenu() {
	s.update(func(st *UIState) { st.MobileMenuOpen = !st.MobileMenuOpen })
}

func (s *UIStore) SetMobileMenuOpen(open bool) {
	s.update(func(st *UIState) { st.MobileMenuOpen = open })
}

func (s *UIStore) ToggleSidebar() {
	s.update(func(st *UIState) { st.SidebarOpen = !st.SidebarOpen })
}

func (s *UIStore) SetSidebarOpen(open bool) {
	s.update(func(st *UIState) { st.SidebarOpen = open })
}

// SetTheme ignores unknown themes
func (s *UIStore) SetTheme(theme Theme) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	s.update(func(st *UIState) { st.Theme = theme })
}

func (s *UIStore) ToggleTheme() {
	s.update(func(st *UIState) {
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
	})
}

func (s *UIStore) update(fn func(*UIState)) {
	s.updateIf(func(st *UIState) bool {
		fn(st)
		return true
	})
}

// updateIf applies fn and notifies subscribers only when fn reports a change
func (s *UIStore) updateIf(fn func(*UIState) bool) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	changed := fn(&s.state)
	snapshot := s.state.clone()
	s.mu.Unlock()

	if changed {
		s.listeners.publish(snapshot)
	}
}
