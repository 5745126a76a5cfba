package storefront

// SessionState is the observable session snapshot.
type SessionState struct {
	User             *User             `json:"user"`
	IsAuthenticated  bool              `json:"isAuthenticated"`
	Loading          bool              `json:"loading"`
	Error            string            `json:"error,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

// InitialSessionState is the anonymous, idle session
func InitialSessionState() SessionState {
	return SessionState{ValidationErrors: map[string]string{}}
}

// HasError reports whether the last action failed with a message
func (s SessionState) HasError() bool {
	return s.Error != ""
}

// HasValidationErrors reports whether field errors are present
func (s SessionState) HasValidationErrors() bool {
	return len(s.ValidationErrors) > 0
}

// Clone returns a deep copy safe to hand out to subscribers.
func (s SessionState) Clone() SessionState {
	c := s
	c.User = s.User.Clone()
	c.ValidationErrors = make(map[string]string, len(s.ValidationErrors))
	for k, v := range s.ValidationErrors {
		c.ValidationErrors[k] = v
	}
	return c
}
