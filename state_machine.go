package storefront

// ActionType names a session action
type ActionType string

const (
	ActionSignup                ActionType = "auth/signup"
	ActionLogin                 ActionType = "auth/login"
	ActionLogout                ActionType = "auth/logout"
	ActionUpdateProfile         ActionType = "auth/updateProfile"
	ActionClearError            ActionType = "auth/clearError"
	ActionSetUser               ActionType = "auth/setUser"
	ActionClearValidationErrors ActionType = "auth/clearValidationErrors"
)

// Phase is the lifecycle step of an async action. Sync actions leave it empty.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// Action is a typed session event
type Action struct {
	Type      ActionType
	Phase     Phase
	RequestID string
	User      *User
	Failure   *ActionError
}

func (a Action) String() string {
	if a.Phase == "" {
		return string(a.Type)
	}
	return string(a.Type) + "/" + string(a.Phase)
}

// Pending builds the pending step of an async action
func Pending(t ActionType, requestID string) Action {
	return Action{Type: t, Phase: PhasePending, RequestID: requestID}
}

// Fulfilled builds the success step of an async action
func Fulfilled(t ActionType, requestID string, user *User) Action {
	return Action{Type: t, Phase: PhaseFulfilled, RequestID: requestID, User: user}
}

// Rejected builds the failure step of an async action
func Rejected(t ActionType, requestID string, failure *ActionError) Action {
	return Action{Type: t, Phase: PhaseRejected, RequestID: requestID, Failure: failure}
}

// Reduce applies action to state and returns the next state. It never
// mutates its input.
func Reduce(state SessionState, action Action) SessionState {
	next := state.Clone()

	switch action.Type {
	case ActionSignup, ActionLogin:
		switch action.Phase {
		case PhasePending:
			next.Loading = true
			next.Error = ""
			next.ValidationErrors = map[string]string{}
		case PhaseFulfilled:
			next.Loading = false
			next.User = action.User.Clone()
			next.ValidationErrors = map[string]string{}
		case PhaseRejected:
			next.Loading = false
			applyFailure(&next, action)
		}

	case ActionLogout:
		switch action.Phase {
		case PhasePending:
			next.Loading = true
			next.Error = ""
			next.ValidationErrors = map[string]string{}
		case PhaseFulfilled, PhaseRejected:
			next.Loading = false
			next.User = nil
			next.ValidationErrors = map[string]string{}
			if action.Phase == PhaseRejected && action.Failure != nil {
				next.Error = action.Failure.Message
			}
		}

	case ActionUpdateProfile:
		switch action.Phase {
		case PhasePending:
			next.Loading = true
			next.Error = ""
			next.ValidationErrors = map[string]string{}
		case PhaseFulfilled:
			next.Loading = false
			next.User = action.User.Clone()
			next.Error = ""
		case PhaseRejected:
			next.Loading = false
			if action.Failure != nil {
				next.Error = action.Failure.Message
			}
		}

	case ActionClearError:
		next.Error = ""
		next.ValidationErrors = map[string]string{}

	case ActionClearValidationErrors:
		next.ValidationErrors = map[string]string{}

	case ActionSetUser:
		next.User = action.User.Clone()
	}

	next.IsAuthenticated = next.User != nil
	return next
}

// applyFailure routes a signup/login failure into either the field map or
// the error message.
func applyFailure(next *SessionState, action Action) {
	failure := action.Failure
	if failure == nil {
		return
	}

	if action.Type == ActionSignup && failure.Kind == FailureValidation {
		next.ValidationErrors = make(map[string]string, len(failure.Fields))
		for k, v := range failure.Fields {
			next.ValidationErrors[k] = v
		}
		return
	}

	next.Error = failure.Message
	if next.Error == "" {
		next.Error = failure.FirstMessage()
	}
}
