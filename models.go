package storefront

import "time"

// User is the identity record returned by the API
type User struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      UserRole   `json:"role,omitempty"`
	Photo     string     `json:"photo,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Clone returns a copy so state snapshots never share a record.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.CreatedAt != nil {
		t := *u.CreatedAt
		c.CreatedAt = &t
	}
	return &c
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// SignupPayload is the body of POST /users/signup
type SignupPayload struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm"`
}

// Credentials is the body of POST /users/login
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ProfileUpdate is the body of PATCH /users/updateMe. Empty fields are
// left out of the request.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty" form:"name"`
	Email   string `json:"email,omitempty" form:"email"`
	Phone   string `json:"phone,omitempty" form:"phone"`
	Address string `json:"address,omitempty" form:"address"`
	Photo   string `json:"photo,omitempty" form:"photo"`
}

// AuthResponse is the result of a credential exchange
type AuthResponse struct {
	Token string
	User  *User
}
