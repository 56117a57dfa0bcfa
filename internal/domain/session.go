package domain

// Role is the storefront role attached to a signed-in user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the profile returned by the backend on login/register/profile.
type User struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"required"`
	Role  Role   `json:"role,omitempty"`
}
