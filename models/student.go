package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Student struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// LoginResponse is returned by POST /login. Token is the signed session
// token; header-based auth stays the checked mechanism on every endpoint.
type LoginResponse struct {
	StudentID int    `json:"studentId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
}
