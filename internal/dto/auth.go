package dto

// RegisterRequest carries signup credentials.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse returns the signed JWT after a successful signup or login.
type AuthResponse struct {
	Token string `json:"token"`
}
