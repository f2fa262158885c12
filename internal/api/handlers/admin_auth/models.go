package admin_auth

// AuthRequest HTTP request model
type AuthRequest struct {
	Password string `json:"password"`
}

// AuthResponse HTTP response model
type AuthResponse struct {
	Success bool `json:"success"`
}
