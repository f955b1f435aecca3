package model

// LoginRequest is the moderation console sign-in body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google OAuth access token obtained by
// the console; the token's account must match the configured
// administrator address.
type GoogleLoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

// LoginResponse returns the bearer token the console attaches to
// moderation requests.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Email     string `json:"email"`
}
