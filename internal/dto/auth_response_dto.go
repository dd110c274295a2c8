package dto

// LoginRequest carries the login credentials. Which identifiers are required
// depends on the configured login identifier policy.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// RefreshTokenRequest lets clients that cannot send cookies pass the refresh token in the body.
type RefreshTokenRequest struct {
	RefreshToken string `form:"refreshToken" json:"refreshToken"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
