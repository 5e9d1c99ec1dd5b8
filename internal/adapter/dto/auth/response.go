package auth

// IdentityResponse represents the signed-in identity
type IdentityResponse struct {
	UID           string `json:"uid"`
	DisplayName   string `json:"display_name"`
	Email         string `json:"email"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Provider      string `json:"provider"`
	IsAnonymous   bool   `json:"is_anonymous"`
	EmailVerified bool   `json:"email_verified"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	ExpiresIn    int               `json:"expires_in"` // seconds
	TokenType    string            `json:"token_type"` // "Bearer"
	Identity     *IdentityResponse `json:"identity"`
}

// LoginURLResponse is returned by the login endpoint when JSON is requested
type LoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}
