package entities

// Provider names where an identity came from
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGuest  Provider = "guest"
)

// Identity is the signed-in user. It is never persisted; it travels inside tokens.
type Identity struct {
	UID           string   `json:"uid"`
	DisplayName   string   `json:"display_name"`
	Email         string   `json:"email"`
	PhotoURL      string   `json:"photo_url,omitempty"`
	Provider      Provider `json:"provider"`
	IsAnonymous   bool     `json:"is_anonymous"`
	EmailVerified bool     `json:"email_verified"`
}

// GuestUIDPrefix marks identities minted by guest sign-in
const GuestUIDPrefix = "guest-"

// GuestIdentity returns the placeholder guest profile under uid. Every guest
// sign-in gets its own uid so per-identity state is never shared.
func GuestIdentity(uid string) Identity {
	return Identity{
		UID:           uid,
		DisplayName:   "Guest User",
		Email:         "guest@joyability.app",
		Provider:      ProviderGuest,
		IsAnonymous:   true,
		EmailVerified: true,
	}
}
