package presenter

import (
	authDTO "github.com/johnquangdev/joyability/internal/adapter/dto/auth"
	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/internal/usecase/auth"
)

// ToIdentityResponse converts an Identity to its DTO
func ToIdentityResponse(id *entities.Identity) *authDTO.IdentityResponse {
	if id == nil {
		return nil
	}
	return &authDTO.IdentityResponse{
		UID:           id.UID,
		DisplayName:   id.DisplayName,
		Email:         id.Email,
		PhotoURL:      id.PhotoURL,
		Provider:      string(id.Provider),
		IsAnonymous:   id.IsAnonymous,
		EmailVerified: id.EmailVerified,
	}
}

// ToAuthResponse converts usecase AuthResponse to DTO AuthResponse
func ToAuthResponse(resp *auth.AuthResponse) *authDTO.AuthResponse {
	if resp == nil {
		return nil
	}
	return &authDTO.AuthResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    int(resp.ExpiresIn),
		TokenType:    "Bearer",
		Identity:     ToIdentityResponse(&resp.Identity),
	}
}
