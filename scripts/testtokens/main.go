package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/johnquangdev/joyability/internal/domain/entities"
	"github.com/johnquangdev/joyability/pkg/config"
	pkgjwt "github.com/johnquangdev/joyability/pkg/jwt"
)

// Mints tokens for local testing without going through Google sign-in.
func main() {
	log.Println("🚀 Minting test tokens...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	testUsers := []entities.Identity{
		entities.GuestIdentity(entities.GuestUIDPrefix + uuid.NewString()),
		{UID: "google:test-alice", DisplayName: "Alice", Email: "alice@test.local", Provider: entities.ProviderGoogle, EmailVerified: true},
		{UID: "google:test-bob", DisplayName: "Bob", Email: "bob@test.local", Provider: entities.ProviderGoogle, EmailVerified: true},
	}

	for i, user := range testUsers {
		profile := pkgjwt.Claims{
			Name:          user.DisplayName,
			Email:         user.Email,
			Provider:      string(user.Provider),
			Anonymous:     user.IsAnonymous,
			EmailVerified: user.EmailVerified,
		}

		accessToken, err := jwtManager.GenerateAccessToken(user.UID, profile)
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", user.Email, err)
			continue
		}
		refreshToken, err := jwtManager.GenerateRefreshToken(user.UID, profile)
		if err != nil {
			log.Printf("❌ Failed to generate refresh token for %s: %v", user.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 User %d: %s\n", i+1, user.DisplayName)
		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("Email:        %s\n", user.Email)
		fmt.Printf("UID:          %s\n", user.UID)
		fmt.Printf("Provider:     %s\n", user.Provider)
		fmt.Printf("\n📋 Access Token (expires in %v):\n", cfg.JWT.AccessExpiry)
		fmt.Printf("%s\n", accessToken)
		fmt.Printf("\n🔄 Refresh Token (expires in %v):\n", cfg.JWT.RefreshExpiry)
		fmt.Printf("%s\n", refreshToken)
		fmt.Printf("───────────────────────────────────────────────────────────────\n\n")
	}

	log.Println("✅ Test tokens minted")
	log.Println("💡 Usage: set header Authorization: Bearer <access_token>")
	log.Println("   For /v1/live, pass the token as ?access_token=<access_token>")
}
