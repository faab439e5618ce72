package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	userID := flag.String("user", "", "User ID (uuid) for the token")
	tenantID := flag.String("tenant", "", "Tenant ID (uuid) for the token")
	email := flag.String("email", "", "Email claim")
	role := flag.String("role", string(domain.RoleClient), "One of client, consultant, agent, admin")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	flag.Parse()

	if *userID == "" || *tenantID == "" {
		log.Fatal("User ID and tenant ID are required")
	}
	if !domain.IsValidRole(*role) {
		log.Fatalf("Unknown role %q", *role)
	}

	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
		SecretKey: os.Getenv("JWT_SECRET_KEY"),
		Issuer:    os.Getenv("JWT_ISSUER"),
		Audience:  os.Getenv("JWT_AUDIENCE"),
		Expiry:    time.Duration(*expirationHours) * time.Hour,
	})
	if err != nil {
		log.Fatalf("Error creating token issuer: %v", err)
	}

	token, err := issuer.Issue(*userID, *tenantID, *email, domain.Role(*role))
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated JWT Token:\n%s\n", token)
}
