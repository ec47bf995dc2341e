// Test program to generate session JWT tokens for exercising the API by hand
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/eventease/server/internal/domain/auth"
)

func main() {
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (default: JWT_SECRET env var)")
	sessionID := flag.String("session", "", "session id to embed as the token subject")
	email := flag.String("email", "test@example.com", "email claim")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: a signing secret is required (--secret or JWT_SECRET)")
		os.Exit(1)
	}
	if *sessionID == "" {
		fmt.Fprintln(os.Stderr, "Error: --session is required; tokens are only useful for live session ids")
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(*secret, *expiry, "eventease")
	token, err := tokens.Generate(*sessionID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/v1/sessions\n", token)
}
