// Command devtoken mints a session token for local development, since
// sessions are normally issued by the frontend's auth service.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/types"
)

func main() {
	uid := flag.String("uid", "", "User ID to put in the token")
	email := flag.String("email", "", "Optional email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	if *uid == "" {
		log.Fatal("-uid is required")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	token, err := service.NewAuthService(secret).GenerateToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(*ttl))},
		UserID:           *uid,
		Email:            *email,
	})
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Println(token)
}
