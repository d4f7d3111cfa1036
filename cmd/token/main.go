// Command token mints an HS256 bearer token for the write routes of the API.
// It signs with JWT_SECRET, the same secret the API verifies with.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"holidaykeeper/internal/platform/crypto"
)

var errNoSecret = errors.New("JWT_SECRET is not set")

func main() {
	var (
		subject = flag.String("sub", "operator", "Token subject")
		role    = flag.String("role", crypto.RoleAdmin, "Role claim")
		ttl     = flag.Duration("ttl", time.Hour, "Token lifetime")
	)
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	if err := run(os.Stdout, os.Getenv("JWT_SECRET"), *subject, *role, *ttl); err != nil {
		slog.Error("token_failed", "error", err)
		os.Exit(1)
	}
}

func run(out io.Writer, secret, subject, role string, ttl time.Duration) error {
	if secret == "" {
		return errNoSecret
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	token, jti, err := crypto.GenerateToken(secret, subject, role, ttl)
	if err != nil {
		return err
	}
	slog.Info("token_issued", "sub", subject, "role", role, "jti", jti, "expires_in", ttl.String())
	_, err = fmt.Fprintln(out, token)
	return err
}
