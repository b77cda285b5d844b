package config

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const serviceRole = "service_role"

// CheckPublicKey rejects Supabase keys that bypass row level security. Legacy
// keys are JWTs carrying a role claim; newer keys are opaque and prefixed.
// The signature is not verified since only the project holds the secret.
func CheckPublicKey(key string) error {
	if strings.HasPrefix(key, "sb_secret_") {
		return fmt.Errorf("supabase_anon_key is a secret key and must not be used by the web app")
	}
	if strings.Count(key, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return fmt.Errorf("supabase_anon_key is not a valid JWT: %w", err)
	}
	if role, _ := claims["role"].(string); role == serviceRole {
		return fmt.Errorf("supabase_anon_key carries the %s role and must not be used by the web app", serviceRole)
	}
	return nil
}
