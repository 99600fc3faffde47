package utils

import (
	"log"

	"github.com/matthewhartstonge/argon2"

	"plush-store/config"
)

func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func VerifyPassword(encodedHash, password string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// EnsureAdminHash derives the admin password hash at boot when only the
// plain ADMIN_PASSWORD is configured. With neither set, admin login stays
// disabled.
func EnsureAdminHash() {
	cfg := config.AppConfig
	if cfg.AdminPasswordHash != "" || cfg.AdminPassword == "" {
		return
	}
	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password, admin login disabled: %v", err)
		return
	}
	cfg.AdminPasswordHash = hash
}
