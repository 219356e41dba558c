// Package creds resolves the journaling service password without ever
// writing it to a file: an explicit value first, then the environment, then
// the OS keyring.
package creds

import (
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Service is the keyring service name the password is filed under.
const Service = "tradervue"

// Environment variables consulted before the keyring.
const (
	EnvUsername = "TRADERVUE_USERNAME"
	EnvPassword = "TRADERVUE_PASSWORD"
)

// Password returns the password for username. An explicit value beats the
// environment, which beats the keyring.
func Password(explicit, username string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if pw := os.Getenv(EnvPassword); pw != "" {
		return pw, nil
	}
	pw, err := keyring.Get(Service, username)
	if err != nil {
		return "", fmt.Errorf("no password for %q in $%s or the OS keyring: %w", username, EnvPassword, err)
	}
	return pw, nil
}

// Store saves the password for username in the OS keyring.
func Store(username, password string) error {
	if err := keyring.Set(Service, username, password); err != nil {
		return fmt.Errorf("store password for %q: %w", username, err)
	}
	return nil
}

// Delete removes the stored password for username from the OS keyring.
func Delete(username string) error {
	if err := keyring.Delete(Service, username); err != nil {
		return fmt.Errorf("delete password for %q: %w", username, err)
	}
	return nil
}
