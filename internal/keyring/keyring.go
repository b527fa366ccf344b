// Package keyring stores provider credentials in the system keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	// ServiceName is the keyring service folio stores secrets under.
	ServiceName = "com.jonandersen.folio"

	// KeyEODHDAPIKey holds the EODHD API token.
	KeyEODHDAPIKey = "eodhd_api_key"

	// EnvEODHDAPIKey overrides the keyring for headless environments.
	EnvEODHDAPIKey = "FOLIO_EODHD_API_KEY"
)

// ErrNotFound is returned when a secret is not stored.
var ErrNotFound = errors.New("secret not found")

// Store is a secret store keyed by service and key.
type Store interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// SystemStore uses the OS keyring.
type SystemStore struct{}

func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

func (s *SystemStore) Get(service, key string) (string, error) {
	secret, err := gokeyring.Get(service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return secret, err
}

func (s *SystemStore) Set(service, key, value string) error {
	return gokeyring.Set(service, key, value)
}

// Delete removes a secret. Deleting a missing secret succeeds.
func (s *SystemStore) Delete(service, key string) error {
	if err := gokeyring.Delete(service, key); err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return err
	}
	return nil
}

// envOverrides maps keyring keys to the environment variable that overrides
// them.
var envOverrides = map[string]string{
	KeyEODHDAPIKey: EnvEODHDAPIKey,
}

// EnvStore reads overridable keys from the environment before falling back to
// the wrapped store. Writes always go to the wrapped store.
type EnvStore struct {
	underlying Store
}

func NewEnvStore(underlying Store) *EnvStore {
	return &EnvStore{underlying: underlying}
}

func (e *EnvStore) Get(service, key string) (string, error) {
	if name, ok := envOverrides[key]; ok {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return e.underlying.Get(service, key)
}

func (e *EnvStore) Set(service, key, value string) error {
	return e.underlying.Set(service, key, value)
}

func (e *EnvStore) Delete(service, key string) error {
	return e.underlying.Delete(service, key)
}

// Default returns the store commands use: environment first, then the OS
// keyring.
func Default() Store {
	return NewEnvStore(NewSystemStore())
}

// APIKey returns the stored EODHD API key, or "" when none is stored.
func APIKey(store Store) (string, error) {
	key, err := store.Get(ServiceName, KeyEODHDAPIKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read API key from keyring: %w", err)
	}
	return key, nil
}

// SetAPIKey stores the EODHD API key.
func SetAPIKey(store Store, key string) error {
	if key == "" {
		return errors.New("API key cannot be empty")
	}
	if err := store.Set(ServiceName, KeyEODHDAPIKey, key); err != nil {
		return fmt.Errorf("failed to store API key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the stored EODHD API key.
func DeleteAPIKey(store Store) error {
	if err := store.Delete(ServiceName, KeyEODHDAPIKey); err != nil {
		return fmt.Errorf("failed to remove API key from keyring: %w", err)
	}
	return nil
}
