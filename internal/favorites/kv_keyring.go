package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the service name entries are filed under in the OS keychain.
const DefaultKeyringService = "osintex"

// KeyringKV stores values in the operating system keychain.
type KeyringKV struct {
	Service string
}

func NewKeyringKV(service string) *KeyringKV {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringKV{Service: service}
}

func (k *KeyringKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	secret, err := keyring.Get(k.Service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s from keyring: %w", key, err)
	}
	return []byte(secret), true, nil
}

func (k *KeyringKV) Set(_ context.Context, key string, value []byte) error {
	if err := keyring.Set(k.Service, key, string(value)); err != nil {
		return fmt.Errorf("failed to write %s to keyring: %w", key, err)
	}
	return nil
}
