// Package configstore implements persistence for registered device
// configurations.
package configstore

import (
	"context"
	"errors"
)

// ErrNotFound indicates the referenced device configuration does not exist.
var ErrNotFound = errors.New("configuration not found")

// Store defines the interface for device configuration storage. Get returns
// (nil, nil) when the key is absent; Delete reports ErrNotFound instead.
type Store interface {
	// Put stores a device configuration, replacing any previous record
	// under the same key ID.
	Put(ctx context.Context, cfg *DeviceConfig) error

	// Get retrieves a device configuration by key ID.
	Get(ctx context.Context, keyID string) (*DeviceConfig, error)

	// Delete removes a device configuration and its embedded artifacts.
	Delete(ctx context.Context, keyID string) error

	// List returns every stored configuration in no particular order.
	List(ctx context.Context) ([]*DeviceConfig, error)

	// CheckHealth verifies the storage backend is healthy.
	CheckHealth(ctx context.Context) error
}
