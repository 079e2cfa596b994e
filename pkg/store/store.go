// Package store persists small client-side values, chiefly the chat session
// identifier, across runs. It plays the role the browser's localStorage plays
// for the web widget.
package store

import (
	"context"
	"errors"
)

// SessionIDKey is the key under which the chat session identifier is kept.
const SessionIDKey = "yoi_session_id"

// Common errors for store construction and use.
var (
	ErrInvalidConfig    = errors.New("invalid store configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
	ErrClosed           = errors.New("store is closed")
)

// Store defines a durable string key-value store.
type Store interface {
	// Get returns the value stored under key.
	// ok is false when the key is absent (not an error).
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
