package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend is a string-keyed blob store. Get returns ErrNotFound for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Limited rejects writes larger than MaxBytes with ErrQuotaExceeded,
// the way a browser rejects an oversized localStorage item.
type Limited struct {
	Backend
	MaxBytes int
}

func NewLimited(b Backend, maxBytes int) *Limited {
	return &Limited{Backend: b, MaxBytes: maxBytes}
}

func (l *Limited) Set(ctx context.Context, key string, value []byte) error {
	if l.MaxBytes > 0 && len(value) > l.MaxBytes {
		return ErrQuotaExceeded
	}
	return l.Backend.Set(ctx, key, value)
}
