// Package kvstore holds per-session string values: the server-side stand-in
// for the browser's local storage. Values are replaced whole, never patched.
package kvstore

import (
	"context"
	"errors"
)

// Fixed keys used by the storefront.
const (
	KeyToken  = "token"
	KeyRole   = "role"
	KeyUserID = "userId"
	KeyCart   = "cart"
	KeyLikes  = "likedProducts"
)

var ErrNoNamespace = errors.New("kvstore: empty namespace")

type Store interface {
	// Get returns the value under key; ok is false when nothing is stored.
	Get(ctx context.Context, ns, key string) (value string, ok bool, err error)
	Set(ctx context.Context, ns, key, value string) error
	Delete(ctx context.Context, ns string, keys ...string) error
}
