// Package storage defines the durable key-value boundary the ledger and
// account store persist through. Backends only need three verbs; blob
// formats are owned by the callers.
package storage

import (
	"context"
	"strings"
)

// Store is a key → blob store. Get returns errs.ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Remove(ctx context.Context, key string) error
}

// Fixed slots shared by all accounts.
const (
	// AccountsKey holds the credential table (email → account record).
	AccountsKey = "ft_accounts"
	// SessionKey holds the persisted remember-me session token.
	SessionKey = "ft_session"
)

// Per-account collection names.
const (
	CollectionWeights  = "weights"
	CollectionMeals    = "meals"
	CollectionWorkouts = "workouts"
	CollectionPlans    = "wplans"
)

// Namespace derives the per-account key prefix from a case-folded email,
// normalizing every non-alphanumeric rune to '_' so namespaces are stable
// regardless of the email's punctuation.
func Namespace(email string) string {
	var b strings.Builder
	b.WriteString("ft_")
	for _, r := range strings.ToLower(email) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Key joins an account namespace and a collection name into a store key.
func Key(namespace, collection string) string {
	return namespace + "_" + collection
}
