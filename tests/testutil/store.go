package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/99designs/keyring"

	"github.com/nhle/dailykit/internal/credential"
	"github.com/nhle/dailykit/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestVault returns a credential vault held in memory.
func NewTestVault(t *testing.T) *credential.Vault {
	t.Helper()
	return credential.NewVault(keyring.NewArrayKeyring(nil))
}

// ErrVaultUnavailable is what the vault from NewFailingVault returns on writes.
var ErrVaultUnavailable = errors.New("vault unavailable")

// readOnlyKeyring serves reads and removals from memory but refuses writes.
type readOnlyKeyring struct {
	*keyring.ArrayKeyring
}

func (readOnlyKeyring) Set(keyring.Item) error { return ErrVaultUnavailable }

// NewFailingVault returns a credential vault whose Set always fails.
func NewFailingVault(t *testing.T) *credential.Vault {
	t.Helper()
	return credential.NewVault(readOnlyKeyring{keyring.NewArrayKeyring(nil)})
}

// Clock is a settable time source for code that takes a func() time.Time.
type Clock struct {
	Now time.Time
}

// NewClock returns a clock stopped at now.
func NewClock(now time.Time) *Clock {
	return &Clock{Now: now}
}

// Func returns the clock as a time source.
func (c *Clock) Func() func() time.Time {
	return func() time.Time { return c.Now }
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.Now = c.Now.Add(d)
}
