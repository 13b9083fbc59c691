package credential

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault(t *testing.T) {
	v := NewVault(keyring.NewArrayKeyring(nil))
	key := NotePinKey(7)
	assert.Equal(t, "note-pin-7", key)

	_, err := v.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, v.Set(key, "1357"))
	got, err := v.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "1357", got)

	require.NoError(t, v.Delete(key))
	require.NoError(t, v.Delete(key))
	_, err = v.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_FileBackend(t *testing.T) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      serviceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          t.TempDir(),
		FilePasswordFunc: keyring.FixedStringPrompt("test"),
	})
	require.NoError(t, err)

	v := NewVault(ring)
	require.NoError(t, v.Set(NotePinKey(1), "0000"))
	got, err := v.Get(NotePinKey(1))
	require.NoError(t, err)
	assert.Equal(t, "0000", got)
}
