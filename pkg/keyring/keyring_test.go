package keyring_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskplane/riskplane-core/pkg/keyring"
)

func testPublicKey(t *testing.T, kid string) jose.JSONWebKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return jose.JSONWebKey{Key: pub, KeyID: kid, Algorithm: string(jose.EdDSA), Use: "sig"}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()

	store, err := keyring.NewFileStore(dir)
	require.NoError(t, err)

	key := testPublicKey(t, "signer-2026-01")

	t.Run("Add and Get", func(t *testing.T) {
		require.NoError(t, store.Add(key))

		_, err := os.Stat(filepath.Join(dir, "signer-2026-01.jwk"))
		require.NoError(t, err)

		got, err := store.Get("signer-2026-01")
		require.NoError(t, err)
		assert.Equal(t, key.KeyID, got.KeyID)
		assert.Equal(t, key.Algorithm, got.Algorithm)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, err := store.Get("non-existent")
		assert.ErrorIs(t, err, keyring.ErrKeyNotFound)
	})

	t.Run("List", func(t *testing.T) {
		keys, err := store.List()
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "signer-2026-01", keys[0].KeyID)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Remove("signer-2026-01"))

		_, err := store.Get("signer-2026-01")
		assert.ErrorIs(t, err, keyring.ErrKeyNotFound)

		assert.ErrorIs(t, store.Remove("signer-2026-01"), keyring.ErrKeyNotFound)
	})
}

func TestFileStore_RejectsBadKeys(t *testing.T) {
	store, err := keyring.NewFileStore(t.TempDir())
	require.NoError(t, err)

	t.Run("missing kid", func(t *testing.T) {
		key := testPublicKey(t, "")
		assert.ErrorIs(t, store.Add(key), keyring.ErrInvalidKey)
	})

	t.Run("private key", func(t *testing.T) {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		key := jose.JSONWebKey{Key: priv, KeyID: "leaky", Algorithm: string(jose.EdDSA)}
		assert.ErrorIs(t, store.Add(key), keyring.ErrInvalidKey)
	})
}

func TestFileStore_KidSanitized(t *testing.T) {
	dir := t.TempDir()
	store, err := keyring.NewFileStore(dir)
	require.NoError(t, err)

	key := testPublicKey(t, "issuer/key:1")
	require.NoError(t, store.Add(key))

	_, err = os.Stat(filepath.Join(dir, "issuer_key_1.jwk"))
	assert.NoError(t, err)

	got, err := store.Get("issuer/key:1")
	require.NoError(t, err)
	assert.Equal(t, "issuer/key:1", got.KeyID)
}
