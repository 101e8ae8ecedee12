package policy_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskplane/riskplane-core/pkg/policy"
)

func testKeyPair(t *testing.T) (*jose.JSONWebKey, *jose.JSONWebKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privJwk := &jose.JSONWebKey{Key: priv, KeyID: "test-key", Algorithm: string(jose.EdDSA), Use: "sig"}
	pubJwk := &jose.JSONWebKey{Key: pub, KeyID: "test-key", Algorithm: string(jose.EdDSA), Use: "sig"}
	return privJwk, pubJwk
}

func TestSignVerify_RoundTrip(t *testing.T) {
	priv, pub := testKeyPair(t)
	pol := policy.Default()

	env, err := policy.Sign(pol, priv)
	require.NoError(t, err)
	assert.NotEmpty(t, env.Signature)

	got, err := policy.Verify(env, pub)
	require.NoError(t, err)
	assert.Equal(t, pol.ID, got.ID)
	assert.Equal(t, pol.Version, got.Version)
	assert.Len(t, got.Rules, len(pol.Rules))
}

func TestVerify_WrongKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)

	env, err := policy.Sign(policy.Default(), priv)
	require.NoError(t, err)

	_, err = policy.Verify(env, otherPub)
	assert.ErrorIs(t, err, policy.ErrInvalidSignature)
}

func TestVerify_TamperedPolicy(t *testing.T) {
	priv, pub := testKeyPair(t)

	env, err := policy.Sign(policy.Default(), priv)
	require.NoError(t, err)

	// Swap the embedded document for a different one; the JWS still
	// verifies but the payload no longer matches.
	tampered, err := json.Marshal(map[string]any{"id": "evil", "rules": []any{}})
	require.NoError(t, err)
	env.Policy = tampered

	_, err = policy.Verify(env, pub)
	assert.ErrorIs(t, err, policy.ErrPayloadMismatch)
}

func TestParseEnvelope(t *testing.T) {
	t.Run("plain policy is not an envelope", func(t *testing.T) {
		_, err := policy.ParseEnvelope([]byte(`{"id": "p1", "rules": []}`))
		assert.ErrorIs(t, err, policy.ErrNotSigned)
	})

	t.Run("signed policy round-trips through JSON", func(t *testing.T) {
		priv, _ := testKeyPair(t)
		env, err := policy.Sign(policy.Default(), priv)
		require.NoError(t, err)

		data, err := json.Marshal(env)
		require.NoError(t, err)

		got, err := policy.ParseEnvelope(data)
		require.NoError(t, err)
		assert.Equal(t, env.Signature, got.Signature)
	})
}

func TestParse_SignedEnvelope(t *testing.T) {
	// Parse unwraps signed envelopes without verification so scoring
	// commands accept both forms.
	priv, _ := testKeyPair(t)
	env, err := policy.Sign(policy.Default(), priv)
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	p, err := policy.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "default-policy", p.ID)
	assert.Len(t, p.Rules, 3)
}
