package policy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

// Common errors returned by signing and verification.
var (
	ErrNotSigned        = errors.New("policy is not signed")
	ErrPayloadMismatch  = errors.New("signed payload does not match embedded policy")
	ErrUnsupportedKey   = errors.New("key does not support EdDSA signing")
	ErrInvalidSignature = errors.New("policy signature is invalid")
)

// Envelope wraps a policy document together with a compact JWS over its
// canonical JSON. The embedded document is kept readable; Verify checks
// that it matches the signed payload byte-for-byte after normalization.
type Envelope struct {
	Policy    json.RawMessage `json:"policy"`
	Signature string          `json:"signature"`
}

// probeEnvelope returns the envelope when data looks like one, nil
// otherwise.
func probeEnvelope(data []byte) *Envelope {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	if env.Signature == "" || len(env.Policy) == 0 {
		return nil
	}
	return &env
}

// ParseEnvelope decodes a signed policy file.
func ParseEnvelope(data []byte) (*Envelope, error) {
	env := probeEnvelope(data)
	if env == nil {
		return nil, ErrNotSigned
	}
	return env, nil
}

// Sign produces a signed envelope for the policy using an EdDSA private
// key in JWK form.
func Sign(p *Policy, key *jose.JSONWebKey) (*Envelope, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy: %w", err)
	}

	opts := (&jose.SignerOptions{}).WithHeader("kid", key.KeyID)
	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.EdDSA, Key: key.Key}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKey, err)
	}

	obj, err := signer.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to sign policy: %w", err)
	}
	compact, err := obj.CompactSerialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize signature: %w", err)
	}

	return &Envelope{Policy: payload, Signature: compact}, nil
}

// Verify checks the envelope signature with an EdDSA public key and
// returns the verified policy. The embedded document must match the
// signed payload.
func Verify(env *Envelope, key *jose.JSONWebKey) (*Policy, error) {
	obj, err := jose.ParseSigned(env.Signature, []jose.SignatureAlgorithm{jose.EdDSA})
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature: %w", err)
	}

	payload, err := obj.Verify(key.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	same, err := jsonEqual(payload, env.Policy)
	if err != nil {
		return nil, err
	}
	if !same {
		return nil, ErrPayloadMismatch
	}

	return Parse(payload)
}

// jsonEqual compares two JSON documents structurally.
func jsonEqual(a, b []byte) (bool, error) {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false, fmt.Errorf("failed to parse signed payload: %w", err)
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false, fmt.Errorf("failed to parse embedded policy: %w", err)
	}
	ab, _ := json.Marshal(av)
	bb, _ := json.Marshal(bv)
	return bytes.Equal(ab, bb), nil
}
