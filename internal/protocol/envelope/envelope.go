package envelope

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"onyx/internal/crypto"
	"onyx/internal/domain"
	"onyx/internal/util/memzero"
)

var (
	// ErrNoKeyForRecipient means the envelope carries no wrapped key for
	// this identity. Expected when overhearing traffic addressed to others;
	// callers should report it in a muted way, distinct from corruption.
	ErrNoKeyForRecipient = errors.New("envelope not addressed to this identity")

	// ErrKeyUnwrap means the RSA-OAEP unwrap of the session key failed.
	ErrKeyUnwrap = errors.New("session key unwrap failed")

	// ErrAuthentication means the payload failed authenticated decryption:
	// tag mismatch, corrupted ciphertext, or undecodable fields.
	ErrAuthentication = errors.New("envelope authentication failed")
)

// Seal encrypts plaintext for every recipient in the set. A fresh session
// key and IV are generated per call. An empty recipient set still yields a
// valid envelope, just one nobody can open; the caller decides whether that
// is worth warning about.
func Seal(plaintext string, recipients map[string]*rsa.PublicKey) (domain.Envelope, error) {
	key, err := crypto.NewSessionKey()
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("session key: %w", err)
	}
	defer memzero.Zero(key)

	iv, err := crypto.NewIV()
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("iv: %w", err)
	}

	ciphertext, tag, err := crypto.SealGCM(key, iv, []byte(plaintext))
	if err != nil {
		return domain.Envelope{}, fmt.Errorf("seal payload: %w", err)
	}

	wrapped := make(map[string]string, len(recipients))
	for id, pub := range recipients {
		wk, err := crypto.WrapKey(pub, key)
		if err != nil {
			return domain.Envelope{}, fmt.Errorf("wrap key for %s: %w", id, err)
		}
		wrapped[id] = crypto.B64(wk)
	}

	return domain.Envelope{
		IV:         crypto.B64(iv),
		Tag:        crypto.B64(tag),
		Ciphertext: crypto.B64(ciphertext),
		Keys:       wrapped,
	}, nil
}

// Open recovers the plaintext of an envelope addressed to ownID. The three
// sentinel errors are distinguishable with errors.Is; all are non-fatal.
func Open(env domain.Envelope, ownID string, priv *rsa.PrivateKey) (string, error) {
	wrappedB64, ok := env.Keys[ownID]
	if !ok {
		return "", ErrNoKeyForRecipient
	}

	wrapped, err := crypto.UnB64(wrappedB64)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyUnwrap, err)
	}
	key, err := crypto.UnwrapKey(priv, wrapped)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyUnwrap, err)
	}
	defer memzero.Zero(key)

	iv, err := crypto.UnB64(env.IV)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	tag, err := crypto.UnB64(env.Tag)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	ciphertext, err := crypto.UnB64(env.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	plaintext, err := crypto.OpenGCM(key, iv, ciphertext, tag)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return string(plaintext), nil
}
