package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
)

const (
	// KeyBytes is the one-time AES session key size.
	KeyBytes = 32
	// IVBytes is the GCM nonce size on the wire.
	IVBytes = 12
	// TagBytes is the GCM authentication tag size on the wire.
	TagBytes = 16
)

// NewSessionKey returns a fresh 256-bit symmetric key. Never reused across
// messages or sessions.
func NewSessionKey() ([]byte, error) {
	key := make([]byte, KeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// NewIV returns a fresh 12-byte GCM nonce.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVBytes)
	if _, err := rand.Read(iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// SealGCM encrypts plaintext under key and iv with AES-256-GCM and returns
// ciphertext and tag separately. GCM emits ciphertext||tag as one buffer;
// the trailing TagBytes are split off because the wire format carries them
// as two independent fields.
func SealGCM(key, iv, plaintext []byte) (ciphertext, tag []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - TagBytes
	return sealed[:split], sealed[split:], nil
}

// OpenGCM reassembles ciphertext||tag in that order and authenticated-
// decrypts it. A tag mismatch or corrupted input returns an error and no
// plaintext, never wrong plaintext.
func OpenGCM(key, iv, ciphertext, tag []byte) ([]byte, error) {
	if len(tag) != TagBytes {
		return nil, errors.New("bad tag size")
	}
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	return aead.Open(nil, iv, sealed, nil)
}

// WrapKey encrypts the raw session key for one recipient with RSA-OAEP.
func WrapKey(pub *rsa.PublicKey, key []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, key, nil)
}

// UnwrapKey recovers the session key with this participant's private key.
func UnwrapKey(priv *rsa.PrivateKey, wrapped []byte) ([]byte, error) {
	return rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, wrapped, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
