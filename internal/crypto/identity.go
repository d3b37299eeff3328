package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
)

const rsaBits = 2048

// ErrKeyImport is returned when a peer's PEM does not parse as an
// SPKI-encoded RSA public key. The peer is reported and skipped; nothing
// else fails.
var ErrKeyImport = errors.New("public key import failed")

// GenerateRSA creates this session's 2048-bit key pair. Failure is fatal to
// the session: without a key pair there is nothing to announce.
func GenerateRSA() (*rsa.PrivateKey, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	return priv, nil
}

// MarshalPublicPEM encodes pub as a PEM SPKI block, the form peers exchange
// in handshake frames.
func MarshalPublicPEM(pub *rsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", err
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// ParsePublicPEM decodes a peer's PEM SPKI block into an RSA public key.
// The result is only ever used to encrypt; it is never this participant's
// own key.
func ParsePublicPEM(pemStr string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil {
		return nil, fmt.Errorf("%w: not PEM", ErrKeyImport)
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyImport, err)
	}
	pub, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrKeyImport)
	}
	return pub, nil
}
