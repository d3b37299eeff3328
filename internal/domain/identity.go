package domain

import "crypto/rsa"

// Identity is this participant's session identity: a random id and an RSA
// key pair generated once per process. The private key never leaves the
// struct; the public half is additionally carried as a PEM-encoded SPKI
// string ready for transmission.
type Identity struct {
	ID        string
	Priv      *rsa.PrivateKey
	PublicPEM string
}

// Public returns the public half of the key pair.
func (id *Identity) Public() *rsa.PublicKey {
	return &id.Priv.PublicKey
}

// ShortID truncates an id to the 8-character prefix used for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
