package peers

import (
	"crypto/rsa"

	"onyx/internal/crypto"
)

// Directory maps peer ids to their imported public keys. It is owned by the
// session and only ever touched inside its serialized event loop, so it
// carries no lock.
//
// Entries are insert-once: a second handshake for a known id never rebinds
// the key, which closes the door on a relay or peer silently swapping a
// known identity's key mid-session. The flip side is that a peer rejoining
// under the same id with a freshly generated key pair keeps its stale entry
// for the rest of the session.
type Directory struct {
	keys map[string]*rsa.PublicKey
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{keys: make(map[string]*rsa.PublicKey)}
}

// Has reports whether id is already known.
func (d *Directory) Has(id string) bool {
	_, ok := d.keys[id]
	return ok
}

// Insert parses pem and records it as id's encryption key. A malformed PEM
// returns crypto.ErrKeyImport and leaves the directory unchanged. Inserting
// an already-known id is a no-op.
func (d *Directory) Insert(id, pem string) error {
	if d.Has(id) {
		return nil
	}
	pub, err := crypto.ParsePublicPEM(pem)
	if err != nil {
		return err
	}
	d.keys[id] = pub
	return nil
}

// KnownIDs returns the ids of all known peers. Order is not stable across
// calls.
func (d *Directory) KnownIDs() []string {
	ids := make([]string, 0, len(d.keys))
	for id := range d.keys {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns the current id-to-key mapping for use as an envelope
// recipient set. The returned map is a copy; later inserts do not affect it.
func (d *Directory) Snapshot() map[string]*rsa.PublicKey {
	out := make(map[string]*rsa.PublicKey, len(d.keys))
	for id, pub := range d.keys {
		out[id] = pub
	}
	return out
}

// Len returns the number of known peers.
func (d *Directory) Len() int { return len(d.keys) }
