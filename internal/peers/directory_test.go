package peers_test

import (
	"errors"
	"testing"

	"onyx/internal/crypto"
	"onyx/internal/peers"
)

// makePEM generates a fresh key pair and returns its public PEM.
func makePEM(t *testing.T) string {
	t.Helper()
	priv, err := crypto.GenerateRSA()
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	pem, err := crypto.MarshalPublicPEM(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPublicPEM: %v", err)
	}
	return pem
}

func TestDirectory_InsertAndLookup(t *testing.T) {
	d := peers.NewDirectory()
	if d.Has("a") || d.Len() != 0 {
		t.Fatal("new directory not empty")
	}

	if err := d.Insert("a", makePEM(t)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !d.Has("a") || d.Len() != 1 {
		t.Fatal("entry missing after insert")
	}
	if ids := d.KnownIDs(); len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("KnownIDs = %v", ids)
	}
}

func TestDirectory_InsertOnce(t *testing.T) {
	d := peers.NewDirectory()
	if err := d.Insert("a", makePEM(t)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	first := d.Snapshot()["a"]

	// A second insert for the same id must not rebind the key, even to a
	// different, valid one.
	if err := d.Insert("a", makePEM(t)); err != nil {
		t.Fatalf("second Insert: %v", err)
	}
	if d.Len() != 1 {
		t.Fatalf("Len = %d", d.Len())
	}
	if got := d.Snapshot()["a"]; got.N.Cmp(first.N) != 0 {
		t.Fatal("key was rebound by second insert")
	}
}

func TestDirectory_BadPEM(t *testing.T) {
	d := peers.NewDirectory()
	err := d.Insert("a", "not a key")
	if !errors.Is(err, crypto.ErrKeyImport) {
		t.Fatalf("want ErrKeyImport, got %v", err)
	}
	if d.Has("a") {
		t.Fatal("failed import must not add an entry")
	}
}

func TestDirectory_SnapshotIsCopy(t *testing.T) {
	d := peers.NewDirectory()
	snap := d.Snapshot()
	if err := d.Insert("a", makePEM(t)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(snap) != 0 {
		t.Fatal("snapshot observed a later insert")
	}
}
