package crypto_test

import (
	"bytes"
	"strings"
	"testing"

	"onyx/internal/crypto"
)

func TestPublicPEM_RoundTrip(t *testing.T) {
	priv, err := crypto.GenerateRSA()
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}

	pem, err := crypto.MarshalPublicPEM(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPublicPEM: %v", err)
	}
	if !strings.HasPrefix(pem, "-----BEGIN PUBLIC KEY-----") {
		t.Fatalf("not SPKI PEM framing: %q", pem[:min(40, len(pem))])
	}

	pub, err := crypto.ParsePublicPEM(pem)
	if err != nil {
		t.Fatalf("ParsePublicPEM: %v", err)
	}
	if pub.N.Cmp(priv.PublicKey.N) != 0 || pub.E != priv.PublicKey.E {
		t.Fatal("parsed key differs from original")
	}
}

func TestParsePublicPEM_Invalid(t *testing.T) {
	if _, err := crypto.ParsePublicPEM("not a pem"); err == nil {
		t.Fatal("expected error for non-PEM input")
	}
	// Valid PEM framing, garbage DER.
	bad := "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n"
	if _, err := crypto.ParsePublicPEM(bad); err == nil {
		t.Fatal("expected error for garbage DER")
	}
}

func TestSealOpenGCM(t *testing.T) {
	key, err := crypto.NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey: %v", err)
	}
	iv, err := crypto.NewIV()
	if err != nil {
		t.Fatalf("NewIV: %v", err)
	}
	if len(key) != crypto.KeyBytes || len(iv) != crypto.IVBytes {
		t.Fatalf("sizes: key=%d iv=%d", len(key), len(iv))
	}

	plaintext := []byte("the relay sees only bytes")
	ciphertext, tag, err := crypto.SealGCM(key, iv, plaintext)
	if err != nil {
		t.Fatalf("SealGCM: %v", err)
	}
	if len(tag) != crypto.TagBytes {
		t.Fatalf("tag size = %d", len(tag))
	}
	if len(ciphertext) != len(plaintext) {
		t.Fatalf("ciphertext size = %d, want %d", len(ciphertext), len(plaintext))
	}

	got, err := crypto.OpenGCM(key, iv, ciphertext, tag)
	if err != nil {
		t.Fatalf("OpenGCM: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestWrapUnwrapKey(t *testing.T) {
	priv, err := crypto.GenerateRSA()
	if err != nil {
		t.Fatalf("GenerateRSA: %v", err)
	}
	key, err := crypto.NewSessionKey()
	if err != nil {
		t.Fatalf("NewSessionKey: %v", err)
	}

	wrapped, err := crypto.WrapKey(&priv.PublicKey, key)
	if err != nil {
		t.Fatalf("WrapKey: %v", err)
	}
	got, err := crypto.UnwrapKey(priv, wrapped)
	if err != nil {
		t.Fatalf("UnwrapKey: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Fatal("unwrapped key differs")
	}
}
