package domain_test

import (
	"errors"
	"testing"

	"onyx/internal/domain"
)

func TestParseFrame_Handshake(t *testing.T) {
	line := []byte(`{"type":"handshake","sender_id":"abc","pubkey":"-----BEGIN PUBLIC KEY-----"}`)

	f, err := domain.ParseFrame(line)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Handshake == nil || f.Chat != nil {
		t.Fatalf("expected handshake variant, got %+v", f)
	}
	if f.Handshake.SenderID != "abc" {
		t.Fatalf("sender_id = %q", f.Handshake.SenderID)
	}
}

func TestParseFrame_Msg(t *testing.T) {
	line := []byte(`{"type":"msg","sender_id":"abc","payload":{"iv":"aXY=","tag":"dGFn","ciphertext":"Y3Q=","keys":{"def":"a2V5"}}}`)

	f, err := domain.ParseFrame(line)
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Chat == nil {
		t.Fatalf("expected chat variant, got %+v", f)
	}
	if got := f.Chat.Payload.Keys["def"]; got != "a2V5" {
		t.Fatalf("wrapped key = %q", got)
	}
}

func TestParseFrame_UnknownType(t *testing.T) {
	f, err := domain.ParseFrame([]byte(`{"type":"presence","sender_id":"abc"}`))
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	if f.Handshake != nil || f.Chat != nil {
		t.Fatalf("expected unknown variant, got %+v", f)
	}
	if f.Unknown != "presence" {
		t.Fatalf("Unknown = %q", f.Unknown)
	}
}

func TestParseFrame_Malformed(t *testing.T) {
	for _, line := range []string{
		`not json`,
		`{"type":"handshake","sender_id":"abc"}`,
		`{"type":"handshake","pubkey":"pem"}`,
		`{"type":"msg"}`,
	} {
		if _, err := domain.ParseFrame([]byte(line)); !errors.Is(err, domain.ErrMalformedFrame) {
			t.Fatalf("line %q: want ErrMalformedFrame, got %v", line, err)
		}
	}
}
