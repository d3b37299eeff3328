package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Frame type discriminators on the wire.
const (
	TypeHandshake = "handshake"
	TypeMsg       = "msg"
)

// Handshake announces a participant's id and public key to everyone on the
// relay. It is transient: handled once on receipt, never stored.
type Handshake struct {
	Type     string `json:"type"`
	SenderID string `json:"sender_id"`
	PubKey   string `json:"pubkey"`
}

// NewHandshake builds the announcement frame for the given identity.
func NewHandshake(id *Identity) Handshake {
	return Handshake{
		Type:     TypeHandshake,
		SenderID: id.ID,
		PubKey:   id.PublicPEM,
	}
}

// ChatFrame is the wire form of one Envelope plus routing metadata.
type ChatFrame struct {
	Type     string   `json:"type"`
	SenderID string   `json:"sender_id"`
	Payload  Envelope `json:"payload"`
}

// Frame is the tagged union of everything the relay can deliver. Exactly one
// of Handshake and Chat is non-nil for a recognised frame; otherwise Unknown
// holds the unrecognised type discriminator.
type Frame struct {
	Handshake *Handshake
	Chat      *ChatFrame
	Unknown   string
}

// ErrMalformedFrame marks wire lines that cannot be decoded into a frame, or
// that decode but are missing required fields. Such frames are logged and
// dropped; they never terminate the session.
var ErrMalformedFrame = errors.New("malformed frame")

// ParseFrame decodes one wire line into a tagged Frame. Unrecognised type
// discriminators are not an error; they come back as Frame{Unknown: ...} so
// the caller can drop them explicitly.
func ParseFrame(line []byte) (Frame, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(line, &probe); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	switch probe.Type {
	case TypeHandshake:
		var h Handshake
		if err := json.Unmarshal(line, &h); err != nil {
			return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		if h.SenderID == "" || h.PubKey == "" {
			return Frame{}, fmt.Errorf("%w: handshake missing fields", ErrMalformedFrame)
		}
		return Frame{Handshake: &h}, nil
	case TypeMsg:
		var c ChatFrame
		if err := json.Unmarshal(line, &c); err != nil {
			return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
		}
		if c.SenderID == "" {
			return Frame{}, fmt.Errorf("%w: msg missing sender_id", ErrMalformedFrame)
		}
		return Frame{Chat: &c}, nil
	default:
		return Frame{Unknown: probe.Type}, nil
	}
}
