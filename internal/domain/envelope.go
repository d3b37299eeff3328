package domain

// Envelope is the self-contained encrypted unit carrying one plaintext to
// zero or more recipients. The payload is sealed once under a one-time
// symmetric key; Keys holds that key wrapped separately for every recipient
// known to the sender at encryption time.
//
// All binary fields are standard base64 within the JSON frame. Ciphertext
// and the 16-byte authentication tag travel as two independent fields; the
// split is part of the wire format.
type Envelope struct {
	IV         string            `json:"iv"`
	Tag        string            `json:"tag"`
	Ciphertext string            `json:"ciphertext"`
	Keys       map[string]string `json:"keys"`
}
