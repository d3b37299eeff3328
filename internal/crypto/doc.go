// Package crypto wraps the primitives the envelope protocol is built on:
// RSA-2048 key pairs with OAEP-SHA256 key wrapping, SPKI PEM encoding for
// public key exchange, and AES-256-GCM for payload encryption.
//
// The primitives themselves come from the standard library and are invoked,
// not reimplemented. The choices are fixed by the wire format: envelopes
// produced here must be openable by any client sharing it.
package crypto
