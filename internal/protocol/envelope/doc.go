// Package envelope implements the hybrid-encryption engine: one plaintext is
// sealed once under a fresh AES-256-GCM key, and that key is wrapped with
// RSA-OAEP separately for every recipient known at encryption time.
//
// Opening distinguishes three failure kinds for diagnostics: the envelope
// was never addressed to us, the key wrap did not verify, or the payload
// failed authentication. To the user they all collapse to "unreadable".
package envelope
