// Package session sequences the handshake protocol and envelope engine
// against the transport. All inbound frames and outbound submissions flow
// through one worker goroutine that finishes each operation before taking
// the next, so the identity and peer directory need no locking.
package session
