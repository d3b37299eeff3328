// Package handshake implements the peer announcement protocol. Every client
// broadcasts its id and public key on connect; receivers import unknown
// peers and reply with their own announcement, so one inbound handshake plus
// one reply is enough to make the exchange bidirectional under the relay's
// broadcast-to-all semantics.
package handshake
