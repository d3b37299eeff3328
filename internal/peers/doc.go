// Package peers holds this client's directory of peers whose public keys it
// has learned through handshakes. The directory is the recipient set for
// every outgoing envelope.
package peers
