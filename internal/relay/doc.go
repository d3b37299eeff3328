// Package relay implements the transport shared by onyx clients and the
// relay daemon: newline-delimited JSON frames over one persistent TCP
// connection.
//
// The relay is trusted only to move bytes. The server forwards every line it
// receives to every connected client, including the sender, without parsing
// or storing anything; per-sender delivery order is preserved, nothing else
// is guaranteed.
package relay
