// The relay daemon forwards every frame it receives to every connected
// client, including the sender. It never parses, stores, or filters frame
// contents; confidentiality rests entirely with the clients' envelopes.
package main
