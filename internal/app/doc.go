// Package app holds runtime configuration and wires the dependency graph
// the binaries share.
package app
