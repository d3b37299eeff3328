// Package domain defines the wire frames, core data models, and contracts
// shared across onyx. It contains plain types and interfaces only.
package domain
