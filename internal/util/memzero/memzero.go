// Package memzero scrubs key material from buffers once it is no longer
// needed. One-time session keys pass through here after wrap and after
// decrypt.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.ConstantTimeCopy(1, b, make([]byte, len(b)))
}
