package mmir

import "github.com/zeebo/xxh3"

// Fingerprint is a hash of the wire encoding of b.
// Structurally equal bodies have equal fingerprints.
func Fingerprint(b *Body) uint64 {
	data, err := Marshal(b)
	if err != nil {
		return 0
	}

	return xxh3.Hash(data)
}
