package domain

import "encoding/hex"

// DocumentIDLength is the length of a hex-encoded SHA-256 digest.
const DocumentIDLength = 64

// DocumentID is the content fingerprint of an uploaded file.
// Identical bytes always produce the same DocumentID regardless of filename,
// which makes it the sole cache key of the index store.
type DocumentID string

// Valid reports whether the identifier is a 64 character hex digest.
func (id DocumentID) Valid() bool {
	if len(id) != DocumentIDLength {
		return false
	}
	_, err := hex.DecodeString(string(id))
	return err == nil
}

// String returns the string representation.
func (id DocumentID) String() string {
	return string(id)
}

// Short returns a prefix suitable for log lines.
func (id DocumentID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:12])
}
