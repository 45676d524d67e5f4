package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentID_Valid(t *testing.T) {
	tests := []struct {
		name     string
		id       DocumentID
		expected bool
	}{
		{name: "sha256 hex", id: DocumentID(strings.Repeat("ab", 32)), expected: true},
		{name: "too short", id: DocumentID("abc"), expected: false},
		{name: "not hex", id: DocumentID(strings.Repeat("zz", 32)), expected: false},
		{name: "empty", id: DocumentID(""), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.id.Valid())
		})
	}
}

func TestDocumentID_Short(t *testing.T) {
	id := DocumentID(strings.Repeat("0123456789abcdef", 4))

	assert.Equal(t, "0123456789ab", id.Short())
	assert.Equal(t, "abc", DocumentID("abc").Short())
}
