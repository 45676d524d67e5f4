package services

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestFingerprint_MatchesSHA256(t *testing.T) {
	data := []byte("%PDF-1.4 hello")
	path := writeFile(t, "a.pdf", data)

	id, err := Fingerprint(path)

	require.NoError(t, err)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), id.String())
	assert.True(t, id.Valid())
}

func TestFingerprint_IgnoresFilename(t *testing.T) {
	data := []byte("same bytes")

	a, err := Fingerprint(writeFile(t, "invoice.pdf", data))
	require.NoError(t, err)
	b, err := Fingerprint(writeFile(t, "invoice_copy.pdf", data))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFingerprint_SpansBlocks(t *testing.T) {
	data := make([]byte, fingerprintBlockSize*2+17)
	for i := range data {
		data[i] = byte(i % 251)
	}

	id, err := Fingerprint(writeFile(t, "big.pdf", data))

	require.NoError(t, err)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), id.String())
}

func TestFingerprint_EmptyFile(t *testing.T) {
	id, err := Fingerprint(writeFile(t, "empty.pdf", nil))

	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", id.String())
}

func TestFingerprint_MissingFile(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
