package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Aya-Alhamwe/Personal-Data-Assistant/internal/core/domain"
)

// fingerprintBlockSize bounds memory use while hashing large uploads.
const fingerprintBlockSize = 1 << 20

// Fingerprint returns the SHA-256 digest of the file at path.
// Byte-identical files share a DocumentID whatever their names.
func Fingerprint(path string) (domain.DocumentID, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, fingerprintBlockSize)
	for {
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("fingerprint %s: %w", path, err)
		}
	}
	return domain.DocumentID(hex.EncodeToString(h.Sum(nil))), nil
}
