// Package fingerprint computes content fingerprints of schema documents and
// embeds/extracts them in generated artifacts.
//
// The fingerprint is the SHA-256 digest of the raw schema bytes, lowercase
// hex encoded. It is embedded as a single marker line:
//
//	// OpenAPI Hash: <hex>
//
// The marker's textual form is a compatibility contract between the
// generator and the drift validator and must not change.
package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// MarkerPrefix precedes the hex digest on the marker line.
const MarkerPrefix = "// OpenAPI Hash: "

var (
	// ErrMarkerMissing is returned by Extract when no marker line exists.
	ErrMarkerMissing = errors.New("fingerprint marker not found")
	// ErrMarkerDuplicate is returned by Extract when more than one marker line exists.
	ErrMarkerDuplicate = errors.New("more than one fingerprint marker")
)

var markerRe = regexp.MustCompile(`(?m)^[ \t]*// OpenAPI Hash: (\w+)[ \t]*\r?$`)

// Sum returns the fingerprint of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumFile returns the fingerprint of the file at path.
func SumFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Sum(data), nil
}

// Marker returns the marker line (without newline) for hash.
func Marker(hash string) string {
	return MarkerPrefix + hash
}

// Stamp returns src with any existing marker lines removed and a fresh
// marker for hash on the first line.
func Stamp(src []byte, hash string) []byte {
	var out bytes.Buffer
	out.Grow(len(src) + len(MarkerPrefix) + len(hash) + 1)
	out.WriteString(Marker(hash))
	out.WriteByte('\n')

	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if markerRe.Match(bytes.TrimRight(line, "\n")) {
			continue
		}
		out.Write(line)
	}
	return out.Bytes()
}

// Extract returns the hash recorded by the single marker line in src.
func Extract(src []byte) (string, error) {
	matches := markerRe.FindAllSubmatch(src, -1)
	switch len(matches) {
	case 0:
		return "", ErrMarkerMissing
	case 1:
		return strings.ToLower(string(matches[0][1])), nil
	default:
		return "", fmt.Errorf("%w: found %d", ErrMarkerDuplicate, len(matches))
	}
}
