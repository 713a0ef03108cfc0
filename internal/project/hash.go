package project

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine hashes content followed by parts: H(content || p1 || p2 ...).
// The order of parts must be deterministic.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CanonicalJSON encodes v as RFC 8785 canonical JSON, so equal values
// produce equal bytes regardless of map order or number formatting.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize: %w", err)
	}
	return out, nil
}

// CanonicalDigest is the SHA-256 of CanonicalJSON(v).
func CanonicalDigest(v any) (Digest, error) {
	data, err := CanonicalJSON(v)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(data), nil
}
