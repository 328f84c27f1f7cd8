package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a fixed 256-bit hash.
type Digest [32]byte

// HashContent hashes raw file content.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine builds an aggregated hash: H( content || part1 || part2 ... ).
// Part order must be deterministic.
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

// HashString hashes an arbitrary string, for mixing tool and config
// versions into cache keys.
func HashString(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
