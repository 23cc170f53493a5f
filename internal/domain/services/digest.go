package services

import (
	"crypto/md5"  //nolint:gosec // G501: published alongside stronger digests, not used for security
	"crypto/sha1" //nolint:gosec // G505: published alongside stronger digests, not used for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DefaultChunkSize is the read size used when streaming artifacts (64 KiB)
const DefaultChunkSize = 1 << 16

// DefaultAlgorithms is the digest set published for every variant, in output order
var DefaultAlgorithms = []string{"sha1", "sha256", "sha512", "md5"}

// Algorithm is a named digest constructor
type Algorithm struct {
	Name string
	New  func() hash.Hash
}

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
	"sha3-256": func() hash.Hash {
		return sha3.New256()
	},
	"blake2b-256": func() hash.Hash {
		// Unkeyed blake2b never errors
		h, _ := blake2b.New256(nil)
		return h
	},
}

// LookupAlgorithm returns the algorithm registered under name
func LookupAlgorithm(name string) (Algorithm, error) {
	newFn, ok := algorithms[name]
	if !ok {
		return Algorithm{}, fmt.Errorf("unsupported hash algorithm: %s", name)
	}
	return Algorithm{Name: name, New: newFn}, nil
}

// LookupAlgorithms resolves names in order
func LookupAlgorithms(names []string) ([]Algorithm, error) {
	algs := make([]Algorithm, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("duplicate hash algorithm: %s", name)
		}
		seen[name] = true

		alg, err := LookupAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algs = append(algs, alg)
	}
	return algs, nil
}

// SupportedAlgorithms lists registered algorithm names, sorted
func SupportedAlgorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HashReader feeds r to alg in chunks of chunkSize bytes until EOF and
// returns the lowercase hex digest.
func HashReader(r io.Reader, alg Algorithm, chunkSize int) (string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	h := alg.New()
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			// hash.Hash.Write never returns an error
			_, _ = h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
