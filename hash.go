// Content fingerprints for Blob buffers.
//
// A fingerprint is 16 lower-case hex characters digesting the buffer. The
// value layer keys its cache of decoded literals by fingerprint, so the
// same bytes must always give the same string. Three algorithms are
// available; none of them is a substitute for Equal.
package lob

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/cockroachdb/errors"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithms. AlgXXHash3 is the default; AlgFNV1a and
// AlgBlake2b exist for callers that already key caches by those digests.
const (
	AlgXXHash3 = 1
	AlgFNV1a   = 2
	AlgBlake2b = 3
)

// digests maps each algorithm to a 64-bit digest of a buffer.
var digests = map[int]func([]byte) uint64{
	AlgXXHash3: xxh3.Hash,
	AlgFNV1a:   fnv64a,
	AlgBlake2b: blake2b64,
}

func fnv64a(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

func blake2b64(data []byte) uint64 {
	h, _ := blake2b.New(8, nil)
	h.Write(data)
	return binary.BigEndian.Uint64(h.Sum(nil))
}

// Fingerprint digests the buffer with alg. Zero selects AlgXXHash3.
func (b *Blob) Fingerprint(alg int) (string, error) {
	if err := b.active(); err != nil {
		return "", err
	}
	if alg == 0 {
		alg = AlgXXHash3
	}
	digest, ok := digests[alg]
	if !ok {
		return "", errors.Wrapf(ErrUnsupported, "fingerprint algorithm %d", alg)
	}
	return fmt.Sprintf("%016x", digest(b.buf)), nil
}
