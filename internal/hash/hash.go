package hash

import (
	"fmt"

	"github.com/alecthomas/unsafeslice"
	"github.com/minio/highwayhash"
	"github.com/shivakar/metrohash"
	"github.com/twmb/murmur3"
	"github.com/zeebo/blake3"
)

// SaltLength is the salt size required by every seeded hasher.
// highwayhash keys are fixed at 32 bytes and the others follow.
const SaltLength = 32

// Kind selects a Hasher implementation
type Kind int

const (
	CharSum Kind = iota
	Murmur3
	Metro
	Highway
	Blake3
)

var (
	ErrUnknownHash        = fmt.Errorf("cannot create a hasher of unknown hash type")
	ErrSaltLengthMismatch = fmt.Errorf("provided salt is not %d length", SaltLength)
)

// Hasher implements different non cryptographic hashing functions
type Hasher interface {
	Hash64([]byte) uint64
}

// New creates a hasher of kind k. CharSum ignores salt,
// every other kind requires SaltLength bytes of it.
func New(k Kind, salt []byte) (Hasher, error) {
	switch k {
	case CharSum:
		return charSum{}, nil
	case Murmur3:
		return NewMurmur3Hasher(salt)
	case Metro:
		return NewMetroHasher(salt)
	case Highway:
		return NewHighwayHasher(salt)
	case Blake3:
		return NewBlake3Hasher(salt)
	default:
		return nil, ErrUnknownHash
	}
}

// ParseKind maps a configuration name to its Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "charsum", "":
		return CharSum, nil
	case "murmur3":
		return Murmur3, nil
	case "metro":
		return Metro, nil
	case "highway":
		return Highway, nil
	case "blake3":
		return Blake3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownHash, s)
	}
}

func (k Kind) String() string {
	switch k {
	case CharSum:
		return "charsum"
	case Murmur3:
		return "murmur3"
	case Metro:
		return "metro"
	case Highway:
		return "highway"
	case Blake3:
		return "blake3"
	default:
		return "undefined"
	}
}

// Seeded reports whether hashers of kind k need a salt
func (k Kind) Seeded() bool {
	return k != CharSum
}

// charSum adds up the byte values of the key in a 32 bit accumulator.
// It has no weighting, so any two keys made of the same bytes collide.
// Bytes are unsigned, so keys with non-ASCII bytes land in other buckets
// than under a sum of sign-extended chars.
type charSum struct{}

// NewCharSumHasher returns the default, unsalted hasher
func NewCharSumHasher() Hasher {
	return charSum{}
}

func (charSum) Hash64(p []byte) uint64 {
	var sum uint32
	for _, b := range p {
		sum += uint32(b)
	}
	return uint64(sum)
}

// Murmur3 implementation of Hasher
type murmur64 struct {
	salt []byte
}

// NewMurmur3Hasher returns a Murmur3 hasher that uses salt as a prefix to the
// bytes being summed
func NewMurmur3Hasher(salt []byte) (murmur64, error) {
	if len(salt) != SaltLength {
		return murmur64{}, ErrSaltLengthMismatch
	}

	return murmur64{salt: salt}, nil
}

func (t murmur64) Hash64(p []byte) uint64 {
	// never append to t.salt, its backing array belongs to the caller
	m := make([]byte, 0, len(t.salt)+len(p))
	m = append(m, t.salt...)
	return murmur3.Sum64(append(m, p...))
}

// Metro Hash implementation of Hasher
type metro struct {
	salt []byte
}

// NewMetroHasher returns a metro64 hasher that uses salt as a
// prefix to the bytes being summed
func NewMetroHasher(salt []byte) (metro, error) {
	if len(salt) != SaltLength {
		return metro{}, ErrSaltLengthMismatch
	}

	return metro{salt: salt}, nil
}

func (m metro) Hash64(p []byte) uint64 {
	h := metrohash.NewMetroHash64()
	h.Write(m.salt)
	h.Write(p)
	return h.Sum64()
}

// HighwayHash implementation of Hasher, the salt is the key
type highway struct {
	key []byte
}

// NewHighwayHasher returns a highwayhash hasher keyed with salt
func NewHighwayHasher(salt []byte) (highway, error) {
	if len(salt) != SaltLength {
		return highway{}, ErrSaltLengthMismatch
	}

	return highway{key: salt}, nil
}

func (h highway) Hash64(p []byte) uint64 {
	return highwayhash.Sum64(p, h.key)
}

// BLAKE3 implementation of Hasher. The 256 bit digest is
// truncated to its first word.
type blake struct {
	salt []byte
}

// NewBlake3Hasher returns a blake3 hasher that uses salt as a
// prefix to the bytes being summed
func NewBlake3Hasher(salt []byte) (blake, error) {
	if len(salt) != SaltLength {
		return blake{}, ErrSaltLengthMismatch
	}

	return blake{salt: salt}, nil
}

func (b blake) Hash64(p []byte) uint64 {
	m := make([]byte, 0, len(b.salt)+len(p))
	m = append(m, b.salt...)
	digest := blake3.Sum256(append(m, p...))
	return unsafeslice.Uint64SliceFromByteSlice(digest[:8])[0]
}
