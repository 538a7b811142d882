package density

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Hasher accumulates a structural hash. Every written field is hashed with
// xxhash and folded into the running seed.
type Hasher struct {
	seed uint64
}

// NewHasher starts a hash seeded with the family tag.
func NewHasher(f Family) *Hasher {
	h := &Hasher{}
	h.WriteUint64(uint64(f))
	return h
}

func (h *Hasher) WriteUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.combine(xxhash.Sum64(buf[:]))
}

// WriteFloat64 hashes the bit pattern of v. Negative zero is folded onto
// positive zero so that values comparing equal hash equally.
func (h *Hasher) WriteFloat64(v float64) {
	if v == 0 {
		v = 0
	}
	h.WriteUint64(math.Float64bits(v))
}

func (h *Hasher) Sum64() uint64 { return h.seed }

func (h *Hasher) combine(v uint64) {
	h.seed ^= v + goldenRatio64 + (h.seed << 6) + (h.seed >> 2)
}

func hashFields(f Family, fs []field) uint64 {
	h := NewHasher(f)
	for _, fd := range fs {
		if fd.integer {
			h.WriteUint64(uint64(int64(fd.value)))
			continue
		}
		h.WriteFloat64(fd.value)
	}
	return h.Sum64()
}
