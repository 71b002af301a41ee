package syncreads

import "github.com/spaolacci/murmur3"

// HashConfig bundles the seed and trailing-bit masks Hash128 needs into
// an explicit, immutable value rather than package-level globals, so
// Extract can run with different parameters across goroutines safely.
type HashConfig struct {
	Seed  uint32
	LMask [4]byte // LMask[w&3]: trailing-bits mask for the last packed byte of a w-symbol window
}

// DefaultHashConfig is the standard seed and trailing-bit mask table.
var DefaultHashConfig = HashConfig{
	Seed:  1234,
	LMask: [4]byte{0xFF, 0xC0, 0xF0, 0xFC},
}

// Hash64 is the deterministic 64-bit integer mix used to rank s-mers
// within the rolling window. This exact shift/xor/mul chain is not
// replaced by a library hash (xxhash, fnv, ...): the rolling-minimum
// tie-break and cross-run determinism depend on its precise bit
// behavior, not merely on "a good hash".
func Hash64(key, mask uint64) uint64 {
	key = (^key + (key << 21)) & mask
	key ^= key >> 24
	key = ((key + (key << 3)) + (key << 8)) & mask
	key ^= key >> 14
	key = ((key + (key << 2)) + (key << 4)) & mask
	key ^= key >> 28
	key = (key + (key << 31)) & mask
	return key
}

// Hash128 extracts the w-symbol window at HOCO position packedPos>>1
// (strand bit packedPos&1) out of hoco, reverse-complements it byte-wise
// when the strand bit is set, left-aligns it to a byte boundary, masks
// the unused trailing bits of the last byte, and mixes the result with
// MurmurHash3-x64-128 (github.com/spaolacci/murmur3).
//
// The window-byte copy below covers packed bytes p0/4 through p1/4 and
// nothing past them, so hoco only needs to hold the window's own
// symbols.
func Hash128(hoco []byte, packedPos uint32, w int, cfg HashConfig) KMer128 {
	rev := packedPos&1 != 0
	p := packedPos >> 1
	p0 := int(p)
	p1 := p0 + w - 1

	var shift uint
	if rev {
		shift = uint((p1&3)^3) << 1
	} else {
		shift = uint(p0&3) << 1
	}
	nBytes := p1/4 - p0/4 + 1

	key := make([]byte, nBytes)
	copy(key, hoco[p0/4:p0/4+nBytes])

	if rev {
		for i, j := 0, nBytes-1; i < j; i, j = i+1, j-1 {
			key[i], key[j] = RCByte(key[j]), RCByte(key[i])
		}
		if nBytes%2 == 1 {
			mid := nBytes / 2
			key[mid] = RCByte(key[mid])
		}
	}

	for i := 0; i < nBytes-1; i++ {
		key[i] = key[i]<<shift | key[i+1]>>(8-shift)
	}
	key[nBytes-1] <<= shift
	nMix := (w-1)/4 + 1
	key[nMix-1] &= cfg.LMask[w&3]

	d := murmur3.New128WithSeed(cfg.Seed)
	_, _ = d.Write(key[:nMix])
	hi, lo := d.Sum128()
	return KMer128{Hi: hi, Lo: lo}
}
