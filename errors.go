package syncreads

import (
	"errors"
	"fmt"
)

// Sentinel errors for the soft and fatal failure modes extraction and
// aggregation can hit.
var (
	// ErrTooManyReads is returned by Validate when the read count
	// exceeds MaxReadNum.
	ErrTooManyReads = errors.New("syncreads: read count exceeds limit")

	// ErrTooManySyncmers is returned by Validate when a single read's
	// anchor count exceeds MaxReadSyncmer.
	ErrTooManySyncmers = errors.New("syncreads: per-read syncmer count exceeds limit")

	// ErrSyncmerHashConflict is the sentinel wrapped by
	// HashConflictError: two anchors share a 128-bit k-mer hash but
	// disagree on their s-mer code, the one fatal invariant violation
	// CollectSyncmers can hit; it's returned as an error rather than
	// aborting the process.
	ErrSyncmerHashConflict = errors.New("syncreads: syncmers with identical k-mer hash disagree on s-mer code")

	// ErrEmptyCollection is returned by Stat when the input anchor
	// collection is empty.
	ErrEmptyCollection = errors.New("syncreads: empty syncmer collection")
)

// HashConflictError carries the shared hash, both conflicting s-mer
// codes and the position of the later occurrence so a caller can log
// or inspect them.
type HashConflictError struct {
	Hash      KMer128
	WantSMer  uint64
	GotSMer   uint64
	OccurPos  uint64 // (sid<<32)|(anchorIndex<<1)|strand of the conflicting occurrence
}

func (e *HashConflictError) Error() string {
	return fmt.Sprintf("%v: kmer hash %016x%016x smer %d != %d (occurrence %d)",
		ErrSyncmerHashConflict, e.Hash.Hi, e.Hash.Lo, e.WantSMer, e.GotSMer, e.OccurPos)
}

func (e *HashConflictError) Unwrap() error { return ErrSyncmerHashConflict }
