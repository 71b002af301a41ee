// Package syncreads extracts closed/open syncmer anchors from nucleotide
// sequence reads and aggregates k-mer-space statistics over them.
//
// # Overview
//
// A read is first homopolymer-compressed into a 2-bit packed buffer (see
// ExtractRead; HocoDecode reverses it). A rolling minimizer window over that buffer selects a
// sparse, deterministic set of positions ("syncmers") at which a 64-bit
// strand-tagged s-mer code and a 128-bit canonical k-mer hash are
// recorded. The resulting anchor sequences feed two independent
// consumers: Stat, which computes multiplicity histograms and
// heterozygous/homozygous coverage peaks, and LinkCoverage, which fits a
// per-gap linear model of link count against expected k-mer copy number.
//
// This package does not read FASTA/FASTQ itself (see the Reader
// interface) and does not build an assembly graph; it is the shared
// hashing/statistics core beneath an organelle-genome assembler.
//
// # When to use syncreads
//
// syncreads is for the extraction layer of a k-mer/minimizer-based
// assembler or read classifier:
//   - Converting raw reads into a strand-normalized, hashed anchor stream
//   - Estimating per-base coverage and heterozygosity from anchor
//     multiplicities
//   - Building an arc-coverage model between nearby anchors on a read
//
// It is not an aligner, error corrector, or consensus caller, and it does
// not persist an on-disk index.
//
// # Basic usage
//
//	reads, err := syncreads.Extract(reader, syncreads.Params{K: 15, W: 31}, 0, 4)
//	if err != nil {
//	    // ...
//	}
//	if err := syncreads.Validate(reads); err != nil {
//	    // read or per-read syncmer count exceeded a hard limit
//	}
//	stats, err := syncreads.Stat(reads, 31, os.Stderr, 1)
//
//	scm, err := syncreads.CollectSyncmers(reads)
//	cov, err := syncreads.LinkCoverage(reads, 2, 30, 30, 0.1)
//
// # Determinism
//
// For a fixed input, k, w and worker count, Extract's concatenated anchor
// vector is bit-identical across runs. Worker count changes only the
// batch-major order the anchors are concatenated in; sorting the result
// by (SID, anchor index) removes that difference (see Extract).
//
// # Performance characteristics
//
// Extract is CPU-bound per read (one pass over the bases, O(len)) and
// scales with worker count up to the batch size (10000 reads per
// worker-batch). Hash64 and Hash128 are the hot inner-loop calls; Hash128
// delegates to murmur3.Sum128 (github.com/spaolacci/murmur3) over the
// packed, strand-normalized k-mer bytes.
package syncreads
