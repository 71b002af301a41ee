package syncreads

// CollectSyncmers aggregates every anchor across reads by its 128-bit
// canonical k-mer hash. Occurrences are encoded
// (sid<<32)|(anchorIndex<<1)|strand, anchorIndex being the index into
// the owning read's MPos/SMer/KMerH arrays.
//
// Two anchors sharing a hash must share the same canonical s-mer code.
// This check intentionally compares the strand-independent code (s
// with its LSB cleared) rather than the raw strand-tagged value: a
// read and the reverse complement of another read can anchor on the
// same k-mer with opposite strand bits, which is not a conflict. That
// makes this comparison looser than a literal "same s" check — it
// accepts a case the narrower test would reject — but it's the
// intended behavior here, not an oversight. A mismatch that survives
// strand-masking means two distinct k-mers collided on their 128-bit
// hash, or an upstream bug, and is reported as *HashConflictError
// rather than aborting the process.
func CollectSyncmers(reads []*Read) ([]Syncmer, error) {
	if len(reads) == 0 {
		return nil, nil
	}

	index := make(map[KMer128]int)
	var out []Syncmer

	for _, r := range reads {
		for i, h := range r.KMerH {
			strand := uint64(r.MPos[i] & 1)
			code := r.SMer[i] &^ 1
			occur := (r.SID << 32) | (uint64(i) << 1) | strand

			if idx, ok := index[h]; ok {
				sc := &out[idx]
				if sc.S != code {
					return nil, &HashConflictError{
						Hash:     h,
						WantSMer: sc.S,
						GotSMer:  code,
						OccurPos: occur,
					}
				}
				sc.MPos = append(sc.MPos, occur)
				continue
			}

			index[h] = len(out)
			out = append(out, Syncmer{H: h, S: code, MPos: []uint64{occur}})
		}
	}

	return out, nil
}
