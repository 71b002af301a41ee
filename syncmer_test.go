package syncreads

import "testing"

// checkAnchorInvariants verifies a single read's anchor set: every
// window fits inside the HOCO buffer, and positions are strictly
// increasing.
func checkAnchorInvariants(t *testing.T, r *Read, w int) {
	t.Helper()
	for i, mp := range r.MPos {
		pos := int(mp >> 1)
		if pos+w > r.HocoLen {
			t.Errorf("anchor %d: position %d + w %d exceeds hocoLen %d", i, pos, w, r.HocoLen)
		}
		if i > 0 {
			prevPos := int(r.MPos[i-1] >> 1)
			if pos <= prevPos {
				t.Errorf("anchor %d: position %d not strictly greater than previous %d", i, pos, prevPos)
			}
		}
	}
	if len(r.MPos) != len(r.SMer) || len(r.MPos) != len(r.KMerH) {
		t.Errorf("anchor arrays out of lock-step: MPos=%d SMer=%d KMerH=%d",
			len(r.MPos), len(r.SMer), len(r.KMerH))
	}
}

func TestExtractReadNoHomopolymerRuns(t *testing.T) {
	p, err := NewParams(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	r, err := ExtractRead([]byte("ACGTACGTACGT"), 0, []byte("r0"), p)
	if err != nil {
		t.Fatal(err)
	}
	if r.HocoLen != 12 {
		t.Fatalf("hocoLen = %d, want 12 (no homopolymer runs to collapse)", r.HocoLen)
	}
	checkAnchorInvariants(t, r, p.W)
}

func TestExtractReadShortHocoNoAnchors(t *testing.T) {
	// AAAACCCCGGGG compresses to hocoLen 3, which is below w=5, so no
	// window ever fits and no anchors are emitted.
	p, err := NewParams(3, 5)
	if err != nil {
		t.Fatal(err)
	}
	r, err := ExtractRead([]byte("AAAACCCCGGGG"), 0, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	if r.HocoLen != 3 {
		t.Fatalf("hocoLen = %d, want 3", r.HocoLen)
	}
	if r.N() != 0 {
		t.Fatalf("N() = %d, want 0", r.N())
	}
}

func TestExtractReadAmbiguousBlocksSpan(t *testing.T) {
	// ACNGT, k=2, w=3: the ambiguous base splits the read into two
	// 2-symbol fragments, neither long enough to form a w=3 window, so
	// no anchor can span (or even exist near) the N.
	p, err := NewParams(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	r, err := ExtractRead([]byte("ACNGT"), 0, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.NNucl) != 1 || r.NNucl[0] != 2 {
		t.Fatalf("NNucl = %v, want [2]", r.NNucl)
	}
	if r.N() != 0 {
		t.Fatalf("N() = %d, want 0 (no fragment reaches w=3 symbols)", r.N())
	}
}

func TestSyncStatePalindromeHashUndefined(t *testing.T) {
	// ACGT (k=4) is its own reverse complement, so fwd==rev and the
	// k-mer hash must be undefined — it can never become or stay a
	// window minimizer.
	p, err := NewParams(4, 5)
	if err != nil {
		t.Fatal(err)
	}
	st := newSyncState(p, DefaultHashConfig, 0, nil)
	for _, c := range []byte{0, 1, 2, 3} { // A C G T
		st.pushSymbol(c)
	}
	if st.fwd != st.rev {
		t.Fatalf("ACGT should be palindromic: fwd=%d rev=%d", st.fwd, st.rev)
	}
	lastPos := st.bufPos - 1
	if lastPos < 0 {
		lastPos = len(st.buf) - 1
	}
	if st.buf[lastPos].m != undefinedHash {
		t.Fatalf("palindromic k-mer hash = %d, want undefinedHash", st.buf[lastPos].m)
	}
}

func TestExtractReadInvariantsAcrossInputs(t *testing.T) {
	p, err := NewParams(4, 7)
	if err != nil {
		t.Fatal(err)
	}
	inputs := []string{
		"ACGATCGATCGATCGATCGATCGATCG",
		"TTTTACGGGGGCATCATCATCGTAGCTAGCTA",
		"GGCATGCATGCATGCATGATCGATCGATCGA",
		"ACGTNNNACGTACGTACGTACGTNACGTACGT",
	}
	for i, seq := range inputs {
		r, err := ExtractRead([]byte(seq), uint64(i), nil, p)
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		checkAnchorInvariants(t, r, p.W)
	}
}

func TestExtractReadDeterministic(t *testing.T) {
	p, err := NewParams(5, 9)
	if err != nil {
		t.Fatal(err)
	}
	seq := []byte("ACGATCGATCGGGGGCATCATCATCGTAGCTAGCTAGGATCC")
	r1, err := ExtractRead(seq, 0, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := ExtractRead(seq, 0, nil, p)
	if err != nil {
		t.Fatal(err)
	}
	if r1.N() != r2.N() {
		t.Fatalf("non-deterministic anchor count: %d vs %d", r1.N(), r2.N())
	}
	for i := range r1.MPos {
		if r1.MPos[i] != r2.MPos[i] || r1.SMer[i] != r2.SMer[i] || r1.KMerH[i] != r2.KMerH[i] {
			t.Fatalf("anchor %d differs across identical runs", i)
		}
	}
}
