package syncreads

import "testing"

func TestCanonicalArc(t *testing.T) {
	if got := canonicalArc(2, 5); got != (arcKey{2, 5}) {
		t.Fatalf("canonicalArc(2,5) = %+v, want already-ordered pair unchanged", got)
	}
	// v0 > v1: flip-and-swap, strand bit toggled on each endpoint.
	got := canonicalArc(7, 2)
	want := arcKey{2 ^ 1, 7 ^ 1}
	if got != want {
		t.Fatalf("canonicalArc(7,2) = %+v, want %+v", got, want)
	}
}

func TestFitZeroInterceptPerfectLine(t *testing.T) {
	points := []linkPoint{
		{c: 20, l: 10},
		{c: 28, l: 14},
		{c: 12, l: 6},
	}
	beta, bse, r2 := fitZeroIntercept(points)
	if beta != 0.5 {
		t.Fatalf("beta = %v, want 0.5", beta)
	}
	if r2 != 1.0 {
		t.Fatalf("r2 = %v, want 1.0", r2)
	}
	if bse != 0.0 {
		t.Fatalf("bse = %v, want 0.0", bse)
	}
}

func TestFitZeroInterceptEmptyBound(t *testing.T) {
	beta, bse, r2 := fitZeroIntercept(nil)
	if beta != 0 || bse != 0 || r2 != 0 {
		t.Fatalf("fitZeroIntercept(nil) = (%v,%v,%v), want zeros", beta, bse, r2)
	}
}

// linkGroup describes one gap-0 k-mer pair: y reads carry both anchors
// (forming one arc occurrence each), and pad extra single-anchor
// reads on each side inflate k-mer coverage without adding arcs, so
// the arc's bound (derived from coverage) and its observed count can
// be set independently.
type linkGroup struct {
	ha, hb KMer128
	y, pad int
}

func buildLinkCoverageReads(groups []linkGroup) []*Read {
	var reads []*Read
	sid := uint64(0)
	single := func(h KMer128) *Read {
		r := &Read{SID: sid, MPos: []uint32{0}, SMer: []uint64{h.Hi << 1}, KMerH: []KMer128{h}}
		sid++
		return r
	}
	for _, g := range groups {
		for i := 0; i < g.y; i++ {
			r := &Read{
				SID:   sid,
				MPos:  []uint32{0, 0},
				SMer:  []uint64{g.ha.Hi << 1, g.hb.Hi << 1},
				KMerH: []KMer128{g.ha, g.hb},
			}
			sid++
			reads = append(reads, r)
		}
		for i := 0; i < g.pad; i++ {
			reads = append(reads, single(g.ha))
			reads = append(reads, single(g.hb))
		}
	}
	return reads
}

func TestLinkCoverageFitsKnownSlope(t *testing.T) {
	groups := []linkGroup{
		{ha: KMer128{Hi: 1}, hb: KMer128{Hi: 2}, y: 10, pad: 10},
		{ha: KMer128{Hi: 3}, hb: KMer128{Hi: 4}, y: 14, pad: 14},
		{ha: KMer128{Hi: 5}, hb: KMer128{Hi: 6}, y: 6, pad: 6},
	}
	reads := buildLinkCoverageReads(groups)

	result, err := LinkCoverage(reads, 0, 1, 3, 0.4)
	if err != nil {
		t.Fatalf("LinkCoverage: %v", err)
	}
	if len(result.Beta) != 1 {
		t.Fatalf("got %d gap results, want 1 (gap 1+ has no read with 3 anchors)", len(result.Beta))
	}
	if result.Beta[0] != 0.5 {
		t.Fatalf("Beta[0] = %v, want 0.5", result.Beta[0])
	}
	if result.R2[0] != 1.0 {
		t.Fatalf("R2[0] = %v, want 1.0", result.R2[0])
	}
	if result.BSE[0] != 0.0 {
		t.Fatalf("BSE[0] = %v, want 0.0", result.BSE[0])
	}
	if result.Points[0] != 3 {
		t.Fatalf("Points[0] = %d, want 3", result.Points[0])
	}
}

func TestLinkCoverageStopsWhenTooFewSequences(t *testing.T) {
	reads := buildLinkCoverageReads([]linkGroup{
		{ha: KMer128{Hi: 1}, hb: KMer128{Hi: 2}, y: 1, pad: 0},
	})
	result, err := LinkCoverage(reads, 0, 5, 1, 0)
	if err != nil {
		t.Fatalf("LinkCoverage: %v", err)
	}
	if len(result.Beta) != 0 {
		t.Fatalf("got %d gap results, want 0 (minNSeq=5 exceeds the single paired read)", len(result.Beta))
	}
}
