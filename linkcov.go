package syncreads

import (
	"math"
	"sort"
)

// LinkCoverage estimates per-base coverage as a function of inter-anchor
// gap length: for each gap it builds an arc-multiplicity table over
// ordered anchor pairs at that distance, bounds each arc's observed
// count by the k-mer copy numbers of its endpoints, and fits a
// zero-intercept regression of observed count on that bound.

type arcKey struct{ a, b uint64 }

// canonicalArc orders an arc's two (kmerID<<1)|strand endpoints the
// way a k-mer's strand-symmetric adjacency graph must: if v0 <= v1 the
// arc is already canonical, otherwise both endpoints are strand-
// flipped and swapped (the arc read from the other direction).
func canonicalArc(v0, v1 uint64) arcKey {
	if v0 <= v1 {
		return arcKey{v0, v1}
	}
	return arcKey{v1 ^ 1, v0 ^ 1}
}

// linkPoint is one arc's sample for the regression: c is the upper
// bound derived from endpoint copy numbers, l is the clamped observed
// count, f = l/c is the fraction used for trimming and sorting.
type linkPoint struct {
	c, l, f float64
}

// LinkCoverage runs LINKCOV to completion and returns the per-gap
// regression results. minKCov filters which anchor pairs contribute
// arcs; minNSeq is the minimum read count with enough anchors to keep
// scanning a gap; minPt (>= 30) is the minimum sample size a gap's
// regression needs to be reported; minF discards low-fraction points
// before trimming.
func LinkCoverage(reads []*Read, minKCov, minNSeq, minPt uint32, minF float64) (LinkCoverageResult, error) {
	syncmers, err := CollectSyncmers(reads)
	if err != nil {
		return LinkCoverageResult{}, err
	}

	kmerID := make(map[KMer128]int, len(syncmers))
	kCov := make([]int, len(syncmers))
	for i, sc := range syncmers {
		kmerID[sc.H] = i
		kCov[i] = sc.KCov()
	}

	idOf := func(r *Read, i int) (int, bool) {
		id, ok := kmerID[r.KMerH[i]]
		return id, ok
	}

	var result LinkCoverageResult
	var kCN []int // per-kmer copy-number estimate, fixed from gap 0

	for g := 0; ; g++ {
		need := g + 2
		nSeq := 0
		for _, r := range reads {
			if r.N() >= need {
				nSeq++
			}
		}
		if nSeq < int(minNSeq) {
			break
		}

		arcs := make(map[arcKey]int)
		for _, r := range reads {
			n := r.N()
			for i := 0; i+g+1 < n; i++ {
				j := i + g + 1
				idA, okA := idOf(r, i)
				idB, okB := idOf(r, j)
				if !okA || !okB {
					continue
				}
				if uint32(kCov[idA]) < minKCov || uint32(kCov[idB]) < minKCov {
					continue
				}
				strandA := uint64(r.MPos[i] & 1)
				strandB := uint64(r.MPos[j] & 1)
				v0 := uint64(idA)<<1 | strandA
				v1 := uint64(idB)<<1 | strandB
				arcs[canonicalArc(v0, v1)]++
			}
		}
		if len(arcs) == 0 {
			break
		}

		if g == 0 {
			kCN = make([]int, len(syncmers))
			for k := range arcs {
				kCN[k.a>>1]++
				kCN[k.b>>1]++
			}
		}

		points := make([]linkPoint, 0, len(arcs))
		for k, observed := range arcs {
			boundOf := func(v uint64) float64 {
				id := v >> 1
				cn := 2
				if int(id) < len(kCN) && kCN[id] > cn {
					cn = kCN[id]
				}
				return float64(kCov[id]) / float64(cn) * 2
			}
			c := math.Min(boundOf(k.a), boundOf(k.b))
			if c <= 0 {
				continue
			}
			l := float64(observed)
			if l > c {
				l = c
			}
			points = append(points, linkPoint{c: c, l: l, f: l / c})
		}
		if len(points) == 0 {
			break
		}

		sort.Slice(points, func(i, j int) bool { return points[i].f < points[j].f })
		lo := len(points) * 5 / 100
		hi := len(points) - len(points)*5/100
		trimmed := points[lo:hi]
		n := 0
		for _, p := range trimmed {
			if p.f >= minF {
				trimmed[n] = p
				n++
			}
		}
		trimmed = trimmed[:n]

		if len(trimmed) < int(minPt) {
			break
		}

		beta, bse, r2 := fitZeroIntercept(trimmed)
		result.Beta = append(result.Beta, beta)
		result.BSE = append(result.BSE, bse)
		result.R2 = append(result.R2, r2)
		result.Points = append(result.Points, len(trimmed))
	}

	return result, nil
}

// fitZeroIntercept fits l = beta*c (no intercept) by least squares
// and reports the residual standard error and R^2 against the mean
// of l.
func fitZeroIntercept(points []linkPoint) (beta, bse, r2 float64) {
	var sumCL, sumCC, sumL float64
	for _, p := range points {
		sumCL += p.c * p.l
		sumCC += p.c * p.c
		sumL += p.l
	}
	if sumCC == 0 {
		return 0, 0, 0
	}
	beta = sumCL / sumCC

	n := float64(len(points))
	mean := sumL / n

	var res, tot float64
	for _, p := range points {
		d := p.l - beta*p.c
		res += d * d
		dm := p.l - mean
		tot += dm * dm
	}
	if tot > 0 {
		r2 = 1 - res/tot
	}
	if n > 1 {
		bse = math.Sqrt(res / sumCC / (n - 1))
	}
	return beta, bse, r2
}
