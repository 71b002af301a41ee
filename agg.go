package syncreads

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Stat summarizes a population of extracted anchors: gap distribution,
// s-mer/k-mer multiplicity tables, and heterozygous/homozygous peak
// detection.

// histogramWidth is the multiplicity histogram's bucket count and
// lowestCut is where peak scanning begins, skipping the noise floor of
// very low multiplicities.
const (
	histogramWidth = 1000
	lowestCut      = 5
)

// Stat computes population statistics over reads and writes a
// textual report to out (verbose > 1 additionally renders the s-mer
// and k-mer count histograms).
func Stat(reads []*Read, w int, out io.Writer, verbose int) (Stats, error) {
	total := 0
	for _, r := range reads {
		total += r.N()
	}
	if total == 0 {
		fmt.Fprintln(out, "[M::stat] empty syncmer collection")
		return Stats{}, ErrEmptyCollection
	}

	var gapSum int64
	var gapN int64
	for _, r := range reads {
		for i := 1; i < r.N(); i++ {
			prev := int(r.MPos[i-1] >> 1)
			cur := int(r.MPos[i] >> 1)
			gapSum += int64(cur - prev - w)
			gapN++
		}
	}
	avgGap := 0.0
	if gapN > 0 {
		avgGap = float64(gapSum) / float64(gapN)
	}

	sUnique, sSingle, sAvg, sHist := smerMultiplicity(reads)
	kUnique, kSingle, kAvg, kHist := kmerMultiplicity(reads)
	sHom, sHet := analyzeCount(sHist)
	kHom, kHet := analyzeCount(kHist)

	st := Stats{
		SyncmerN:      uint64(total),
		SyncmerPerRd:  float64(total) / float64(len(reads)),
		SyncmerAvgGap: avgGap,

		SmerUnique:    sUnique,
		SmerSingleton: sSingle,
		SmerAvgCnt:    sAvg,
		SmerPeakHom:   sHom,
		SmerPeakHet:   sHet,

		KmerUnique:    kUnique,
		KmerSingleton: kSingle,
		KmerAvgCnt:    kAvg,
		KmerPeakHom:   kHom,
		KmerPeakHet:   kHet,
	}

	fmt.Fprintf(out, "[M::stat] %d syncmers, %.2f per read, avg gap %.2f\n",
		st.SyncmerN, st.SyncmerPerRd, st.SyncmerAvgGap)
	fmt.Fprintf(out, "[M::stat] s-mer: %d unique, %d singleton, avg count %.2f, hom peak %d, het peak %d\n",
		st.SmerUnique, st.SmerSingleton, st.SmerAvgCnt, st.SmerPeakHom, st.SmerPeakHet)
	fmt.Fprintf(out, "[M::stat] k-mer: %d unique, %d singleton, avg count %.2f, hom peak %d, het peak %d\n",
		st.KmerUnique, st.KmerSingleton, st.KmerAvgCnt, st.KmerPeakHom, st.KmerPeakHet)

	if verbose > 1 {
		writeCountHistogram(out, "SMER", sHist)
		writeCountHistogram(out, "KMER", kHist)
	}

	return st, nil
}

// smerMultiplicity sorts every anchor's s-mer code across the whole
// population and counts runs of equal value, matching
// syncmer_s_cmpfunc.
func smerMultiplicity(reads []*Read) (unique, singleton int, avg float64, hist [histogramWidth]int) {
	var all []uint64
	for _, r := range reads {
		all = append(all, r.SMer...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return runLengthStats(len(all), func(i, j int) bool { return all[i] == all[j] })
}

// kmerMultiplicity sorts every anchor's 128-bit k-mer hash and counts
// runs of equal value, matching syncmer_h_cmpfunc.
func kmerMultiplicity(reads []*Read) (unique, singleton int, avg float64, hist [histogramWidth]int) {
	var all []KMer128
	for _, r := range reads {
		all = append(all, r.KMerH...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Less(all[j]) })
	return runLengthStats(len(all), func(i, j int) bool { return all[i].Equal(all[j]) })
}

// runLengthStats scans a sorted sequence of length n, using eq(i, i+1)
// to detect run boundaries, and returns the multiplicity summary
// shared by the s-mer and k-mer tables.
func runLengthStats(n int, eq func(i, j int) bool) (unique, singleton int, avg float64, hist [histogramWidth]int) {
	if n == 0 {
		return 0, 0, 0, hist
	}
	total := 0
	runStart := 0
	flush := func(end int) {
		c := end - runStart
		total += c
		unique++
		if c == 1 {
			singleton++
		}
		b := c
		if b >= histogramWidth {
			b = histogramWidth - 1
		}
		hist[b]++
	}
	for i := 1; i < n; i++ {
		if !eq(i-1, i) {
			flush(i)
			runStart = i
		}
	}
	flush(n)
	avg = float64(total) / float64(unique)
	return unique, singleton, avg, hist
}

// analyzeCount searches a count->frequency histogram for the
// heterozygous/homozygous coverage peaks: find the first local minimum
// past the noise floor, the global maximum beyond it (the homozygous
// peak), then look for a subordinate peak on either side that
// qualifies as the heterozygous peak. If a qualifying peak is found to
// the right of the homozygous one, it takes over as the new homozygous
// peak and the former homozygous peak becomes heterozygous instead.
func analyzeCount(cnt [histogramWidth]int) (peakHom, peakHet int) {
	n := len(cnt)

	minI := lowestCut
	for i := lowestCut; i < n-1; i++ {
		minI = i
		if cnt[i] <= cnt[i+1] {
			break
		}
	}

	maxI := minI
	for i := minI; i < n; i++ {
		if cnt[i] > cnt[maxI] {
			maxI = i
		}
	}
	peakHom = maxI
	peakHet = -1

	if maxI > minI {
		max2I := minI
		for i := minI; i < maxI; i++ {
			if cnt[i] > cnt[max2I] {
				max2I = i
			}
		}
		max, max2 := float64(cnt[maxI]), float64(cnt[max2I])
		if max2 >= 0.05*max {
			minBetween := cnt[max2I]
			for i := max2I; i <= maxI; i++ {
				if cnt[i] < minBetween {
					minBetween = cnt[i]
				}
			}
			if float64(minBetween) <= 0.95*max2 {
				peakHet = max2I
			}
		}
	}

	if maxI < n-1 {
		max3I := maxI + 1
		for i := maxI + 1; i < n; i++ {
			if cnt[i] > cnt[max3I] {
				max3I = i
			}
		}
		max, max3 := float64(cnt[maxI]), float64(cnt[max3I])
		if max3 >= 0.05*max && max3 <= 2.5*max {
			minBetween := cnt[maxI]
			for i := maxI; i <= max3I; i++ {
				if cnt[i] < minBetween {
					minBetween = cnt[i]
				}
			}
			if float64(minBetween) <= 0.95*max3 {
				peakHet = maxI
				peakHom = max3I
			}
		}
	}

	return peakHom, peakHet
}

// writeCountHistogram renders a count->frequency table as a
// normalized ASCII bar chart.
func writeCountHistogram(out io.Writer, label string, hist [histogramWidth]int) {
	max := 0
	for _, c := range hist {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return
	}
	for i, c := range hist {
		if c == 0 {
			continue
		}
		barLen := c * 100 / max
		fmt.Fprintf(out, "[%s] %5d: %s (%d)\n", label, i, strings.Repeat("*", barLen), c)
	}
}
