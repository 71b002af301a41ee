package syncreads

import (
	"fmt"
	"io"
	"strings"
)

// Print helpers render a read's ASCII debug surface: hashes as two
// zero-padded 20-digit decimals, since a uint64 never exceeds 20
// decimal digits.

// KmerSeq decodes the w-symbol ACGT window at a (hocoPos<<1)|strand
// packed position, reverse-complementing it when the strand bit is
// set. Needed by every print helper below.
func KmerSeq(hoco []byte, packedPos uint32, w int) []byte {
	rev := packedPos&1 != 0
	p0 := int(packedPos >> 1)

	out := make([]byte, w)
	for i := 0; i < w; i++ {
		pos := p0 + i
		sym := (hoco[pos/4] >> packedShift(pos&3)) & 3
		out[i] = DecodeSymbol(sym)
	}
	if !rev {
		return out
	}

	rc := make([]byte, w)
	for i, b := range out {
		rc[w-1-i] = complementBase(b)
	}
	return rc
}

func complementBase(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	default:
		return b
	}
}

// PrintHocoSeq writes r's homopolymer-compressed backbone (one base
// per HOCO position, run lengths not expanded) as a single-line FASTA
// record.
func PrintHocoSeq(out io.Writer, r *Read) error {
	buf := make([]byte, r.HocoLen)
	for p := 0; p < r.HocoLen; p++ {
		sym := (r.HocoSeq[p/4] >> packedShift(p&3)) & 3
		buf[p] = DecodeSymbol(sym)
	}
	_, err := fmt.Fprintf(out, ">%s\n%s\n", r.SName, buf)
	return err
}

// PrintSyncmerOnSeq writes one anchor's HOCO position, strand, decoded
// window sequence and k-mer hash as a tab-separated line.
func PrintSyncmerOnSeq(out io.Writer, r *Read, i int, w int) error {
	pos := r.MPos[i] >> 1
	strand := r.MPos[i] & 1
	seq := KmerSeq(r.HocoSeq, r.MPos[i], w)
	_, err := fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%020d%020d\n",
		r.SName, pos, strand, seq, r.KMerH[i].Hi, r.KMerH[i].Lo)
	return err
}

// PrintAllSyncmersOnSeq writes every anchor on r, one line each, in
// anchor-index order.
func PrintAllSyncmersOnSeq(out io.Writer, r *Read, w int) error {
	for i := range r.MPos {
		if err := PrintSyncmerOnSeq(out, r, i, w); err != nil {
			return err
		}
	}
	return nil
}

// PrintAlignedSyncmersOnSeq writes the HOCO backbone followed by each
// anchor's decoded window indented to its HOCO position, so anchors
// visually line up under the backbone they were drawn from.
func PrintAlignedSyncmersOnSeq(out io.Writer, r *Read, w int) error {
	if err := PrintHocoSeq(out, r); err != nil {
		return err
	}
	for i := range r.MPos {
		pos := int(r.MPos[i] >> 1)
		seq := KmerSeq(r.HocoSeq, r.MPos[i], w)
		if _, err := fmt.Fprintln(out, strings.Repeat(" ", pos)+string(seq)); err != nil {
			return err
		}
	}
	return nil
}
