package syncreads

// NT2 encodes nucleotide bytes into 2-bit symbols (A=0, C=1, G=2, T=3)
// and packs four symbols per byte, most-significant symbol first. A
// precomputed 256-entry table gives the byte-wise reverse complement,
// so reverse-complementing a packed buffer never has to unpack it.

// ambiguousSymbol marks any input byte that isn't A/C/G/T/U (case
// insensitive) in nt2Table.
const ambiguousSymbol = 4

// nt2Table maps every possible input byte to its 2-bit code, or
// ambiguousSymbol (4) for anything that isn't a nucleotide.
var nt2Table = buildNT2Table()

func buildNT2Table() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = ambiguousSymbol
	}
	t['A'], t['a'] = 0, 0
	t['C'], t['c'] = 1, 1
	t['G'], t['g'] = 2, 2
	t['T'], t['t'] = 3, 3
	t['U'], t['u'] = 3, 3
	return t
}

// nt2Decode maps a 2-bit code back to its ACGT byte, used by the print
// helpers and HocoDecode.
var nt2Decode = [4]byte{'A', 'C', 'G', 'T'}

// EncodeBase returns the 2-bit code for b (0-3), or 4 if b is not an
// ACGT/U base.
func EncodeBase(b byte) byte { return nt2Table[b] }

// DecodeSymbol returns the ACGT byte for a 2-bit code in [0,3].
func DecodeSymbol(sym byte) byte { return nt2Decode[sym&3] }

// packedShift returns the bit shift for the symbol at position p within
// its byte: the most-significant symbol occupies the top two bits.
func packedShift(p int) uint { return uint((p&3)^3) << 1 }

// rcByteTable[b] is b with its four packed 2-bit symbols reversed
// and each one complemented (A<->T, C<->G, i.e. value ^ 3). Precomputed
// once at init so reverse-complementing a packed buffer is a table
// lookup per byte, the same trade axiomhq/fsst's byteCodes/shortCodes
// make.
var rcByteTable = buildRCByteTable()

func buildRCByteTable() [256]byte {
	var t [256]byte
	for b := 0; b < 256; b++ {
		var out byte
		for p := 0; p < 4; p++ {
			sym := (byte(b) >> packedShift(p)) & 3
			comp := sym ^ 3
			// symbol at position p in the input lands, reversed, at
			// position (3-p) in the output.
			out |= comp << packedShift(3-p)
		}
		t[b] = out
	}
	return t
}

// RCByte returns the reverse complement of a single packed byte.
func RCByte(b byte) byte { return rcByteTable[b] }
