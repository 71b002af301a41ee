package syncreads

// ExtractRead is the core rolling-window syncmer extractor. It scans
// the HOCO symbol stream of one read, tracking a forward/reverse-
// complement k-mer pair and a circular buffer of the last q = w-k+1
// k-mer ranks, and emits an anchor each time the buffer's minimum
// enters or leaves the window.

// undefinedHash marks a k-mer rank that must never become (or stay) a
// window minimizer: a palindromic k-mer (fwd == rev, no canonical
// strand) or a position where fewer than k valid symbols have been
// seen since the last reset.
const undefinedHash = ^uint64(0)

// syncSlot is one entry of the rolling circular buffer: a k-mer rank
// and its packed (canonical_kmer<<1)|strand_bit value.
type syncSlot struct {
	m uint64
	s uint64
}

// syncState holds the rolling window for one read's scan. The HOCO
// compressor (hocoCompressState) is embedded directly: HOCO symbols
// are SYNC's input alphabet, and a read's packed buffer only exists
// because SYNC needs to scan it, so the two are built in the same
// pass rather than two independent ones.
type syncState struct {
	p   Params
	cfg HashConfig

	mask   uint64
	shift1 uint

	fwd, rev uint64
	l        int

	buf    []syncSlot
	bufPos int
	mz     uint64
	mzPos  int

	hoco hocoCompressState
	read *Read
}

func newSyncState(p Params, cfg HashConfig, sid uint64, sname []byte) *syncState {
	q := p.Q()
	buf := make([]syncSlot, q)
	for i := range buf {
		buf[i] = syncSlot{m: undefinedHash}
	}
	return &syncState{
		p:      p,
		cfg:    cfg,
		mask:   uint64(1)<<(2*uint(p.K)) - 1,
		shift1: uint(2 * (p.K - 1)),
		buf:    buf,
		mzPos:  -1,
		mz:     undefinedHash,
		read:   &Read{SID: sid, SName: sname},
	}
}

// pushSymbol advances the rolling window by one HOCO symbol: c is the
// 2-bit code shared by the whole run just collapsed by HOCO.
func (st *syncState) pushSymbol(c byte) {
	st.fwd = ((st.fwd << 2) | uint64(c)) & st.mask
	st.rev = (st.rev >> 2) | (uint64(c^3) << st.shift1)
	st.l++

	var m, s uint64
	if st.l >= st.p.K {
		strandBit := uint64(0)
		canon := st.fwd
		switch {
		case st.fwd == st.rev:
			m = undefinedHash
			strandBit = 1
			canon = st.rev
		case st.fwd < st.rev:
			m = Hash64(st.fwd, st.mask)
		default:
			strandBit = 1
			canon = st.rev
			m = Hash64(st.rev, st.mask)
		}
		s = (canon << 1) | strandBit
	} else {
		m = undefinedHash
	}
	st.step(m, s)
}

// pushAmbiguous advances the rolling window by one step for a single
// ambiguous input base: it resets l (blocking emission until k real
// symbols have been rescanned) but leaves fwd/rev untouched, since
// they are overwritten symbol-by-symbol as real bases resume.
func (st *syncState) pushAmbiguous() {
	st.l = 0
	st.step(undefinedHash, 0)
}

// step runs one rolling-window tick: check the open (trailing) rule
// against the slot about to be overwritten, overwrite it with (m, s),
// apply the closed rule, then — if the written slot is (still, or
// newly) the tracked minimum's position — rescan the whole buffer and
// apply the tie-broken rule.
func (st *syncState) step(m, s uint64) {
	hocoLen := st.hoco.hocoLen
	w := st.p.W

	wasMinSlot := st.bufPos == st.mzPos
	departing := st.buf[st.bufPos]
	if wasMinSlot && st.mz != undefinedHash && st.l > w {
		st.emit(departing.s, hocoLen-w-1, false)
	}

	st.buf[st.bufPos] = syncSlot{m: m, s: s}

	if m != undefinedHash && m <= st.mz {
		if st.l >= w {
			st.emit(s, hocoLen-w, true)
		}
		if m < st.mz {
			st.mz = m
			st.mzPos = st.bufPos
		}
	}

	if m >= st.mz && st.bufPos == st.mzPos {
		prevMz := st.mz
		st.rescanMinimum()
		neq := m != prevMz
		nextPos := st.bufPos + 1
		if nextPos == len(st.buf) {
			nextPos = 0
		}
		if neq && ((st.mzPos == nextPos && st.mz == m) || st.mzPos == st.bufPos) &&
			st.mz != undefinedHash && st.l >= w {
			st.emit(s, hocoLen-w, true)
		}
	}

	st.bufPos++
	if st.bufPos == len(st.buf) {
		st.bufPos = 0
	}
}

// rescanMinimum finds the new minimum over the whole circular buffer
// after the slot that held the old one was overwritten. Ties favor
// the earliest slot in cyclic order starting from bufPos+1 (the
// oldest surviving entry).
func (st *syncState) rescanMinimum() {
	q := len(st.buf)
	bestM := undefinedHash
	bestPos := -1
	for step := 1; step <= q; step++ {
		i := (st.bufPos + step) % q
		if st.buf[i].m < bestM {
			bestM = st.buf[i].m
			bestPos = i
		}
	}
	st.mz = bestM
	st.mzPos = bestPos
}

// emit records one anchor. flipSMerBit is true for the closed syncmer
// rule and its tie-broken rescan counterpart, both of which store an
// s-mer code with its strand bit flipped relative to the physical
// k-mer strand used for hashing; the open syncmer rules store the
// s-mer as-is.
func (st *syncState) emit(s uint64, hocoPos int, flipSMerBit bool) {
	strandBit := uint32(s & 1)
	packedPos := uint32(hocoPos)<<1 | strandBit

	smer := s
	if flipSMerBit {
		smer = s ^ 1
	}

	r := st.read
	r.MPos = append(r.MPos, packedPos)
	r.SMer = append(r.SMer, smer)
	r.KMerH = append(r.KMerH, Hash128(st.hoco.packed, packedPos, st.p.W, st.cfg))

	n := len(r.MPos)
	if n >= 2 && r.MPos[n-1]>>1 == r.MPos[n-2]>>1 {
		r.MPos = r.MPos[:n-2]
		r.SMer = r.SMer[:n-2]
		r.KMerH = r.KMerH[:n-2]
	}
}

// finish applies the final emission rule once all input has been
// scanned: bufPos, as left by step's trailing advance, names the
// oldest slot in the window — the one that would be overwritten next
// had the stream continued. If that slot is still the tracked minimum
// and a full window of real symbols has accumulated, it qualifies as
// a trailing syncmer that the stream never got to evict naturally.
func (st *syncState) finish() {
	if st.bufPos == st.mzPos && st.mz != undefinedHash && st.l >= st.p.W {
		st.emit(st.buf[st.bufPos].s, st.hoco.hocoLen-st.p.W, false)
	}
}

// ExtractRead runs the full SYNC/HOCO pass over one read's bases and
// returns its populated anchor set. sid and sname are copied onto the
// result verbatim; bases is not retained.
func ExtractRead(bases []byte, sid uint64, sname []byte, p Params) (*Read, error) {
	return extractReadWithConfig(bases, sid, sname, p, DefaultHashConfig)
}

func extractReadWithConfig(bases []byte, sid uint64, sname []byte, p Params, cfg HashConfig) (*Read, error) {
	st := newSyncState(p, cfg, sid, sname)

	i := 0
	for i < len(bases) {
		c := EncodeBase(bases[i])
		if c == ambiguousSymbol {
			st.hoco.nNucl = append(st.hoco.nNucl, uint32(i))
			st.pushAmbiguous()
			i++
			continue
		}
		rl := 1
		for i+rl < len(bases) && EncodeBase(bases[i+rl]) == c {
			rl++
		}
		st.hoco.pushSymbol(c)
		st.hoco.pushRun(rl)
		st.pushSymbol(c)
		i += rl
	}
	st.finish()

	for g := 0; g < hocoGuardBytes; g++ {
		st.hoco.packed = append(st.hoco.packed, 0)
	}
	st.hoco.applyTo(st.read)
	return st.read, nil
}
