package syncreads

import "sync"

// Extract batches reads pulled from a single-threaded external reader
// into per-worker slots and runs extraction across workers in
// parallel, joining each batch before starting the next.

// batchSize is the per-worker slot capacity per batch.
const batchSize = 10000

// Reader is the external sequence-stream collaborator's contract.
// ReadNext returns ok == false once the stream is exhausted; err is
// non-nil only on an I/O failure, which aborts the extraction.
type Reader interface {
	ReadNext() (name, bases []byte, ok bool, err error)
}

type pendingRead struct {
	sid   uint64
	name  []byte
	bases []byte
}

// Extract pulls reads from reader, extracts syncmer anchors for each,
// and returns them concatenated. With workers <= 1 this runs inline
// with no goroutines. maxBytes, if positive, stops the producer once
// that many input bases have been consumed; the final partial batch is
// still extracted and included.
func Extract(reader Reader, p Params, maxBytes int64, workers int) ([]*Read, error) {
	if workers <= 1 {
		return extractSingleThread(reader, p, maxBytes)
	}
	return extractPooled(reader, p, maxBytes, workers)
}

func extractSingleThread(reader Reader, p Params, maxBytes int64) ([]*Read, error) {
	var out []*Read
	var sid uint64
	var total int64
	for {
		name, bases, ok, err := reader.ReadNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		r, err := ExtractRead(bases, sid, name, p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		sid++
		total += int64(len(bases))
		if maxBytes > 0 && total >= maxBytes {
			return out, nil
		}
	}
}

func extractPooled(reader Reader, p Params, maxBytes int64, workers int) ([]*Read, error) {
	var out []*Read
	var sid uint64
	var total int64

	slots := make([][]pendingRead, workers)
	for w := range slots {
		slots[w] = make([]pendingRead, 0, batchSize)
	}
	nextWorker := 0

	flush := func() error {
		results := make([][]*Read, workers)
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for w := 0; w < workers; w++ {
			if len(slots[w]) == 0 {
				continue
			}
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				slot := slots[w]
				res := make([]*Read, 0, len(slot))
				for _, pr := range slot {
					r, err := ExtractRead(pr.bases, pr.sid, pr.name, p)
					if err != nil {
						errs[w] = err
						return
					}
					res = append(res, r)
				}
				results[w] = res
			}(w)
		}
		wg.Wait()
		for w := 0; w < workers; w++ {
			if errs[w] != nil {
				return errs[w]
			}
			out = append(out, results[w]...)
			slots[w] = slots[w][:0]
		}
		return nil
	}

	for {
		name, bases, ok, err := reader.ReadNext()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		// Reads are handed out round-robin rather than in contiguous
		// per-worker blocks, so a worker's slot fills from reads
		// scattered across the whole stream instead of one run. Output
		// order only matches the input once the caller sorts by sid
		// anyway, so this doesn't change what callers can rely on.
		slots[nextWorker] = append(slots[nextWorker], pendingRead{sid: sid, name: name, bases: bases})
		sid++
		total += int64(len(bases))

		full := true
		for _, s := range slots {
			if len(s) < batchSize {
				full = false
				break
			}
		}
		if full {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		nextWorker++
		if nextWorker == workers {
			nextWorker = 0
		}
		if maxBytes > 0 && total >= maxBytes {
			break
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}
