package syncreads

// Validate checks the hard input-size limits (MaxReadNum,
// MaxReadSyncmer). This is a soft failure mode: the caller decides how
// to react, the library never aborts on its own.
func Validate(reads []*Read) error {
	if len(reads) > MaxReadNum {
		return ErrTooManyReads
	}
	for _, r := range reads {
		if r.N() > MaxReadSyncmer {
			return ErrTooManySyncmers
		}
	}
	return nil
}
