package usecase

import "sync"

// StateLock serializes every load-mutate-save cycle against the state
// store. The persisted state is one document per owner with a single
// logical writer; one process-wide lock keeps that discipline across the
// HTTP surface and the background refresh loop.
type StateLock struct {
	sync.Mutex
}

// NewStateLock creates the shared state lock
func NewStateLock() *StateLock {
	return &StateLock{}
}
