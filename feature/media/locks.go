package media

import "sync"

// listingLocks hands out one mutex per listing and forgets it when unused.
type listingLocks struct {
	mu    sync.Mutex
	locks map[int64]*listingLock
}

type listingLock struct {
	sync.Mutex
	refs int
}

func newListingLocks() *listingLocks {
	return &listingLocks{locks: make(map[int64]*listingLock)}
}

// lock blocks until the listing is free and returns the unlock func.
func (l *listingLocks) lock(listingID int64) func() {
	l.mu.Lock()
	lk, ok := l.locks[listingID]
	if !ok {
		lk = &listingLock{}
		l.locks[listingID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, listingID)
		}
		l.mu.Unlock()
	}
}
