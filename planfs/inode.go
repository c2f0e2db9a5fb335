package planfs

import "sync"

// inodeAllocator hands out increasing inode numbers. The root is always 1.
type inodeAllocator struct {
	mu      sync.Mutex
	highest uint64
}

func (a *inodeAllocator) next() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.highest++
	return a.highest
}
