package table

import (
	xxhash "github.com/cespare/xxhash/v2"
)

const (
	keyIndexLoadFactor     = 0.75 // load factor before the bucket array doubles
	keyIndexGrowthFactor   = 2    // growth factor for resize
	keyIndexCapacityFactor = 1.3  // capacity factor for initial size
)

// KeyIndex maps primary key values to row positions. Buckets are addressed
// with xxhash and each key is stored at most once. Keys are remembered in
// insertion order so callers can enumerate them deterministically.
type KeyIndex struct {
	buckets  [][]keyEntry
	capacity int
	order    []string
}

type keyEntry struct {
	key string
	row int
}

// NewKeyIndex creates an index sized for estimatedSize keys.
func NewKeyIndex(estimatedSize int) *KeyIndex {
	capacity := nextPowerOfTwo(int(float64(estimatedSize) * keyIndexCapacityFactor))
	return &KeyIndex{
		buckets:  make([][]keyEntry, capacity),
		capacity: capacity,
		order:    make([]string, 0, estimatedSize),
	}
}

// Put records key at row. It returns false, leaving the index unchanged, when
// key is already present.
func (ki *KeyIndex) Put(key string, row int) bool {
	b := ki.bucket(key, ki.capacity)
	for _, entry := range ki.buckets[b] {
		if entry.key == key {
			return false
		}
	}

	ki.buckets[b] = append(ki.buckets[b], keyEntry{key: key, row: row})
	ki.order = append(ki.order, key)

	if float64(len(ki.order)) > float64(ki.capacity)*keyIndexLoadFactor {
		ki.resize()
	}
	return true
}

// Get returns the row position stored for key.
func (ki *KeyIndex) Get(key string) (int, bool) {
	for _, entry := range ki.buckets[ki.bucket(key, ki.capacity)] {
		if entry.key == key {
			return entry.row, true
		}
	}
	return -1, false
}

// Contains reports whether key is indexed.
func (ki *KeyIndex) Contains(key string) bool {
	_, ok := ki.Get(key)
	return ok
}

// Len returns the number of indexed keys.
func (ki *KeyIndex) Len() int {
	return len(ki.order)
}

// Keys returns the indexed keys in insertion order. The slice is shared.
func (ki *KeyIndex) Keys() []string {
	return ki.order
}

func (ki *KeyIndex) bucket(key string, capacity int) int {
	//nolint:gosec // capacity is a positive power of two
	return int(xxhash.Sum64String(key) & uint64(capacity-1))
}

// resize doubles the capacity and rehashes all entries.
func (ki *KeyIndex) resize() {
	newCapacity := ki.capacity * keyIndexGrowthFactor
	newBuckets := make([][]keyEntry, newCapacity)

	for _, bucket := range ki.buckets {
		for _, entry := range bucket {
			b := ki.bucket(entry.key, newCapacity)
			newBuckets[b] = append(newBuckets[b], entry)
		}
	}

	ki.buckets = newBuckets
	ki.capacity = newCapacity
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
