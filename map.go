package sfa

// Hashable is a key of HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap is a hash table keyed by Hashable values, with chained buckets.
// Determinization uses it to map subsets of source states to deterministic
// states. It is not safe for concurrent use.
type HashMap[K Hashable, V any] struct {
	buckets    [][]entry[K, V]
	mask       uint64
	size       int
	loadFactor float64
}

type entry[K Hashable, V any] struct {
	key   K
	value V
}

type optionsHashMap struct {
	capacity   int
	loadFactor float64 // resize above this ratio of entries to buckets
}

type OptionsHashMap func(*optionsHashMap)

func WithCapacity(capacity int) OptionsHashMap {
	return func(o *optionsHashMap) {
		o.capacity = capacity
	}
}

func WithLoadFactor(loadFactor float64) OptionsHashMap {
	return func(o *optionsHashMap) {
		if loadFactor > 0 {
			o.loadFactor = loadFactor
		}
	}
}

// NewHashMap returns an empty map. The capacity is rounded up to a power of
// two.
func NewHashMap[K Hashable, V any](opts ...OptionsHashMap) *HashMap[K, V] {
	o := &optionsHashMap{
		capacity:   1,
		loadFactor: 0.75,
	}
	for _, fn := range opts {
		fn(o)
	}

	n := 1
	for n < o.capacity {
		n <<= 1
	}
	return &HashMap[K, V]{
		buckets:    make([][]entry[K, V], n),
		mask:       uint64(n - 1),
		loadFactor: o.loadFactor,
	}
}

// Set inserts or replaces the value of key.
func (m *HashMap[K, V]) Set(key K, value V) {
	b := key.Hash() & m.mask
	for i := range m.buckets[b] {
		if m.buckets[b][i].key.Equals(key) {
			m.buckets[b][i].value = value
			return
		}
	}
	m.buckets[b] = append(m.buckets[b], entry[K, V]{key: key, value: value})
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

// Get returns the value of key.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	b := key.Hash() & m.mask
	for _, e := range m.buckets[b] {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

// resize doubles the bucket count and rehashes every entry.
func (m *HashMap[K, V]) resize() {
	buckets := make([][]entry[K, V], len(m.buckets)<<1)
	mask := uint64(len(buckets) - 1)
	for _, chain := range m.buckets {
		for _, e := range chain {
			b := e.key.Hash() & mask
			buckets[b] = append(buckets[b], e)
		}
	}
	m.buckets = buckets
	m.mask = mask
}

// Size returns the number of entries.
func (m *HashMap[K, V]) Size() int {
	return m.size
}
