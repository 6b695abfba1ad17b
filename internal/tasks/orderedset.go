package tasks

// OrderedSet keeps values in insertion order and drops values whose key is already present.
type OrderedSet[K comparable, V any] struct {
	key   func(V) K
	index map[K]int
	items []V
}

// NewOrderedSet creates a set keyed by key.
func NewOrderedSet[K comparable, V any](key func(V) K) *OrderedSet[K, V] {
	return &OrderedSet[K, V]{key: key, index: make(map[K]int)}
}

// NewStringSet creates a set of strings compared by exact equality.
func NewStringSet(values ...string) *OrderedSet[string, string] {
	s := NewOrderedSet(func(v string) string { return v })
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v unless its key is present and reports whether it was added.
func (s *OrderedSet[K, V]) Add(v V) bool {
	k := s.key(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Remove deletes the value with key k and reports whether it was present.
func (s *OrderedSet[K, V]) Remove(k K) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, k)
	for j := i; j < len(s.items); j++ {
		s.index[s.key(s.items[j])] = j
	}
	return true
}

// Toggle removes v when present and adds it otherwise. It reports whether v is now present.
func (s *OrderedSet[K, V]) Toggle(v V) bool {
	if s.Remove(s.key(v)) {
		return false
	}
	return s.Add(v)
}

// Contains reports whether a value with key k is present.
func (s *OrderedSet[K, V]) Contains(k K) bool {
	_, ok := s.index[k]
	return ok
}

// Get returns the value stored under k.
func (s *OrderedSet[K, V]) Get(k K) (V, bool) {
	i, ok := s.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return s.items[i], true
}

// Values returns a copy of the values in insertion order. It is never nil.
func (s *OrderedSet[K, V]) Values() []V {
	out := make([]V, len(s.items))
	copy(out, s.items)
	return out
}

// Keys returns the keys in insertion order.
func (s *OrderedSet[K, V]) Keys() []K {
	out := make([]K, len(s.items))
	for i, v := range s.items {
		out[i] = s.key(v)
	}
	return out
}

func (s *OrderedSet[K, V]) Len() int { return len(s.items) }

// Clear removes every value.
func (s *OrderedSet[K, V]) Clear() {
	s.items = nil
	s.index = make(map[K]int)
}
