// ABOUTME: In-memory key-value store for tests and quota simulation
// ABOUTME: Optional byte cap reproduces the bounded-storage failure mode

package kvstore

// MemoryStore implements Store with a plain map. With a positive
// maxBytes it rejects writes that would push the total stored size over
// the cap, mirroring the quota behavior of size-bounded stores.
type MemoryStore struct {
	data     map[string][]byte
	maxBytes int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an unbounded in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// NewBoundedMemoryStore creates a store that holds at most maxBytes of
// value data across all keys.
func NewBoundedMemoryStore(maxBytes int) *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), maxBytes: maxBytes}
}

// Get reads a value by key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte{}, value...), nil
}

// Set writes a value under key, enforcing the byte cap if configured.
func (s *MemoryStore) Set(key string, value []byte) error {
	if s.maxBytes > 0 {
		total := len(value)
		for k, v := range s.data {
			if k != key {
				total += len(v)
			}
		}
		if total > s.maxBytes {
			return ErrQuotaExceeded
		}
	}
	s.data[key] = append([]byte{}, value...)
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored keys. Test helper.
func (s *MemoryStore) Len() int {
	return len(s.data)
}
