// Package collision detects repeated keys in decoded index tables.
package collision

// Duplicate records a key seen more than once.
type Duplicate struct {
	Key uint64
	// First and Again are the ordinals of the first and the repeated occurrence.
	First int
	Again int
}

// Tracker remembers the keys it has seen and the ordinal of their first occurrence.
type Tracker struct {
	seen       map[uint64]int
	count      int
	duplicates []Duplicate
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[uint64]int),
	}
}

// Track records key and reports whether it is new.
// A repeated key is remembered as a Duplicate.
func (t *Tracker) Track(key uint64) bool {
	ordinal := t.count
	t.count++

	if first, exists := t.seen[key]; exists {
		t.duplicates = append(t.duplicates, Duplicate{Key: key, First: first, Again: ordinal})
		return false
	}
	t.seen[key] = ordinal

	return true
}

// Seen reports whether key has been tracked.
func (t *Tracker) Seen(key uint64) bool {
	_, ok := t.seen[key]
	return ok
}

// HasDuplicates returns true if any key was tracked twice.
func (t *Tracker) HasDuplicates() bool {
	return len(t.duplicates) > 0
}

// Duplicates returns the repeated occurrences in tracking order.
func (t *Tracker) Duplicates() []Duplicate {
	return t.duplicates
}

// Count returns the number of Track calls.
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears all tracked keys.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.count = 0
	t.duplicates = t.duplicates[:0]
}
