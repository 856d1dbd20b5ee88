package stabledict

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	slotEmpty   = 0x00
	slotFull    = 0x01
	slotDeleted = 0xFE
)

var (
	// Returned by Insert when every slot holds a live entry and the key is new.
	ErrDictFull = errors.New("stabledict: dictionary is full")

	// Returned by Insert when the probe sequence visited every slot without
	// finding a place for the key. Unreachable while capacity is a power of
	// two and the probe step is odd.
	ErrTableOverflow = errors.New("stabledict: table overflow")

	ErrInvalidCapacity = errors.New("stabledict: capacity must be a positive power of two")

	// Returned by Insert on a closed dict, or on a zero-value one that was
	// never built with New.
	ErrClosed = errors.New("stabledict: dictionary is closed")
)

type slot[V any] struct {
	ctrl  uint8
	key   string
	value V
}

type table[V any] struct {
	slots []slot[V]

	capacity   uintptr
	size       uintptr
	tombstones uintptr
	inserts    uint64

	primary   HashFunc
	secondary HashFunc

	emptyV V
}

func (t *table[V]) init(capacity int, opts ...Option[V]) error {
	if capacity <= 0 || !IsPowerOf2(uint64(capacity)) {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	t.slots = make([]slot[V], capacity)
	t.capacity = uintptr(capacity)

	for _, opt := range opts {
		opt(t)
	}

	if t.primary == nil {
		t.primary = FNVPrimary
	}
	if t.secondary == nil {
		t.secondary = FNVSecondary
	}

	return nil
}

// probeSeq walks (start + i*step) mod capacity for i in [0, capacity).
type probeSeq struct {
	mask   uintptr
	offset uintptr
	step   uintptr
	i      uintptr
	n      uintptr
}

func (t *table[V]) probe(key string) probeSeq {
	start, step := HashSplit(t.primary(key), t.secondary(key), t.capacity)

	return probeSeq{
		mask:   t.capacity - 1,
		offset: start,
		step:   step,
		n:      t.capacity,
	}
}

// ProbeIndex returns the i-th slot visited for the key in a table of the
// given capacity using the default FNV hash pair. Panics if capacity is zero.
func ProbeIndex(key string, capacity, i uint64) uint64 {
	if capacity == 0 {
		panic("stabledict: ProbeIndex called with zero capacity")
	}

	start, step := HashSplit(FNVPrimary(key), FNVSecondary(key), uintptr(capacity))

	// 128-bit start + i*step, so any capacity reduces exactly.
	hi, lo := bits.Mul64(i, uint64(step))
	lo, carry := bits.Add64(lo, uint64(start), 0)

	return bits.Rem64(hi+carry, lo, capacity)
}

// ProbeSequence returns every slot index ProbeIndex visits for the key, in
// order.
func ProbeSequence(key string, capacity uint64) []uint64 {
	seq := make([]uint64, capacity)
	for i := range capacity {
		seq[i] = ProbeIndex(key, capacity, i)
	}

	return seq
}

func (s *probeSeq) done() bool {
	return s.i >= s.n
}

func (s *probeSeq) next() {
	s.i++
	s.offset = (s.offset + s.step) & s.mask
}

// find returns the slot index holding a live entry for the key.
func (t *table[V]) find(key string) (uintptr, bool) {
	if t.slots == nil {
		return 0, false
	}

	for seq := t.probe(key); !seq.done(); seq.next() {
		s := &t.slots[seq.offset]

		switch s.ctrl {
		case slotEmpty:
			return 0, false
		case slotFull:
			if s.key == key {
				return seq.offset, true
			}
		}

		// Deleted slots don't end the walk: the key may sit further along.
	}

	return 0, false
}

func (t *table[V]) get(key string) (V, bool) {
	idx, ok := t.find(key)
	if !ok {
		return t.emptyV, false
	}

	return t.slots[idx].value, true
}

func (t *table[V]) put(key string, value V) (V, error) {
	if t.slots == nil {
		return t.emptyV, ErrClosed
	}

	// Every slot is live, so only an overwrite can succeed.
	if t.size >= t.capacity {
		idx, ok := t.find(key)
		if !ok {
			return t.emptyV, fmt.Errorf("%w: cannot insert key %q", ErrDictFull, key)
		}

		return t.overwrite(idx, value), nil
	}

	var (
		target    uintptr
		foundSlot bool
	)

	for seq := t.probe(key); !seq.done(); seq.next() {
		s := &t.slots[seq.offset]

		switch s.ctrl {
		case slotFull:
			if s.key == key {
				return t.overwrite(seq.offset, value), nil
			}

		case slotDeleted:
			// Cache the first reusable slot, but keep looking for the key.
			// Placing it here right away would leave a stale live copy
			// further along the sequence, which Search and Remove would
			// find again after this copy is removed.
			if !foundSlot {
				target = seq.offset
				foundSlot = true
			}

		case slotEmpty:
			if !foundSlot {
				target = seq.offset
			}

			return t.place(target, key, value), nil
		}
	}

	if foundSlot {
		return t.place(target, key, value), nil
	}

	return t.emptyV, fmt.Errorf("%w: cannot insert key %q", ErrTableOverflow, key)
}

func (t *table[V]) overwrite(idx uintptr, value V) V {
	s := &t.slots[idx]
	prev := s.value
	s.value = value
	t.inserts++

	return prev
}

func (t *table[V]) place(idx uintptr, key string, value V) V {
	s := &t.slots[idx]
	if s.ctrl == slotDeleted {
		t.tombstones--
	}

	s.ctrl = slotFull
	s.key = key
	s.value = value

	t.size++
	t.inserts++

	return value
}

func (t *table[V]) delete(key string) bool {
	idx, ok := t.find(key)
	if !ok {
		return false
	}

	// The key stays in the slot until an insert reuses it.
	t.slots[idx].ctrl = slotDeleted
	t.size--
	t.tombstones++

	return true
}

func (t *table[V]) Reset() {
	clear(t.slots)

	t.size = 0
	t.tombstones = 0
	t.inserts = 0
}

// Compact drops all tombstones by re-placing the live entries into a
// cleared slot array of the same capacity.
func (t *table[V]) Compact() {
	if t.slots == nil || t.tombstones == 0 {
		return
	}

	live := make([]slot[V], 0, t.size)
	for i := range t.slots {
		if t.slots[i].ctrl == slotFull {
			live = append(live, t.slots[i])
		}
	}

	clear(t.slots)
	t.tombstones = 0

	for _, e := range live {
		for seq := t.probe(e.key); !seq.done(); seq.next() {
			s := &t.slots[seq.offset]
			if s.ctrl == slotEmpty {
				*s = e
				break
			}
		}
	}
}

func (t *table[V]) Close() {
	t.slots = nil
	t.capacity = 0
	t.size = 0
	t.tombstones = 0
}

func (t *table[V]) Stats() Stats {
	s := Stats{
		Capacity:   int(t.capacity),
		Size:       int(t.size),
		Tombstones: int(t.tombstones),
		Inserts:    t.inserts,
	}

	if t.capacity > 0 {
		s.LoadFactor = float32(t.size) / float32(t.capacity)
		s.TombstonesCapacityRatio = float32(t.tombstones) / float32(t.capacity)
	}
	if t.size > 0 {
		s.TombstonesSizeRatio = float32(t.tombstones) / float32(t.size)
	}

	return s
}
