package lrucache

// nilSlot marks the absence of a neighbor or of a list end.
const nilSlot = -1

// slot holds one cached entry together with its recency links.
//
// Links are indices into recencyList.slots, so growing the arena never
// invalidates them.
type slot[K comparable, V any] struct {
	key   K
	value V
	entry Entry

	prev int
	next int
}

// recencyList is a doubly linked list over an arena of slots, ordered from
// most recently used (head) to least recently used (tail).
//
// The list is not safe for concurrent use; Cache guards it with its mutex.
type recencyList[K comparable, V any] struct {
	slots []slot[K, V]
	free  []int

	head int
	tail int
}

func newRecencyList[K comparable, V any](capacity int) recencyList[K, V] {
	return recencyList[K, V]{
		slots: make([]slot[K, V], 0, capacity),
		head:  nilSlot,
		tail:  nilSlot,
	}
}

// alloc stores a new unlinked slot and returns its index.
func (l *recencyList[K, V]) alloc(k K, v V, e Entry) int {
	s := slot[K, V]{key: k, value: v, entry: e, prev: nilSlot, next: nilSlot}

	if n := len(l.free); n > 0 {
		i := l.free[n-1]
		l.free = l.free[:n-1]
		l.slots[i] = s

		return i
	}

	l.slots = append(l.slots, s)

	return len(l.slots) - 1
}

// release zeroes an unlinked slot and makes it reusable.
func (l *recencyList[K, V]) release(i int) {
	l.slots[i] = slot[K, V]{prev: nilSlot, next: nilSlot}
	l.free = append(l.free, i)
}

func (l *recencyList[K, V]) linkAtHead(i int) {
	s := &l.slots[i]
	s.prev = nilSlot
	s.next = l.head

	if l.head != nilSlot {
		l.slots[l.head].prev = i
	} else {
		l.tail = i
	}

	l.head = i
}

// unlink detaches slot i. The slot must be linked.
func (l *recencyList[K, V]) unlink(i int) {
	s := &l.slots[i]

	if s.prev != nilSlot {
		l.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}

	if s.next != nilSlot {
		l.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}

	s.prev = nilSlot
	s.next = nilSlot
}

func (l *recencyList[K, V]) moveToHead(i int) {
	if i == l.head {
		return
	}

	l.unlink(i)
	l.linkAtHead(i)
}

// back returns the least recently used slot.
func (l *recencyList[K, V]) back() (int, bool) {
	return l.tail, l.tail != nilSlot
}

// reset drops every slot. Previously allocated memory is released to the GC.
func (l *recencyList[K, V]) reset(capacity int) {
	*l = newRecencyList[K, V](capacity)
}
