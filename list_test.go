package lrucache

import (
	"slices"
	"testing"
)

func listOrder(l *recencyList[string, int]) []string {
	var out []string
	for i := l.head; i != nilSlot; i = l.slots[i].next {
		out = append(out, l.slots[i].key)
	}

	return out
}

func listOrderReverse(l *recencyList[string, int]) []string {
	var out []string
	for i := l.tail; i != nilSlot; i = l.slots[i].prev {
		out = append(out, l.slots[i].key)
	}

	return out
}

func checkOrder(t *testing.T, l *recencyList[string, int], want ...string) {
	t.Helper()

	if got := listOrder(l); !slices.Equal(got, want) {
		t.Fatalf("unexpected order; got %v; want %v", got, want)
	}

	rev := slices.Clone(want)
	slices.Reverse(rev)
	if got := listOrderReverse(l); !slices.Equal(got, rev) {
		t.Fatalf("unexpected reverse order; got %v; want %v", got, rev)
	}
}

func TestRecencyListLinkAtHead(t *testing.T) {
	l := newRecencyList[string, int](0)

	if _, ok := l.back(); ok {
		t.Fatalf("empty list must have no tail")
	}

	a := l.alloc("a", 1, Entry{})
	l.linkAtHead(a)
	checkOrder(t, &l, "a")
	if i, ok := l.back(); !ok || i != a {
		t.Fatalf("sole element must be the tail; got (%d, %t)", i, ok)
	}

	b := l.alloc("b", 2, Entry{})
	l.linkAtHead(b)
	c := l.alloc("c", 3, Entry{})
	l.linkAtHead(c)
	checkOrder(t, &l, "c", "b", "a")
}

func TestRecencyListUnlink(t *testing.T) {
	l := newRecencyList[string, int](4)
	idx := make(map[string]int)
	for _, k := range []string{"a", "b", "c", "d"} {
		idx[k] = l.alloc(k, 0, Entry{})
		l.linkAtHead(idx[k])
	}
	checkOrder(t, &l, "d", "c", "b", "a")

	// middle
	l.unlink(idx["c"])
	checkOrder(t, &l, "d", "b", "a")

	// tail
	l.unlink(idx["a"])
	checkOrder(t, &l, "d", "b")

	// head
	l.unlink(idx["d"])
	checkOrder(t, &l, "b")

	// sole element
	l.unlink(idx["b"])
	checkOrder(t, &l)
	if l.head != nilSlot || l.tail != nilSlot {
		t.Fatalf("empty list must have no ends; head %d tail %d", l.head, l.tail)
	}

	s := l.slots[idx["b"]]
	if s.prev != nilSlot || s.next != nilSlot {
		t.Fatalf("unlinked slot keeps links: prev %d next %d", s.prev, s.next)
	}
}

func TestRecencyListMoveToHead(t *testing.T) {
	l := newRecencyList[string, int](3)
	idx := make(map[string]int)
	for _, k := range []string{"a", "b", "c"} {
		idx[k] = l.alloc(k, 0, Entry{})
		l.linkAtHead(idx[k])
	}

	l.moveToHead(idx["a"])
	checkOrder(t, &l, "a", "c", "b")

	l.moveToHead(idx["c"])
	checkOrder(t, &l, "c", "a", "b")

	// already head
	l.moveToHead(idx["c"])
	checkOrder(t, &l, "c", "a", "b")
}

func TestRecencyListSlotReuse(t *testing.T) {
	l := newRecencyList[string, int](0)

	a := l.alloc("a", 1, Entry{})
	l.linkAtHead(a)
	b := l.alloc("b", 2, Entry{})
	l.linkAtHead(b)

	l.unlink(a)
	l.release(a)
	if l.slots[a].key != "" || l.slots[a].value != 0 {
		t.Fatalf("released slot must be zeroed: %+v", l.slots[a])
	}

	c := l.alloc("c", 3, Entry{})
	if c != a {
		t.Fatalf("released slot must be reused; got %d; want %d", c, a)
	}
	l.linkAtHead(c)
	checkOrder(t, &l, "c", "b")

	if len(l.slots) != 2 {
		t.Fatalf("arena grew despite free slot; len %d", len(l.slots))
	}

	l.reset(0)
	checkOrder(t, &l)
	if len(l.slots) != 0 || len(l.free) != 0 {
		t.Fatalf("reset must drop all slots")
	}
}
