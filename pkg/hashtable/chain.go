package hashtable

import (
	"math"

	"github.com/optable/courseplanner/pkg/course"
)

const (
	// EmptyTag marks an arena slot that holds no course:
	// the keeper and every released slot carry it.
	EmptyTag = math.MaxUint64
	// keeper is the arena index that ends every chain. The slot
	// itself never holds a course, so a link equal to keeper means
	// there is no next node.
	keeper uint32 = 0
)

// node is one link of a bucket chain. next is the arena index
// of the following node, or keeper.
type node struct {
	course course.Course
	tag    uint64
	next   uint32
}

// occupied is true when the slot holds a live course
func (n *node) occupied() bool {
	return n.tag != EmptyTag
}

// find walks the chain of bucket b looking for number. It returns the
// index of the matching node and of its predecessor. When nothing
// matches idx is keeper and prev is the tail of the chain, or keeper
// if the chain is empty.
func (t *Table) find(b uint64, number string) (prev, idx uint32) {
	prev, idx = keeper, t.anchors[b]
	for idx != keeper && t.arena[idx].course.Number != number {
		prev, idx = idx, t.arena[idx].next
	}
	return prev, idx
}

// link appends node n after prev, or directly under the anchor of b
// when prev is keeper.
func (t *Table) link(b uint64, prev, n uint32) {
	if prev == keeper {
		t.anchors[b] = n
	} else {
		t.arena[prev].next = n
	}
}

// unlink splices idx out of the chain of bucket b
func (t *Table) unlink(b uint64, prev, idx uint32) {
	next := t.arena[idx].next
	if prev == keeper {
		t.anchors[b] = next
	} else {
		t.arena[prev].next = next
	}
}

// alloc stores c in a free arena slot, reusing released slots first,
// and returns its index. The node is not linked into any chain yet.
func (t *Table) alloc(c course.Course, b uint64) uint32 {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.arena = append(t.arena, node{})
		idx = uint32(len(t.arena) - 1)
	}

	t.arena[idx] = node{course: c, tag: b, next: keeper}
	t.tracker.NodeAllocated(b)
	return idx
}

// release drops the course held in idx and hands the slot to the free list
func (t *Table) release(idx uint32) {
	b := t.arena[idx].tag
	t.arena[idx] = node{tag: EmptyTag, next: keeper}
	t.free = append(t.free, idx)
	t.tracker.NodeReleased(b)
}

// chainLen counts the nodes hanging off bucket b
func (t *Table) chainLen(b uint64) (n int) {
	for idx := t.anchors[b]; idx != keeper; idx = t.arena[idx].next {
		n++
	}
	return n
}

// isEmpty returns true if bucket b has no chain
func (t *Table) isEmpty(b uint64) bool {
	return t.anchors[b] == keeper
}
