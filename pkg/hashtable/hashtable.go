package hashtable

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
	bloom "github.com/bits-and-blooms/bloom/v3"
	"github.com/go-logr/logr"

	"github.com/optable/courseplanner/internal/hash"
	"github.com/optable/courseplanner/pkg/course"
)

const (
	// DefaultSize is the bucket count used by NewDefault, a prime
	DefaultSize = 179
	// FalsePositive is the bloom filter false positive rate used
	// when WithBloomFilter is given a rate outside (0, 1)
	FalsePositive = 1e-3
)

var ErrInvalidSize = fmt.Errorf("hash table size must be between 1 and %d buckets", uint64(math.MaxUint32))

// Tracker is told about every chain node the table allocates and releases
type Tracker interface {
	NodeAllocated(bucket uint64)
	NodeReleased(bucket uint64)
}

type nopTracker struct{}

func (nopTracker) NodeAllocated(uint64) {}
func (nopTracker) NodeReleased(uint64)  {}

// Entry is the listing view of a stored course
type Entry struct {
	Number string
	Title  string
}

// Stats describes how courses are spread over the buckets
type Stats struct {
	Buckets      int
	UsedBuckets  int
	Entries      int
	LongestChain int
	LoadFactor   float64
}

// Table is a fixed size hash table of courses keyed by course number.
// Collisions are resolved by chaining: every bucket has an anchor that
// links to the first node of its chain, and the nodes live in an arena
// owned by the table. Arena slot 0 is the keeper which ends every chain.
// Table is not safe for concurrent use.
type Table struct {
	size    uint64
	hasher  hash.Hasher
	anchors []uint32
	arena   []node
	free    []uint32
	// buckets with a non empty chain, in ascending order
	used    *roaring.Bitmap
	filter  *bloom.BloomFilter
	tracker Tracker
	logger  logr.Logger
}

// Option configures optional parts of a Table
type Option func(*Table)

// WithBloomFilter puts a bloom filter sized for expected courses in front
// of Search, so lookups of numbers that were never inserted skip the
// chain walk. Removed numbers stay in the filter and fall through to it.
func WithBloomFilter(expected uint, fp float64) Option {
	if fp <= 0 || fp >= 1 {
		fp = FalsePositive
	}
	if expected == 0 {
		expected = 1
	}
	return func(t *Table) {
		t.filter = bloom.NewWithEstimates(expected, fp)
	}
}

// WithTracker reports node allocations and releases to tr
func WithTracker(tr Tracker) Option {
	return func(t *Table) {
		if tr != nil {
			t.tracker = tr
		}
	}
}

// WithLogger sets the logger used for trace level messages
func WithLogger(logger logr.Logger) Option {
	return func(t *Table) {
		t.logger = logger.WithName("hashtable")
	}
}

// New instantiates a Table with size buckets hashed by hasher.
// The bucket count never changes: there is no rehashing, so once the
// load factor goes past 1 chains grow linearly and lookups slow down
// with them. Size the table for the catalog up front.
func New(size uint64, hasher hash.Hasher, opts ...Option) (*Table, error) {
	if size == 0 || size > math.MaxUint32 {
		return nil, ErrInvalidSize
	}
	if hasher == nil {
		hasher = hash.NewCharSumHasher()
	}

	t := &Table{
		size:    size,
		hasher:  hasher,
		anchors: make([]uint32, size),
		// the keeper slot
		arena:   []node{{tag: EmptyTag, next: keeper}},
		used:    roaring.New(),
		tracker: nopTracker{},
		logger:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// NewDefault returns a Table of DefaultSize buckets using the
// character sum hash.
func NewDefault() *Table {
	t, _ := New(DefaultSize, hash.NewCharSumHasher())
	return t
}

// Bucket returns the bucket index number maps to
func (t *Table) Bucket(number string) uint64 {
	return t.hasher.Hash64([]byte(number)) % t.size
}

// Insert stores c under c.Number. If the number is already present its
// title and prerequisites are replaced, otherwise a node is appended
// to the end of the bucket's chain. Courses without a number are
// ignored: the empty number is what failed lookups return.
func (t *Table) Insert(c course.Course) {
	if c.IsZero() {
		t.logger.V(1).Info("ignoring course without a number", "title", c.Title)
		return
	}

	b := t.Bucket(c.Number)
	prev, idx := t.find(b, c.Number)
	if idx != keeper {
		t.arena[idx].course = c.Clone()
		t.logger.V(2).Info("updated course", "number", c.Number, "bucket", b)
		return
	}

	t.link(b, prev, t.alloc(c.Clone(), b))
	t.used.Add(uint32(b))
	if t.filter != nil {
		t.filter.AddString(c.Number)
	}
	t.logger.V(2).Info("inserted course", "number", c.Number, "bucket", b)
}

// Search returns the course stored under number. The boolean is false,
// and the course empty, when there is none.
func (t *Table) Search(number string) (course.Course, bool) {
	if t.filter != nil && !t.filter.TestString(number) {
		return course.Course{}, false
	}

	if _, idx := t.find(t.Bucket(number), number); idx != keeper {
		return t.arena[idx].course.Clone(), true
	}
	return course.Course{}, false
}

// Remove deletes the course stored under number and reports whether
// there was one. Removing an absent number does nothing.
func (t *Table) Remove(number string) bool {
	b := t.Bucket(number)
	prev, idx := t.find(b, number)
	if idx == keeper {
		return false
	}

	t.unlink(b, prev, idx)
	t.release(idx)
	if t.isEmpty(b) {
		t.used.Remove(uint32(b))
	}
	t.logger.V(2).Info("removed course", "number", number, "bucket", b)
	return true
}

// Each calls fn with every stored course, in bucket order and chain
// order within a bucket, until fn returns false.
func (t *Table) Each(fn func(course.Course) bool) {
	it := t.used.Iterator()
	for it.HasNext() {
		b := it.Next()
		for idx := t.anchors[b]; idx != keeper; idx = t.arena[idx].next {
			if !fn(t.arena[idx].course.Clone()) {
				return
			}
		}
	}
}

// Entries lists the number and title of every stored course in the
// order Each visits them. That order comes from the bucket layout:
// it is neither sorted nor insertion order.
func (t *Table) Entries() []Entry {
	var entries []Entry
	it := t.used.Iterator()
	for it.HasNext() {
		b := it.Next()
		for idx := t.anchors[b]; idx != keeper; idx = t.arena[idx].next {
			c := &t.arena[idx].course
			entries = append(entries, Entry{Number: c.Number, Title: c.Title})
		}
	}
	return entries
}

// Size counts the stored courses by walking every chain
func (t *Table) Size() int {
	n := 0
	for b := uint64(0); b < t.size; b++ {
		n += t.chainLen(b)
	}
	return n
}

// Len returns the number of buckets
func (t *Table) Len() uint64 {
	return t.size
}

// LoadFactor returns the ratio of stored courses to buckets
func (t *Table) LoadFactor() float64 {
	return float64(t.Size()) / float64(t.size)
}

// Stats walks the table and reports how full it is
func (t *Table) Stats() Stats {
	s := Stats{
		Buckets:     int(t.size),
		UsedBuckets: int(t.used.GetCardinality()),
	}

	it := t.used.Iterator()
	for it.HasNext() {
		n := t.chainLen(uint64(it.Next()))
		s.Entries += n
		if n > s.LongestChain {
			s.LongestChain = n
		}
	}
	s.LoadFactor = float64(s.Entries) / float64(t.size)

	return s
}

// Close releases every node of every chain. The table is empty
// afterwards and can be filled again.
func (t *Table) Close() {
	released := 0
	for b := uint64(0); b < t.size; b++ {
		idx := t.anchors[b]
		for idx != keeper {
			next := t.arena[idx].next
			t.release(idx)
			released++
			idx = next
		}
		t.anchors[b] = keeper
	}

	t.arena = t.arena[:1]
	t.free = t.free[:0]
	t.used.Clear()
	if t.filter != nil {
		t.filter.ClearAll()
	}
	t.logger.V(1).Info("released hash table", "nodes", released)
}
