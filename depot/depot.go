// Package depot implements a thread-safe, reference-counted cache of
// deduplicated assets with deferred-deletion, byte-budget-bounded
// eviction and at-most-one concurrent build per key (§4.C).
//
// This is deliberately not github.com/hashicorp/golang-lru: that package
// evicts by access recency on every Get, whereas this cache only ever
// evicts entries nobody currently holds a strong reference to, and only
// once their combined size crosses a configured budget. The two have
// different enough eviction semantics that reusing an LRU package here
// would mean fighting its API rather than using it.
package depot

import (
	"container/list"
	"sync"

	"github.com/cesiumgo/terrain/internal/logger"
)

// Key identifies a cached asset. Any comparable value works, the same
// way Go map keys do; callers typically use a string fingerprint.
type Key interface{}

// Factory builds the asset behind a key the first time it is
// requested. It must not be called while the depot's mutex is held —
// GetOrCreate releases the mutex before invoking it, so a factory is
// free to call GetOrCreate itself, for the same depot, on a different
// key (§4.C step 2).
type Factory func(key Key) (value interface{}, sizeBytes int64, err error)

// entry is one cache slot. All fields are guarded by the owning Depot's
// mutex; there is no per-entry lock (§5: "a single mutex serializes
// every map and deletion-list mutation").
type entry struct {
	key  Key
	done chan struct{} // closed once the factory result is ready

	value     interface{}
	sizeBytes int64
	err       error

	strong int32
	weak   int32

	listElem *list.Element // non-nil iff queued for deletion
}

// Depot is the shared cache. The zero value is not usable; construct
// one with New.
type Depot struct {
	mu      sync.Mutex
	factory Factory

	limitBytes int64

	byKey     map[Key]*entry
	byPointer map[*entry]*entry

	deletionList  *list.List
	deletionBytes int64

	liveCount int // number of entries with strong > 0; mirrors the self-keep-alive invariant (§9), made redundant by Go's GC but kept so the invariant in §8 stays directly testable.
}

// DefaultInactiveAssetSizeLimitBytes is the configuration default named
// in §6.
const DefaultInactiveAssetSizeLimitBytes = 16 * 1024 * 1024

// New constructs a Depot with the given factory and eviction budget. A
// limitBytes of zero causes every unreferenced asset to be evicted
// immediately (§6).
func New(factory Factory, limitBytes int64) *Depot {

	return &Depot{
		factory:      factory,
		limitBytes:   limitBytes,
		byKey:        map[Key]*entry{},
		byPointer:    map[*entry]*entry{},
		deletionList: list.New(),
	}
}

// Asset is a strong, refcounted handle on a cached value (§4.C,
// "IntrusivePointer"). Release must be called exactly once per Asset
// returned to the caller; further copies should go through Retain.
type Asset struct {
	depot *Depot
	entry *entry
}

// Value returns the underlying cached value.
func (a *Asset) Value() interface{} { return a.entry.value }

// SizeBytes returns the value's reported size.
func (a *Asset) SizeBytes() int64 { return a.entry.sizeBytes }

// Retain returns a new strong handle to the same entry, incrementing its
// strong count.
func (a *Asset) Retain() *Asset {

	a.depot.mu.Lock()
	a.depot.retainLocked(a.entry)
	a.depot.mu.Unlock()
	return &Asset{depot: a.depot, entry: a.entry}
}

// Release drops this handle's strong reference. Once the last strong
// reference to an entry is released, the entry becomes a deletion
// candidate (§4.C "mark_deletion_candidate").
func (a *Asset) Release() {

	a.depot.mu.Lock()
	a.depot.releaseLocked(a.entry)
	a.depot.mu.Unlock()
}

func (d *Depot) retainLocked(e *entry) {

	e.strong++
	if e.strong == 1 {
		d.unmarkDeletionCandidateLocked(e)
	}
}

func (d *Depot) releaseLocked(e *entry) {

	e.strong--
	if e.strong == 0 {
		d.markDeletionCandidateLocked(e)
	}
}

// GetOrCreate returns the asset for key, building it via the factory on
// first request and deduplicating concurrent requests for the same key
// (§4.C "get_or_create"). The returned Asset already holds one strong
// reference; the caller owns it and must Release it.
func (d *Depot) GetOrCreate(key Key) (*Asset, error) {

	d.mu.Lock()
	if e, ok := d.byKey[key]; ok {
		d.mu.Unlock()
		logger.Default.Debug("depot: waiting on in-flight build for key %v", key)
		<-e.done
		if e.err != nil {
			return nil, e.err
		}
		d.mu.Lock()
		d.retainLocked(e)
		d.mu.Unlock()
		return &Asset{depot: d, entry: e}, nil
	}

	e := &entry{key: key, done: make(chan struct{})}
	d.byKey[key] = e
	d.mu.Unlock()

	value, size, err := d.factory(key)

	d.mu.Lock()
	e.value, e.sizeBytes, e.err = value, size, err
	if err == nil {
		d.byPointer[e] = e
		d.retainLocked(e)
	}
	close(e.done)
	d.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &Asset{depot: d, entry: e}, nil
}

// markDeletionCandidateLocked appends e to the deletion list tail and
// drains from the head until total_deletion_bytes fits the configured
// budget (§4.C).
func (d *Depot) markDeletionCandidateLocked(e *entry) {

	e.listElem = d.deletionList.PushBack(e)
	d.deletionBytes += e.sizeBytes
	d.liveCount--

	for d.deletionBytes > d.limitBytes && d.deletionList.Len() > 0 {
		front := d.deletionList.Front()
		victim := front.Value.(*entry)
		d.deletionList.Remove(front)
		d.deletionBytes -= victim.sizeBytes
		delete(d.byKey, victim.key)
		delete(d.byPointer, victim)
		logger.Default.Warn("depot: evicted key %v (%d bytes) over budget", victim.key, victim.sizeBytes)
	}
}

// unmarkDeletionCandidateLocked removes e from the deletion list, if
// present, reinstating it as live (§4.C).
func (d *Depot) unmarkDeletionCandidateLocked(e *entry) {

	if e.listElem == nil {
		d.liveCount++
		return
	}
	d.deletionList.Remove(e.listElem)
	d.deletionBytes -= e.sizeBytes
	e.listElem = nil
	d.liveCount++
}

// Stats is a snapshot of the depot's bookkeeping, useful for metrics
// and tests.
type Stats struct {
	EntryCount     int
	DeletionCount  int
	DeletionBytes  int64
	LiveAssetCount int
}

// Stats returns a consistent snapshot of the depot's current state.
func (d *Depot) Stats() Stats {

	d.mu.Lock()
	defer d.mu.Unlock()
	return Stats{
		EntryCount:     len(d.byKey),
		DeletionCount:  d.deletionList.Len(),
		DeletionBytes:  d.deletionBytes,
		LiveAssetCount: d.liveCount,
	}
}

// HasLiveAssets reports whether any cached asset currently has a strong
// reference outstanding — the Go-GC-friendly stand-in for the
// self-keep-alive invariant of §9 (there is no destructor race to guard
// against here: Go keeps the Depot reachable for as long as any Asset
// value points back to it).
func (d *Depot) HasLiveAssets() bool {

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.liveCount > 0
}
