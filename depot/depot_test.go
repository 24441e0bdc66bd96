package depot

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetOrCreateDedupUnderRace(t *testing.T) {

	var factoryCalls int32
	d := New(func(key Key) (interface{}, int64, error) {
		atomic.AddInt32(&factoryCalls, 1)
		time.Sleep(20 * time.Millisecond)
		return "built:" + key.(string), 40, nil
	}, DefaultInactiveAssetSizeLimitBytes)

	const goroutines = 8
	results := make([]*Asset, goroutines)
	errs := make([]error, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			asset, err := d.GetOrCreate("k")
			results[i], errs[i] = asset, err
		}(i)
	}
	wg.Wait()

	if calls := atomic.LoadInt32(&factoryCalls); calls != 1 {
		t.Fatalf("factory called %d times, want 1", calls)
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d got error: %v", i, err)
		}
	}
	first := results[0]
	for i, asset := range results {
		if asset.entry != first.entry {
			t.Fatalf("caller %d resolved to a different entry than caller 0", i)
		}
	}
	for _, asset := range results {
		asset.Release()
	}
}

func TestEvictionOrder(t *testing.T) {

	d := New(func(key Key) (interface{}, int64, error) {
		return key, 40, nil
	}, 100)

	a, _ := d.GetOrCreate("A")
	b, _ := d.GetOrCreate("B")
	c, _ := d.GetOrCreate("C")
	dd, _ := d.GetOrCreate("D")

	a.Release()
	b.Release()
	c.Release()
	dd.Release()

	stats := d.Stats()
	if stats.EntryCount != 2 {
		t.Fatalf("after inserting A,B,C,D over a 100-byte budget, entry count = %d, want 2 (C,D)", stats.EntryCount)
	}
	if _, ok := d.byKey["C"]; !ok {
		t.Fatal("expected C to survive eviction")
	}
	if _, ok := d.byKey["D"]; !ok {
		t.Fatal("expected D to survive eviction")
	}

	// Touching C moves it to the back of the deletion queue, behind D.
	// Inserting and releasing E pushes the budget over again, so the
	// front of the queue — now D, the one nobody re-touched — is what
	// gets evicted.
	c2, _ := d.GetOrCreate("C")
	c2.Release()

	e, _ := d.GetOrCreate("E")
	e.Release()

	if _, ok := d.byKey["D"]; ok {
		t.Fatal("expected D to be evicted: it was the oldest untouched entry in the deletion queue")
	}
	if _, ok := d.byKey["C"]; !ok {
		t.Fatal("expected C to survive: it was re-touched after B/A were evicted")
	}
	if _, ok := d.byKey["E"]; !ok {
		t.Fatal("expected E, the most recent insert, to survive")
	}
}

func TestHasLiveAssetsReflectsStrongReferences(t *testing.T) {

	d := New(func(key Key) (interface{}, int64, error) {
		return key, 10, nil
	}, 1000)

	if d.HasLiveAssets() {
		t.Fatal("empty depot should report no live assets")
	}

	a, _ := d.GetOrCreate("only")
	if !d.HasLiveAssets() {
		t.Fatal("depot should report a live asset while a strong reference is held")
	}

	a.Release()
	if d.HasLiveAssets() {
		t.Fatal("depot should report no live assets once the only reference is released")
	}
}

func TestFactoryErrorIsCachedAndReturnedToEveryWaiter(t *testing.T) {

	var calls int32
	d := New(func(key Key) (interface{}, int64, error) {
		atomic.AddInt32(&calls, 1)
		return nil, 0, errBoom
	}, 1000)

	_, err1 := d.GetOrCreate("bad")
	_, err2 := d.GetOrCreate("bad")
	if err1 != errBoom || err2 != errBoom {
		t.Fatalf("errors = %v, %v, want %v twice", err1, err2, errBoom)
	}
	if calls != 1 {
		t.Fatalf("factory called %d times for a cached failure, want 1", calls)
	}
}

var errBoom = simpleError("boom")

type simpleError string

func (e simpleError) Error() string { return string(e) }
