package ids

import (
	"sort"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewProducesValidULIDs(t *testing.T) {
	id := New()
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("expected a parseable ULID, got %q: %v", id, err)
	}
}

func TestNewIsSortableAndUnique(t *testing.T) {
	const n = 1000
	generated := make([]string, n)
	for i := range generated {
		generated[i] = New()
	}

	if !sort.StringsAreSorted(generated) {
		t.Fatal("expected generation order to be lexicographic order")
	}

	seen := make(map[string]struct{}, n)
	for _, id := range generated {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestNewIsSafeForConcurrentUse(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, goroutines*perGoroutine)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				id := New()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Fatalf("expected %d unique ids, got %d", goroutines*perGoroutine, len(seen))
	}
}
