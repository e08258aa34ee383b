package storage

import (
	"math/rand"
	"sort"
	"testing"
)

func TestVisitorMatchesContainsOnIncreasingProbes(t *testing.T) {
	rng := rand.New(rand.NewSource(123))
	for iter := 0; iter < 100; iter++ {
		n := rng.Intn(1500)
		seen := map[uint32]bool{}
		for len(seen) < n {
			seen[uint32(rng.Intn(200_000))] = true
		}
		values := make([]uint32, 0, n)
		for v := range seen {
			values = append(values, v)
		}
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

		c := compressList(values)
		visitor := NewVisitor(c)

		probes := make([]uint32, 0, 80)
		probeSet := map[uint32]bool{}
		for len(probes) < 80 {
			v := uint32(rng.Intn(200_000))
			if probeSet[v] {
				continue
			}
			probeSet[v] = true
			probes = append(probes, v)
		}
		sort.Slice(probes, func(i, j int) bool { return probes[i] < probes[j] })

		for _, v := range probes {
			want := seen[v]
			if got := visitor.Contains(v); got != want {
				t.Fatalf("iter %d: visitor.Contains(%d) = %v, want %v", iter, v, got, want)
			}
			if got := c.Contains(v); got != want {
				t.Fatalf("iter %d: list.Contains(%d) = %v, want %v", iter, v, got, want)
			}
		}
	}
}

func TestVisitorEmptyList(t *testing.T) {
	c := compressList(nil)
	visitor := NewVisitor(c)
	if visitor.Contains(0) || visitor.Contains(100) {
		t.Fatalf("visitor over empty list must never report containment")
	}
}

func TestVisitorStaysInBlockWithoutRedecoding(t *testing.T) {
	values := make([]uint32, 256)
	for i := range values {
		values[i] = uint32(i * 2)
	}
	c := compressList(values)
	visitor := NewVisitor(c)

	if !visitor.Contains(2) {
		t.Fatalf("expected 2 to be contained")
	}
	if !visitor.hasCached {
		t.Fatalf("expected visitor to have cached a block after a non-initial hit")
	}
	firstCached := visitor.cached
	if !visitor.Contains(4) || !visitor.Contains(6) {
		t.Fatalf("expected subsequent in-block probes to succeed")
	}
	if visitor.cached != firstCached {
		t.Fatalf("expected cached chunk index to stay %d, got %d", firstCached, visitor.cached)
	}
}
