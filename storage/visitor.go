package storage

import "fulltext/bitpack"

// CompressedPostingVisitor is a stateful cursor over a CompressedPostingList. It
// accepts a stream of probes that must be strictly increasing and answers containment
// in amortized O(1) per probe within a block, by caching the last decoded block and
// only re-decoding when a probe advances past it. This models the standard inverted
// index intersection driver, which walks several posting lists with a shared,
// monotonically advancing cursor.
//
// A CompressedPostingVisitor is single-owner: it holds mutable scratch state, so each
// concurrent reader must construct its own visitor over the (read-only, freely shared)
// CompressedPostingList.
type CompressedPostingVisitor struct {
	postings  *CompressedPostingList
	scratch   [bitpack.BlockLen]uint32
	cached    int // index of the chunk currently decoded into scratch; valid only if hasCached
	hasCached bool
	debugState
}

// NewVisitor creates a fresh visitor over postings. postings must outlive the visitor.
func NewVisitor(postings *CompressedPostingList) *CompressedPostingVisitor {
	return &CompressedPostingVisitor{postings: postings}
}

// Contains reports whether probe is present in the underlying posting list. probe must be
// strictly greater than the value passed to the previous call on this visitor; in
// debug builds this precondition is asserted, in release builds violating it yields
// unspecified results.
func (v *CompressedPostingVisitor) Contains(probe uint32) bool {
	v.assertMonotonic(probe)

	if !v.postings.inRange(probe) {
		return false
	}

	if v.hasCached {
		last := v.scratch[bitpack.BlockLen-1]
		switch {
		case probe < last:
			return searchBlock(v.scratch[:], probe)
		case probe == last:
			return true
		}
		// probe > last: fall through to the directory search below.
	}

	start := 0
	if v.hasCached {
		start = v.cached
	}
	idx, ok := v.postings.findChunk(probe, start)
	if !ok {
		return false
	}
	if v.postings.chunks[idx].Initial == probe {
		return true
	}

	v.postings.decompressChunk(idx, v.scratch[:])
	v.cached = idx
	v.hasCached = true
	return searchBlock(v.scratch[:], probe)
}
