package storage

import "sort"

// PostingList is a mutable, strictly increasing, duplicate-free sequence of document
// IDs. It accumulates DocIds while a segment is being built and is consumed by
// CompressPostingList to produce an immutable CompressedPostingList.
type PostingList struct {
	list []uint32
}

// NewPostingList creates a posting list containing the single DocId d.
func NewPostingList(d uint32) *PostingList {
	return &PostingList{list: []uint32{d}}
}

// Size returns the approximate heap bytes occupied by the list, for memory accounting
// by the enclosing segment.
func (p *PostingList) Size() int {
	const elemSize = 4 // uint32
	return cap(p.list)*elemSize + 24
}

// Insert adds d to the list, preserving sort order. If d is already present this is a
// no-op. Insertion is O(n) on a shift: documents typically arrive in near-sorted order,
// so in practice this degenerates to an append, and the build-time cost is paid once in
// exchange for a dense, binary-searchable read path.
func (p *PostingList) Insert(d uint32) {
	idx := sort.Search(len(p.list), func(i int) bool { return p.list[i] >= d })
	if idx < len(p.list) && p.list[idx] == d {
		return
	}
	p.list = append(p.list, 0)
	copy(p.list[idx+1:], p.list[idx:])
	p.list[idx] = d
}

// Remove deletes d from the list if present, preserving sort order. No-op if absent.
func (p *PostingList) Remove(d uint32) {
	idx := sort.Search(len(p.list), func(i int) bool { return p.list[i] >= d })
	if idx < len(p.list) && p.list[idx] == d {
		p.list = append(p.list[:idx], p.list[idx+1:]...)
	}
}

// Len returns the number of DocIds currently in the list.
func (p *PostingList) Len() int {
	return len(p.list)
}

// Contains reports whether d is present, via binary search.
func (p *PostingList) Contains(d uint32) bool {
	idx := sort.Search(len(p.list), func(i int) bool { return p.list[i] >= d })
	return idx < len(p.list) && p.list[idx] == d
}

// Iter returns the DocIds in ascending order.
func (p *PostingList) Iter() []uint32 {
	out := make([]uint32, len(p.list))
	copy(out, p.list)
	return out
}
