package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"fulltext/bitpack"
)

// CompressedPostingChunk is a chunk-directory entry: initial is the first (smallest)
// DocId stored in the block, offset is the byte offset into the shared arena where the
// block's bit-packed payload begins.
type CompressedPostingChunk struct {
	Initial uint32
	Offset  uint32
}

// CompressedPostingList is an immutable, bit-packed posting list built once from a
// PostingList. It supports single-shot containment checks and in-order iteration; for
// a stream of strictly increasing probes, use a CompressedPostingVisitor instead, which
// amortizes block decode across probes that land in the same block.
type CompressedPostingList struct {
	len       int
	lastDocID uint32
	arena     []byte
	chunks    []CompressedPostingChunk
}

// CompressPostingList builds a CompressedPostingList from a mutable PostingList. The
// mutable list is not modified; construction does not assume it is already sorted.
func CompressPostingList(p *PostingList) *CompressedPostingList {
	if p.Len() == 0 {
		return &CompressedPostingList{}
	}

	list := p.Iter()
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	length := len(list)
	lastDocID := list[length-1]

	for len(list)%bitpack.BlockLen != 0 {
		list = append(list, lastDocID)
	}

	numChunks := len(list) / bitpack.BlockLen
	chunks := make([]CompressedPostingChunk, numChunks)
	widths := make([]uint8, numChunks)
	var arenaLen uint32
	for i := 0; i < numChunks; i++ {
		block := list[i*bitpack.BlockLen : (i+1)*bitpack.BlockLen]
		initial := block[0]
		width := bitpack.NumBitsSorted(initial, block)
		widths[i] = width
		chunks[i] = CompressedPostingChunk{Initial: initial, Offset: arenaLen}
		arenaLen += uint32(bitpack.CompressedBlockSize(width))
	}

	arena := make([]byte, arenaLen)
	for i := 0; i < numChunks; i++ {
		block := list[i*bitpack.BlockLen : (i+1)*bitpack.BlockLen]
		size := chunkSize(chunks, arena, i)
		dst := arena[chunks[i].Offset : int(chunks[i].Offset)+size]
		bitpack.CompressSorted(chunks[i].Initial, block, dst, widths[i])
		debugVerifyBlock(chunks[i].Initial, block, dst, widths[i])
	}

	return &CompressedPostingList{
		len:       length,
		lastDocID: lastDocID,
		arena:     arena,
		chunks:    chunks,
	}
}

// chunkSize returns the number of bytes the block at chunkIndex occupies in arena,
// derived from the gap to the next chunk's offset (or the arena end for the last
// chunk). The codec's size is a deterministic function of bit-width, so this is
// invertible: bitWidth = size*8/bitpack.BlockLen.
func chunkSize(chunks []CompressedPostingChunk, arena []byte, chunkIndex int) int {
	if chunkIndex+1 < len(chunks) {
		return int(chunks[chunkIndex+1].Offset - chunks[chunkIndex].Offset)
	}
	return len(arena) - int(chunks[chunkIndex].Offset)
}

func chunkWidth(chunks []CompressedPostingChunk, arena []byte, chunkIndex int) uint8 {
	size := chunkSize(chunks, arena, chunkIndex)
	return uint8((size * 8) / bitpack.BlockLen)
}

// Len returns the logical number of DocIds stored, excluding padding.
func (c *CompressedPostingList) Len() int {
	return c.len
}

// LastDocID returns the maximum DocId in the list. Only meaningful when Len() > 0.
func (c *CompressedPostingList) LastDocID() uint32 {
	return c.lastDocID
}

// SizeBytes returns the approximate heap bytes occupied, for memory accounting by the
// enclosing segment.
func (c *CompressedPostingList) SizeBytes() int {
	const chunkEntrySize = 8 // uint32 + uint32
	return len(c.arena) + len(c.chunks)*chunkEntrySize + 16
}

// inRange reports whether v could possibly be present, via the cheap global min/max gate.
func (c *CompressedPostingList) inRange(v uint32) bool {
	return len(c.chunks) > 0 && v >= c.chunks[0].Initial && v <= c.lastDocID
}

// findChunk returns the greatest chunk index i, at or after start, with
// chunks[i].Initial <= v, or false if none exists in that suffix.
func (c *CompressedPostingList) findChunk(v uint32, start int) (int, bool) {
	suffix := c.chunks[start:]
	idx := sort.Search(len(suffix), func(i int) bool { return suffix[i].Initial >= v })
	if idx < len(suffix) && suffix[idx].Initial == v {
		return start + idx, true
	}
	if idx > 0 {
		return start + idx - 1, true
	}
	return 0, false
}

func (c *CompressedPostingList) decompressChunk(chunkIndex int, dst []uint32) {
	chunk := c.chunks[chunkIndex]
	size := chunkSize(c.chunks, c.arena, chunkIndex)
	width := chunkWidth(c.chunks, c.arena, chunkIndex)
	src := c.arena[chunk.Offset : int(chunk.Offset)+size]
	bitpack.DecompressSorted(chunk.Initial, src, dst, width)
}

// Contains reports whether v is present. It performs a chunk-directory binary search
// followed by, at most, a single block decode.
func (c *CompressedPostingList) Contains(v uint32) bool {
	if !c.inRange(v) {
		return false
	}
	idx, ok := c.findChunk(v, 0)
	if !ok {
		return false
	}
	if c.chunks[idx].Initial == v {
		return true
	}
	var block [bitpack.BlockLen]uint32
	c.decompressChunk(idx, block[:])
	return searchBlock(block[:], v)
}

// searchBlock reports whether v is present in a sorted, fixed-length decoded block.
func searchBlock(block []uint32, v uint32) bool {
	i := sort.Search(len(block), func(i int) bool { return block[i] >= v })
	return i < len(block) && block[i] == v
}

// serialize writes the chunk directory and arena in the on-disk layout documented on
// Segment: len, lastDocID, chunkCount, arenaLen, then the chunk directory, then the arena.
func (c *CompressedPostingList) serialize(w io.Writer) error {
	for _, v := range []uint32{uint32(c.len), c.lastDocID, uint32(len(c.chunks)), uint32(len(c.arena))} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write posting list header: %w", err)
		}
	}
	for _, chunk := range c.chunks {
		if err := binary.Write(w, binary.LittleEndian, chunk.Initial); err != nil {
			return fmt.Errorf("write chunk initial: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, chunk.Offset); err != nil {
			return fmt.Errorf("write chunk offset: %w", err)
		}
	}
	if _, err := w.Write(c.arena); err != nil {
		return fmt.Errorf("write arena: %w", err)
	}
	return nil
}

// deserializeCompressedPostingList reads back a CompressedPostingList written by serialize.
func deserializeCompressedPostingList(r io.Reader) (*CompressedPostingList, error) {
	var length, chunkCount, arenaLen uint32
	c := &CompressedPostingList{}
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("read posting list length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &c.lastDocID); err != nil {
		return nil, fmt.Errorf("read posting list lastDocID: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &chunkCount); err != nil {
		return nil, fmt.Errorf("read posting list chunkCount: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &arenaLen); err != nil {
		return nil, fmt.Errorf("read posting list arenaLen: %w", err)
	}
	c.len = int(length)

	c.chunks = make([]CompressedPostingChunk, chunkCount)
	for i := range c.chunks {
		if err := binary.Read(r, binary.LittleEndian, &c.chunks[i].Initial); err != nil {
			return nil, fmt.Errorf("read chunk initial: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &c.chunks[i].Offset); err != nil {
			return nil, fmt.Errorf("read chunk offset: %w", err)
		}
	}

	c.arena = make([]byte, arenaLen)
	if _, err := io.ReadFull(r, c.arena); err != nil {
		return nil, fmt.Errorf("read arena: %w", err)
	}
	return c, nil
}

// Iter decodes every chunk in order and returns exactly Len() DocIds.
func (c *CompressedPostingList) Iter() []uint32 {
	out := make([]uint32, 0, c.len)
	var block [bitpack.BlockLen]uint32
	for i := range c.chunks {
		c.decompressChunk(i, block[:])
		for _, v := range block {
			if len(out) == c.len {
				return out
			}
			out = append(out, v)
		}
	}
	return out
}
