// Package storage provides efficient data structures and algorithms for managing
// term-document relationships in an inverted index. It is designed for use in
// search engines and inverted index implementations.
//
// # Overview
//
// The storage package combines several key components to enable efficient
// document retrieval and indexing. Each term's postings are held in one of two
// representations: a mutable PostingList while a segment is being built, and an
// immutable CompressedPostingList once the segment is sealed. The segment as a whole
// additionally tracks which document IDs it contains at all via a RoaringBitmap,
// which is a different access pattern (arbitrary membership, incremental updates)
// from a single term's sorted, append-only postings.
//
// # Features
//
//   - **Mutable posting lists**: PostingList accumulates sorted, deduplicated DocIds
//     while a segment is being built.
//   - **Compressed posting lists**: CompressedPostingList bit-packs a PostingList into
//     128-element blocks at the minimum bit-width each block needs, with a chunk
//     directory enabling O(log C) block lookup without touching the packed payload.
//   - **Visitor**: CompressedPostingVisitor amortizes block decode across a stream of
//     strictly increasing probes, the access pattern of conjunctive query merges.
//   - **Bloom pre-filter**: an optional per-term bloom.BloomFilter short-circuits
//     negative lookups before a chunk directory search is attempted.
//   - **Roaring Bitmaps**: ArrayContainer/BitmapContainer-backed RoaringBitmap tracks
//     the full set of DocIds in a segment, independent of any single term's postings.
//   - **Iterators**: BitmapIterator walks a RoaringBitmap; PostingListIterator walks a
//     term's CompressedPostingList alongside its term frequencies.
//   - **Serialization**: Segment.Serialize/Deserialize persist all of the above.
//
// # Posting list compression
//
// A PostingList is consumed by CompressPostingList into an immutable
// CompressedPostingList: the list is padded with copies of its last element until its
// length is a multiple of bitpack.BlockLen (128), then each block is bit-packed at the
// minimum width its deltas require (see package bitpack). A chunk directory records,
// for each block, its first DocId and its byte offset in the shared arena, sorted so
// that a binary search locates a candidate block without decoding anything. Padding
// never changes the final block's bit-width, because repeating the last element
// produces all-zero deltas.
//
// # Roaring Bitmaps
//
// The package uses Roaring Bitmaps for compact and high-performance representation of
// the full document-ID set of a segment, using the following container types:
//
//   - **ArrayContainer**: for sparse sets of integers, stores values as a sorted array
//     of uint16.
//   - **BitmapContainer**: for dense sets of integers, uses a word-addressed bitmap.
//
// # File Format
//
// The segment file format is organized into a header, a terms section, and (for each
// term) a compressed-postings section:
//
// ## File Header
//   - Codec (1 byte): 0 = raw, 1 = zstd-compressed body
//   - Magic Number (4 bytes): identifies the segment file format (0x007E8B11)
//   - Version (1 byte): segment format version
//   - DocIDs: serialized RoaringBitmap of every DocId in the segment
//   - Number of Terms (4 bytes)
//
// ## Terms Section
// For each term:
//   - Term Length (2 bytes) + term bytes
//   - Logical Length (4 bytes), Last DocID (4 bytes), Chunk Count (4 bytes), Arena
//     Length (4 bytes) — the four fields that make up a CompressedPostingList
//   - Chunk directory: Chunk Count * (initial uint32, offset uint32)
//   - Arena bytes: the bit-packed blocks, back to back
//   - Number of Frequencies (4 bytes), then that many (DocID uint32, frequency
//     float32) pairs
//   - Has Filter (1 byte); if set, the bloom filter's own self-delimiting wire form
//     (bloom.BloomFilter.WriteTo/ReadFrom)
package storage
