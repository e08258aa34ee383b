// Package storage implements an inverted index segment for full-text search.
// It provides efficient storage and retrieval of term-document relationships
// using compressed posting lists and Roaring Bitmaps. The implementation
// supports serialization for persistence and includes optimizations for
// memory usage and query performance, enabling scalable search functionality.
//
// # File Format
//
// The segment file is a single codec byte followed by an optionally-compressed stream:
//
//	u8  codec                   (0 = none, 1 = zstd; selects the stream below)
//	-- everything past this point is inside the codec's stream --
//	u32 magic                   (0x007E8B11)
//	u8  version
//	RoaringBitmap  DocIDs        (segment-wide document membership)
//	u32 numTerms
//	for each term:
//	    u16 termLen; term bytes
//	    u32 len                 (CompressedPostingList.Len)
//	    u32 lastDocID
//	    u32 chunkCount
//	    u32 arenaLen
//	    chunkCount * (u32 initial, u32 offset)
//	    arenaLen bytes           (bit-packed blocks)
//	    u32 numFrequencies
//	    numFrequencies * (u32 docID, float32 freq)
//	    u8  hasFilter
//	    if hasFilter: bloom.BloomFilter wire format (self-delimiting)
//
// # Features
//
// - Compressed, chunk-directory-indexed posting lists per term (see CompressedPostingList).
// - Segment-wide document membership via Roaring Bitmaps.
// - A bloom filter per term, layered in front of posting list containment checks.
// - Optional whole-file zstd compression, selected by the leading codec byte.
//
// # TODOs
//
// - Add support for data integrity checks (e.g., checksums, hashing).
// - Explore using Tries or Finite State Transducers (FSTs) for term metadata storage to improve lookup efficiency.
// - Add benchmarks for indexing latency, memory usage, and query performance.
// - Support dynamic updates to sealed segments, including deletions and incremental additions.
package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"

	"fulltext/fetcher"
)

// Constants for segment format versioning.
const (
	magicNumber = 0x007E8B11 // Magic number to identify segment files
	version     = 1          // Current segment format version

	bloomFalsePositiveRate = 0.01
)

// DefaultCodec is used by WriteSegment when the caller doesn't care. ReadSegment needs
// no codec: Deserialize detects it from the leading byte.
const DefaultCodec = CodecZstd

// Segment represents a collection of terms and their posting lists.
// It provides an immutable snapshot of indexed documents, once sealed, supporting
// efficient term-based document lookups and frequency scoring.
type Segment struct {
	MagicNumber uint32
	Version     uint8
	DocIDs      *RoaringBitmap
	Terms       map[string]*TermMetadata

	pending map[string]*pendingTerm
	sealed  bool
}

// TermMetadata holds statistical and structural data for a specific term
// in the segment, including document frequencies and the compressed posting list.
type TermMetadata struct {
	TotalDocs   uint32                 // Total number of documents containing this term
	Postings    *CompressedPostingList // Compressed, immutable posting list
	Frequencies map[uint32]float32     // Term frequency per DocId
	Filter      *bloom.BloomFilter     // Negative-lookup accelerator in front of Postings.Contains
}

// Contains reports whether docID carries this term, consulting the bloom filter first to
// avoid a chunk-directory search on a likely-absent DocId.
func (t *TermMetadata) Contains(docID uint32) bool {
	if t.Filter != nil && !t.Filter.Test(docIDBytes(docID)) {
		return false
	}
	return t.Postings.Contains(docID)
}

// pendingTerm accumulates a term's postings while the segment is being built.
type pendingTerm struct {
	postings    *PostingList
	frequencies map[uint32]float32
}

func docIDBytes(docID uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], docID)
	return buf[:]
}

// NewSegment initializes a new, unsealed Segment.
func NewSegment() *Segment {
	return &Segment{
		MagicNumber: magicNumber,
		Version:     version,
		DocIDs:      NewRoaringBitmap(),
		Terms:       make(map[string]*TermMetadata),
		pending:     make(map[string]*pendingTerm),
	}
}

// TotalDocs returns the total number of documents in the segment.
func (s *Segment) TotalDocs() uint32 {
	return uint32(s.DocIDs.Cardinality())
}

// BulkIndex adds a batch of term postings to the segment. The segment must not be sealed.
func (s *Segment) BulkIndex(termPostings []fetcher.TermPosting) error {
	if s.sealed {
		return fmt.Errorf("cannot index into a sealed segment")
	}
	if len(termPostings) == 0 {
		return nil
	}

	for _, termPosting := range termPostings {
		if !s.DocIDs.Contains(termPosting.DocID) {
			s.DocIDs.Add(termPosting.DocID)
		}

		pending, exists := s.pending[termPosting.Term]
		if !exists {
			pending = &pendingTerm{
				postings:    &PostingList{},
				frequencies: make(map[uint32]float32),
			}
			s.pending[termPosting.Term] = pending
		}

		if !pending.postings.Contains(termPosting.DocID) {
			pending.postings.Insert(termPosting.DocID)
		}
		pending.frequencies[termPosting.DocID] = termPosting.TermFrequency
	}

	return nil
}

// Seal compresses every pending term's mutable posting list into an immutable
// CompressedPostingList and builds its bloom filter. Once sealed, BulkIndex refuses
// further writes and TermIterator/Contains become safe for concurrent readers.
func (s *Segment) Seal() error {
	if s.sealed {
		return nil
	}

	for term, pending := range s.pending {
		compressed := CompressPostingList(pending.postings)

		filter := bloom.NewWithEstimates(uint(max(compressed.Len(), 1)), bloomFalsePositiveRate)
		for _, docID := range compressed.Iter() {
			filter.Add(docIDBytes(docID))
		}

		s.Terms[term] = &TermMetadata{
			TotalDocs:   uint32(compressed.Len()),
			Postings:    compressed,
			Frequencies: pending.frequencies,
			Filter:      filter,
		}
	}

	s.pending = nil
	s.sealed = true
	return nil
}

// PrintInfo prints out detailed information about the Segment.
func (s *Segment) PrintInfo() {
	fmt.Printf("Segment Information\n\n")
	fmt.Printf("Magic Number   : 0x%X\n", s.MagicNumber)
	fmt.Printf("Version        : %d\n", s.Version)
	fmt.Printf("Sealed         : %v\n", s.sealed)
	fmt.Printf("Total Docs     : %d\n", s.DocIDs.Cardinality())
	fmt.Printf("Total Terms    : %d\n", len(s.Terms))

	fmt.Printf("\n%-25s | %-15s | %-12s | %-12s |\n", "Term", "Documents", "Chunks", "SizeBytes")
	fmt.Println(strings.Repeat("-", 70))

	var totalDocs, totalChunks, totalBytes int
	for term, metadata := range s.Terms {
		termDocs := int(metadata.TotalDocs)
		termChunks := len(metadata.Postings.chunks)
		termBytes := metadata.Postings.SizeBytes()

		totalDocs += termDocs
		totalBytes += termBytes
		totalChunks += termChunks

		fmt.Printf("%-25s | %-15d | %-12d | %-12d |\n", term, termDocs, termChunks, termBytes)
	}

	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("\n%-25s | %-15d | %-12d | %-12d\n", "Overall", totalDocs, totalChunks, totalBytes)
}

// Serialize writes the segment to the provided writer, compressing the stream (past the
// leading codec byte) according to codec.
func (s *Segment) Serialize(writer io.Writer, codec Codec) error {
	if !s.sealed {
		return fmt.Errorf("cannot serialize an unsealed segment")
	}
	if err := binary.Write(writer, binary.LittleEndian, uint8(codec)); err != nil {
		return fmt.Errorf("write codec byte: %w", err)
	}

	out, err := wrapWriter(writer, codec)
	if err != nil {
		return fmt.Errorf("wrap writer for codec %s: %w", codec, err)
	}

	if err := s.writeBody(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (s *Segment) writeBody(out io.Writer) error {
	if err := binary.Write(out, binary.LittleEndian, s.MagicNumber); err != nil {
		return err
	}
	if err := binary.Write(out, binary.LittleEndian, s.Version); err != nil {
		return err
	}
	if err := s.DocIDs.Serialize(out); err != nil {
		return fmt.Errorf("failed to serialize DocIDs bitmap: %w", err)
	}
	numTerms := uint32(len(s.Terms))
	if err := binary.Write(out, binary.LittleEndian, numTerms); err != nil {
		return err
	}
	for term, metadata := range s.Terms {
		if err := writeTerm(out, term, metadata); err != nil {
			return fmt.Errorf("term %q: %w", term, err)
		}
	}
	return nil
}

func writeTerm(w io.Writer, term string, metadata *TermMetadata) error {
	termLen := uint16(len(term))
	if err := binary.Write(w, binary.LittleEndian, termLen); err != nil {
		return err
	}
	if _, err := w.Write([]byte(term)); err != nil {
		return err
	}
	if err := metadata.Postings.serialize(w); err != nil {
		return fmt.Errorf("serialize postings: %w", err)
	}

	numFreqs := uint32(len(metadata.Frequencies))
	if err := binary.Write(w, binary.LittleEndian, numFreqs); err != nil {
		return err
	}
	for docID, freq := range metadata.Frequencies {
		if err := binary.Write(w, binary.LittleEndian, docID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, freq); err != nil {
			return err
		}
	}

	if metadata.Filter == nil {
		return binary.Write(w, binary.LittleEndian, uint8(0))
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(1)); err != nil {
		return err
	}
	_, err := metadata.Filter.WriteTo(w)
	return err
}

// Deserialize reads a segment from the provided reader, auto-detecting the codec from
// the leading byte.
func (s *Segment) Deserialize(reader io.Reader) error {
	var codec uint8
	if err := binary.Read(reader, binary.LittleEndian, &codec); err != nil {
		return fmt.Errorf("read codec byte: %w", err)
	}

	in, closeIn, err := wrapReader(reader, Codec(codec))
	if err != nil {
		return fmt.Errorf("wrap reader for codec %s: %w", Codec(codec), err)
	}
	defer closeIn()

	if err := binary.Read(in, binary.LittleEndian, &s.MagicNumber); err != nil {
		return err
	}
	if err := binary.Read(in, binary.LittleEndian, &s.Version); err != nil {
		return err
	}
	s.DocIDs = NewRoaringBitmap()
	if err := s.DocIDs.Deserialize(in); err != nil {
		return fmt.Errorf("failed to deserialize DocIDs bitmap: %w", err)
	}
	var numTerms uint32
	if err := binary.Read(in, binary.LittleEndian, &numTerms); err != nil {
		return err
	}

	s.Terms = make(map[string]*TermMetadata, numTerms)
	for i := 0; i < int(numTerms); i++ {
		term, metadata, err := readTerm(in)
		if err != nil {
			return fmt.Errorf("term %d: %w", i, err)
		}
		s.Terms[term] = metadata
	}

	s.pending = nil
	s.sealed = true
	return nil
}

func readTerm(r io.Reader) (string, *TermMetadata, error) {
	var termLen uint16
	if err := binary.Read(r, binary.LittleEndian, &termLen); err != nil {
		return "", nil, err
	}
	termBytes := make([]byte, termLen)
	if _, err := io.ReadFull(r, termBytes); err != nil {
		return "", nil, err
	}

	postings, err := deserializeCompressedPostingList(r)
	if err != nil {
		return "", nil, fmt.Errorf("deserialize postings: %w", err)
	}

	var numFreqs uint32
	if err := binary.Read(r, binary.LittleEndian, &numFreqs); err != nil {
		return "", nil, err
	}
	frequencies := make(map[uint32]float32, numFreqs)
	for i := uint32(0); i < numFreqs; i++ {
		var docID uint32
		var freq float32
		if err := binary.Read(r, binary.LittleEndian, &docID); err != nil {
			return "", nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &freq); err != nil {
			return "", nil, err
		}
		frequencies[docID] = freq
	}

	var hasFilter uint8
	if err := binary.Read(r, binary.LittleEndian, &hasFilter); err != nil {
		return "", nil, err
	}
	var filter *bloom.BloomFilter
	if hasFilter != 0 {
		filter = &bloom.BloomFilter{}
		if _, err := filter.ReadFrom(r); err != nil {
			return "", nil, fmt.Errorf("read bloom filter: %w", err)
		}
	}

	return string(termBytes), &TermMetadata{
		TotalDocs:   uint32(postings.Len()),
		Postings:    postings,
		Frequencies: frequencies,
		Filter:      filter,
	}, nil
}

// WriteSegment writes a sealed Segment to an io.Writer, typically a file, using DefaultCodec.
func (s *Segment) WriteSegment(writer io.Writer) error {
	if err := s.Serialize(writer, DefaultCodec); err != nil {
		return fmt.Errorf("failed to serialize segment: %w", err)
	}
	return nil
}

// ReadSegment reads a Segment from an io.Reader, typically a file.
func (s *Segment) ReadSegment(reader io.Reader) error {
	if err := s.Deserialize(reader); err != nil {
		return fmt.Errorf("failed to deserialize segment: %w", err)
	}
	return nil
}
