package storage

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Codec identifies the whole-file compression applied to a serialized segment, written
// as the first byte of the stream.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecZstd
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	}
	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// wrapWriter returns an io.WriteCloser that applies the codec's compression, if any, to
// everything written to it. Callers must Close it to flush the compressor.
func wrapWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecNone:
		return nopWriteCloser{w}, nil
	case CodecZstd:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("unknown codec %d", codec)
	}
}

// wrapReader returns an io.Reader that decompresses according to codec. The returned
// closer, if non-nil, releases decoder resources and should be deferred by the caller.
func wrapReader(r io.Reader, codec Codec) (io.Reader, func(), error) {
	switch codec {
	case CodecNone:
		return r, func() {}, nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd reader: %w", err)
		}
		return dec, dec.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown codec %d", codec)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
