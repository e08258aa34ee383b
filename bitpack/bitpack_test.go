package bitpack

import (
	"math/rand"
	"testing"
)

func sortedBlock(start, step uint32) []uint32 {
	block := make([]uint32, BlockLen)
	v := start
	for i := range block {
		block[i] = v
		v += step
	}
	return block
}

func TestNumBitsSortedZeroDelta(t *testing.T) {
	block := make([]uint32, BlockLen)
	for i := range block {
		block[i] = 30
	}
	if got := NumBitsSorted(30, block); got != 0 {
		t.Fatalf("expected 0 bits for constant block, got %d", got)
	}
	if size := CompressedBlockSize(0); size != 0 {
		t.Fatalf("expected 0 bytes at width 0, got %d", size)
	}
}

func TestRoundTripSingleWidth(t *testing.T) {
	block := sortedBlock(1000, 2)
	width := NumBitsSorted(1000, block)
	if width != 2 {
		t.Fatalf("expected width 2 for step-2 block, got %d", width)
	}
	size := CompressedBlockSize(width)
	dst := make([]byte, size)
	CompressSorted(1000, block, dst, width)

	decoded := make([]uint32, BlockLen)
	DecompressSorted(1000, dst, decoded, width)

	for i := range block {
		if decoded[i] != block[i] {
			t.Fatalf("mismatch at %d: want %d got %d", i, block[i], decoded[i])
		}
	}
}

func TestRoundTripFuzz(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 200; iter++ {
		initial := uint32(rng.Intn(1_000_000))
		block := make([]uint32, BlockLen)
		v := initial
		for i := range block {
			v += uint32(rng.Intn(1 << 12))
			block[i] = v
		}

		width := NumBitsSorted(initial, block)
		size := CompressedBlockSize(width)
		dst := make([]byte, size)
		CompressSorted(initial, block, dst, width)

		decoded := make([]uint32, BlockLen)
		DecompressSorted(initial, dst, decoded, width)

		for i := range block {
			if decoded[i] != block[i] {
				t.Fatalf("iter %d: mismatch at %d: want %d got %d", iter, i, block[i], decoded[i])
			}
		}
	}
}

func TestCompressedBlockSizeIsByteMultiple(t *testing.T) {
	for width := uint8(0); width <= 32; width++ {
		size := CompressedBlockSize(width)
		if size*8 != BlockLen*int(width) {
			t.Fatalf("width %d: size %d does not correspond to %d bits", width, size, BlockLen*int(width))
		}
	}
}
