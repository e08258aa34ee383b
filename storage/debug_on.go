//go:build debug

package storage

import (
	"fmt"

	"fulltext/bitpack"
)

// debugState carries the monotonicity witness used to catch a visitor probed
// out of order. It is only present in debug builds (see spec §7: violating the
// monotonicity precondition is a programming error, detected in checked builds and
// undefined behavior otherwise).
type debugState struct {
	lastProbed    uint32
	hasLastProbed bool
}

func (v *CompressedPostingVisitor) assertMonotonic(probe uint32) {
	if v.hasLastProbed && probe <= v.lastProbed {
		panic(fmt.Sprintf("storage: visitor probed out of order: %d after %d", probe, v.lastProbed))
	}
	v.lastProbed = probe
	v.hasLastProbed = true
}

// debugVerifyBlock decompresses encoded and compares it element-wise against block,
// panicking on mismatch. It indicates a codec bug and is a debug-mode assertion only;
// release builds skip the round trip entirely.
func debugVerifyBlock(initial uint32, block []uint32, encoded []byte, width uint8) {
	var decoded [bitpack.BlockLen]uint32
	bitpack.DecompressSorted(initial, encoded, decoded[:], width)
	for i, want := range block {
		if decoded[i] != want {
			panic(fmt.Sprintf("storage: codec round-trip mismatch at %d: want %d got %d", i, want, decoded[i]))
		}
	}
}
