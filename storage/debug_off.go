//go:build !debug

package storage

// debugState is empty in release builds: the monotonicity check below compiles away
// entirely rather than costing a branch per probe.
type debugState struct{}

func (v *CompressedPostingVisitor) assertMonotonic(uint32) {}

func debugVerifyBlock(initial uint32, block []uint32, encoded []byte, width uint8) {}
