package board

import "math/bits"

// Mask is a candidate bitmask: bit v-1 set means value v is possible.
// 32 bits cover the largest supported size (25).
type Mask uint32

// MaskOf returns the singleton mask for value v.
func MaskOf(v uint8) Mask { return Mask(1) << (v - 1) }

// Count returns the number of candidate values in the mask.
func (m Mask) Count() int { return bits.OnesCount32(uint32(m)) }

// Has reports whether value v is in the mask.
func (m Mask) Has(v uint8) bool { return m&MaskOf(v) != 0 }

// Lowest returns the smallest value in the mask; 0 for an empty mask.
func (m Mask) Lowest() uint8 {
	if m == 0 {
		return 0
	}
	return uint8(bits.TrailingZeros32(uint32(m))) + 1
}

// Next returns the smallest value in the mask strictly greater than v,
// or 0 when none remains. Next(m, 0) starts an ascending iteration.
func (m Mask) Next(v uint8) uint8 {
	rest := m &^ (Mask(1)<<v - 1)
	return rest.Lowest()
}
