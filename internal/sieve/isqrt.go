package sieve

import "math/bits"

// ISqrt returns the floor of the square root of n, so that
// r*r <= n < (r+1)*(r+1). Negative n yields 0.
func ISqrt(n int) int {
	if n < 2 {
		if n < 0 {
			return 0
		}
		return n
	}
	u := uint64(n)
	// 2^ceil(bitlen/2) is always >= sqrt(n), so Newton descends monotonically.
	x := uint64(1) << ((bits.Len64(u) + 1) / 2)
	for {
		y := (x + u/x) / 2
		if y >= x {
			return int(x)
		}
		x = y
	}
}
