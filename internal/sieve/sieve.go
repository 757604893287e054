// Package sieve enumerates primes with the Sieve of Eratosthenes.
//
// Two surfaces share the same algorithm: Sieve returns every prime up to a
// bound in one call, and Iter produces them one at a time, keeping its
// composite-mark table between calls so a traversal can be paused and
// resumed.
package sieve

import "math"

// Sieve returns all primes p with 2 <= p <= max in ascending order.
// The result is empty (never nil) when max < 2.
func Sieve(max int) []int {
	if max < 2 {
		return []int{}
	}

	table := newMarkTable(max)
	limit := ISqrt(max)
	primes := make([]int, 0, primeCountBound(max))

	for p := 2; p <= max; p++ {
		if table.marked(p) {
			continue
		}
		primes = append(primes, p)
		if p <= limit {
			table.crossOff(p, max)
		}
		if p == max {
			// p++ would wrap at math.MaxInt.
			break
		}
	}
	return primes
}

// Count returns the number of primes <= max without materialising them.
func Count(max int) int {
	if max < 2 {
		return 0
	}

	table := newMarkTable(max)
	limit := ISqrt(max)
	count := 0

	for p := 2; p <= max; p++ {
		if table.marked(p) {
			continue
		}
		count++
		if p <= limit {
			table.crossOff(p, max)
		}
		if p == max {
			break
		}
	}
	return count
}

// maxCapacityHint caps the up-front allocation; larger results grow by append.
const maxCapacityHint = 1 << 24

// primeCountBound is an upper bound on pi(n) used as a capacity hint.
// pi(n) < 1.25506 n / ln n holds for n > 1.
func primeCountBound(n int) int {
	if n < 17 {
		return 6
	}
	bound := 1.25506 * float64(n) / math.Log(float64(n))
	if bound >= maxCapacityHint {
		return maxCapacityHint
	}
	return int(bound) + 1
}
