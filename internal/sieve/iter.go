package sieve

import "iter"

// Iter produces the primes up to a fixed bound one at a time.
//
// The composite-mark table is allocated once by NewIter and shared by every
// call to Next, so stopping part way and calling Next later resumes exactly
// where the traversal left off. An Iter must not be advanced from more than
// one goroutine at a time; separate instances are independent.
type Iter struct {
	max   int
	limit int
	table markTable
	// next is the next index to inspect. It is unsigned so that the
	// position one past math.MaxInt is representable.
	next uint
	done bool
}

// NewIter returns a producer for the primes p with 2 <= p <= max.
func NewIter(max int) *Iter {
	return &Iter{
		max:   max,
		limit: ISqrt(max),
		table: newMarkTable(max),
		next:  2,
		done:  max < 0,
	}
}

// Primes returns a sequence over the primes <= max. Each range loop over the
// result runs its own producer.
func Primes(max int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for p := range NewIter(max).All() {
			if !yield(p) {
				return
			}
		}
	}
}

// Max returns the inclusive bound the producer was built with.
func (it *Iter) Max() int { return it.max }

// Exhausted reports whether Next has already signalled the end of the sequence.
func (it *Iter) Exhausted() bool { return it.done }

// Next returns the next prime in ascending order and true, or 0 and false
// once every prime <= Max has been returned. After the first false result
// every later call also returns false.
func (it *Iter) Next() (int, bool) {
	if it.done {
		return 0, false
	}

	end := uint(it.max)
	c := it.next
	for c <= end && it.table.marked(int(c)) {
		c++
	}
	if c > end {
		it.next = c
		it.done = true
		it.table = nil
		return 0, false
	}

	p := int(c)
	if p <= it.limit {
		it.table.crossOff(p, it.max)
	}
	it.next = c + 1
	return p, true
}

// Collect drains the producer and returns the primes it had not yet
// produced. On a fresh producer the result equals Sieve(Max()).
func (it *Iter) Collect() []int {
	var primes []int
	if it.next <= 2 {
		primes = make([]int, 0, primeCountBound(it.max))
	} else {
		primes = []int{}
	}
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		primes = append(primes, p)
	}
	return primes
}

// All returns a sequence over the remaining primes. Breaking out of the
// range loop leaves the producer positioned at the following prime.
func (it *Iter) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			if !yield(p) {
				return
			}
		}
	}
}
