package sieve

import (
	"slices"
	"testing"
)

func isPrimeNaive(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d < n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestSieveSmallBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		max  int
		want []int
	}{
		{-5, []int{}},
		{0, []int{}},
		{1, []int{}},
		{2, []int{2}},
		{3, []int{2, 3}},
		{4, []int{2, 3}},
		{20, []int{2, 3, 5, 7, 11, 13, 17, 19}},
	}

	for _, tc := range tests {
		got := Sieve(tc.max)
		if got == nil {
			t.Fatalf("Sieve(%d) returned nil", tc.max)
		}
		if !slices.Equal(got, tc.want) {
			t.Errorf("Sieve(%d): got %v want %v", tc.max, got, tc.want)
		}
	}
}

func TestSieve100(t *testing.T) {
	t.Parallel()
	primes := Sieve(100)
	if len(primes) != 25 {
		t.Fatalf("expected 25 primes, got %d", len(primes))
	}
	if primes[0] != 2 || primes[24] != 97 {
		t.Fatalf("unexpected bounds: first=%d last=%d", primes[0], primes[24])
	}
	if primes[22] != 83 || primes[23] != 89 {
		t.Fatalf("unexpected primes at 22/23: %d %d", primes[22], primes[23])
	}
}

func TestSieve1000(t *testing.T) {
	t.Parallel()
	primes := Sieve(1000)
	if len(primes) != 168 {
		t.Fatalf("expected 168 primes, got %d", len(primes))
	}
	if primes[0] != 2 || primes[167] != 997 {
		t.Fatalf("unexpected bounds: first=%d last=%d", primes[0], primes[167])
	}
}

func TestSieveKnownCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		max   int
		count int
	}{
		{10, 4},
		{10_000, 1229},
		{100_000, 9592},
		{1_000_000, 78498},
	}
	for _, tc := range tests {
		if got := len(Sieve(tc.max)); got != tc.count {
			t.Errorf("len(Sieve(%d)): got %d want %d", tc.max, got, tc.count)
		}
		if got := Count(tc.max); got != tc.count {
			t.Errorf("Count(%d): got %d want %d", tc.max, got, tc.count)
		}
	}
}

func TestSieveProperties(t *testing.T) {
	t.Parallel()

	const limit = 1500
	reference := Sieve(limit)
	naiveCount := make([]int, limit+1)
	for x := 2; x <= limit; x++ {
		naiveCount[x] = naiveCount[x-1]
		if isPrimeNaive(x) {
			naiveCount[x]++
		}
	}

	for n := 0; n <= limit; n++ {
		primes := Sieve(n)

		for i, p := range primes {
			if i > 0 && p <= primes[i-1] {
				t.Fatalf("Sieve(%d) not strictly increasing at %d: %v", n, i, primes[i-1:i+1])
			}
			if p < 2 || p > n || !isPrimeNaive(p) {
				t.Fatalf("Sieve(%d) emitted invalid value %d", n, p)
			}
		}

		if want := naiveCount[n]; len(primes) != want {
			t.Fatalf("Sieve(%d) incomplete: got %d primes want %d", n, len(primes), want)
		}

		if !slices.Equal(primes, reference[:len(primes)]) {
			t.Fatalf("Sieve(%d) is not a prefix of Sieve(%d)", n, limit)
		}

		if got := NewIter(n).Collect(); !slices.Equal(got, primes) {
			t.Fatalf("NewIter(%d).Collect() = %v, want %v", n, got, primes)
		}

		if got := Count(n); got != len(primes) {
			t.Fatalf("Count(%d): got %d want %d", n, got, len(primes))
		}
	}
}

func TestPrimeCountBound(t *testing.T) {
	t.Parallel()
	for _, n := range []int{2, 16, 17, 100, 1000, 10_000, 1_000_000} {
		if got, bound := Count(n), primeCountBound(n); got > bound {
			t.Errorf("primeCountBound(%d) = %d below actual count %d", n, bound, got)
		}
	}
}

func TestMarkTableCrossOff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p, max int
	}{
		{61, 1<<12 + 3},
		{7, 49},
		{7, 55},
		{2, 64},
	}
	for _, tc := range tests {
		table := newMarkTable(tc.max)
		table.crossOff(tc.p, tc.max)
		for i := 0; i <= tc.max; i++ {
			want := i >= tc.p*tc.p && (i-tc.p*tc.p)%tc.p == 0
			if table.marked(i) != want {
				t.Fatalf("crossOff(%d, %d): index %d marked=%v want %v", tc.p, tc.max, i, table.marked(i), want)
			}
		}
	}
}

func BenchmarkSieve(b *testing.B) {
	for b.Loop() {
		_ = Sieve(1_000_000)
	}
}

func BenchmarkCount(b *testing.B) {
	for b.Loop() {
		_ = Count(1_000_000)
	}
}
