package sieve

// markTable is a packed composite-mark table covering indices 0..max.
// A set bit means the index has been shown composite.
type markTable []uint64

func newMarkTable(max int) markTable {
	if max < 0 {
		return nil
	}
	return make(markTable, max/64+1)
}

func (t markTable) marked(i int) bool {
	return t[i>>6]&(1<<(uint(i)&63)) != 0
}

func (t markTable) mark(i int) {
	t[i>>6] |= 1 << (uint(i) & 63)
}

// crossOff marks p², p²+p, ... up to and including max.
// The caller guarantees p*p <= max, so the first product cannot overflow;
// the step check keeps the last addition from wrapping near math.MaxInt.
func (t markTable) crossOff(p, max int) {
	for m := p * p; ; m += p {
		t.mark(m)
		if m > max-p {
			return
		}
	}
}
