package fec

// simpleFloat is the tiny unsigned float used by the mode-detection
// risk metric: value = mant * 2^(exp-14) with mant kept in
// [2^14, 2^15). All risk-table entries are stored in this canonical
// form; comparison deliberately does not renormalise.
type simpleFloat struct {
	mant uint32
	exp  int16
}

// sfloatFrom canonicalises n * 2^exp. n must be nonzero.
func sfloatFrom(n uint64, exp int) simpleFloat {
	for n >= 1<<15 {
		n >>= 1
		exp++
	}
	for n < 1<<14 {
		n <<= 1
		exp--
	}
	return simpleFloat{mant: uint32(n), exp: int16(exp + 14)}
}

// mul renormalises the 28..30 bit mantissa product back into range.
func (a simpleFloat) mul(b simpleFloat) simpleFloat {
	m := uint64(a.mant) * uint64(b.mant)
	e := int(a.exp) + int(b.exp) - 14
	for m >= 1<<15 {
		m >>= 1
		e++
	}
	return simpleFloat{mant: uint32(m), exp: int16(e)}
}

// cmp returns -1, 0 or +1. Zero only for literally equal encodings.
func (a simpleFloat) cmp(b simpleFloat) int {
	if a.mant == b.mant && a.exp == b.exp {
		return 0
	}
	if a.exp != b.exp {
		if a.exp < b.exp {
			return -1
		}
		return 1
	}
	if a.mant < b.mant {
		return -1
	}
	return 1
}
