package fec

import (
	"testing"
)

func TestSfloatCanonical(t *testing.T) {
	cases := []struct {
		n    uint64
		exp  int
		mant uint32
	}{
		{1, 0, 1 << 14},
		{3, 0, 3 << 13},
		{210, -32, 210 << 7},
		{1 << 20, -8, 1 << 14},
	}
	for _, c := range cases {
		s := sfloatFrom(c.n, c.exp)
		if s.mant < 1<<14 || s.mant >= 1<<15 {
			t.Errorf("sfloatFrom(%d,%d): mantissa %d out of range", c.n, c.exp, s.mant)
		}
		if s.mant != c.mant {
			t.Errorf("sfloatFrom(%d,%d): mantissa %d, want %d", c.n, c.exp, s.mant, c.mant)
		}
	}
}

func TestSfloatMul(t *testing.T) {
	a := sfloatFrom(1, 0) // 1.0
	b := sfloatFrom(6, -1) // 3.0
	p := a.mul(b)
	if p.cmp(sfloatFrom(3, 0)) != 0 {
		t.Errorf("1*3 = {%d,%d}, want canonical 3", p.mant, p.exp)
	}
	// Squaring keeps the mantissa normalised.
	q := b.mul(b)
	if q.mant < 1<<14 || q.mant >= 1<<15 {
		t.Errorf("product mantissa %d out of range", q.mant)
	}
}

func TestSfloatCmp(t *testing.T) {
	small := sfloatFrom(1, -20)
	big := sfloatFrom(1, -2)
	if small.cmp(big) != -1 || big.cmp(small) != 1 {
		t.Errorf("exponent ordering broken")
	}
	if small.cmp(small) != 0 {
		t.Errorf("equal encodings must compare equal")
	}
	a := simpleFloat{mant: 20000, exp: -5}
	b := simpleFloat{mant: 20001, exp: -5}
	if a.cmp(b) != -1 {
		t.Errorf("mantissa ordering broken")
	}
}

func TestRiskTableShape(t *testing.T) {
	for m := 1; m < 4; m++ {
		for k := 0; k < elpCap[m]; k++ {
			if riskTable[m][k].cmp(riskTable[m][k+1]) != -1 {
				t.Errorf("risk not increasing with degree at mode %d, k=%d", m, k)
			}
		}
	}
	// A weaker code's explanation must weigh more than a stronger
	// code's explanation of the same degree.
	if riskTable[1][1].cmp(riskTable[3][1]) != 1 {
		t.Errorf("risk weights do not favour the stronger code")
	}
}
