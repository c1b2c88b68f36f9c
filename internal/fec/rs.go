package fec

// Reed-Solomon codec over GF(16). Codewords are 13..15 nibbles,
// low-index coefficient first, with the low d-1 nibbles holding the
// redundancy. Locators are solved directly by Peterson's method (the
// codes are at most triple-error-correcting) and factored through the
// precomputed degree-2/3 root tables.

// rsEncode computes the redundancy for a codeword whose upper
// L-(d-1) nibbles already hold the data polynomial, writing the
// remainder into the low nibbles. A non-nil sig is XOR'd over the
// result afterwards; it requires a codeword longer than 12 nibbles.
func rsEncode(cw []uint8, d int, sig []uint8) {
	if d > 1 {
		gen := rsGenPolys[d]
		var r [6]uint8
		for j := len(cw) - 1; j >= d-1; j-- {
			fb := cw[j] ^ r[d-2]
			for k := d - 2; k > 0; k-- {
				r[k] = r[k-1] ^ gfMul(fb, gen[k])
			}
			r[0] = gfMul(fb, gen[0])
		}
		copy(cw[:d-1], r[:d-1])
	}
	for j, s := range sig {
		if j >= len(cw) {
			break
		}
		cw[j] ^= s
	}
}

// rsSyndromes evaluates the received polynomial at g^1 .. g^n.
func rsSyndromes(out []uint8, cw []uint8, n int) {
	for k := 1; k <= n; k++ {
		gk := gfPowTab[k] << 4
		s := uint8(0)
		for j := len(cw) - 1; j >= 0; j-- {
			s = gfMulS(s, gk) ^ cw[j]
		}
		out[k-1] = s
	}
}

func synAllZero(syn []uint8) bool {
	for _, s := range syn {
		if s != 0 {
			return false
		}
	}
	return true
}

// gfDet3 expands the determinant of a 3x3 matrix given row-wise.
func gfDet3(a, b, c, d, e, f, g, h, i uint8) uint8 {
	return gfMul(a, gfMul(e, i)^gfMul(f, h)) ^
		gfMul(b, gfMul(d, i)^gfMul(f, g)) ^
		gfMul(c, gfMul(d, h)^gfMul(e, g))
}

// calcELP solves for the error locator with Peterson's method: try t
// errors first and step down whenever the syndrome matrix is
// singular. Each accepted solution must also satisfy the Newton
// identities that were not part of the linear system. elp receives
// the monic locator, coefficient of x^i at index i, whose roots are
// g^position. Returns the locator degree, 0 without any work when all
// syndromes vanish, or t+1 on definite failure.
func calcELP(elp *[4]uint8, syn []uint8, t int) int {
	if synAllZero(syn[:2*t]) {
		return 0
	}
	s := func(i int) uint8 { return syn[i-1] }
	for v := t; v >= 1; v-- {
		var sig1, sig2, sig3 uint8
		switch v {
		case 3:
			det := gfDet3(s(3), s(2), s(1), s(4), s(3), s(2), s(5), s(4), s(3))
			if det == 0 {
				continue
			}
			di := gfInv(det)
			sig1 = gfMul(di, gfDet3(s(4), s(2), s(1), s(5), s(3), s(2), s(6), s(4), s(3)))
			sig2 = gfMul(di, gfDet3(s(3), s(4), s(1), s(4), s(5), s(2), s(5), s(6), s(3)))
			sig3 = gfMul(di, gfDet3(s(3), s(2), s(4), s(4), s(3), s(5), s(5), s(4), s(6)))
			elp[0], elp[1], elp[2], elp[3] = sig3, sig2, sig1, 1
		case 2:
			det := gfMul(s(2), s(2)) ^ gfMul(s(1), s(3))
			if det == 0 {
				continue
			}
			di := gfInv(det)
			sig1 = gfMul(di, gfMul(s(3), s(2))^gfMul(s(1), s(4)))
			sig2 = gfMul(di, gfMul(s(2), s(4))^gfMul(s(3), s(3)))
			elp[0], elp[1], elp[2] = sig2, sig1, 1
		case 1:
			if s(1) == 0 {
				continue
			}
			sig1 = gfMul(s(2), gfInv(s(1)))
			elp[0], elp[1] = sig1, 1
		}
		// Residual Newton identities: S_{k+v} = sum_j sig_j S_{k+v-j}
		// for the rows the solve did not consume.
		sig := [4]uint8{0, sig1, sig2, sig3}
		for k := v + 1; k+v <= 2*t; k++ {
			var sum uint8
			for j := 1; j <= v; j++ {
				sum ^= gfMul(sig[j], s(k+v-j))
			}
			if sum != s(k+v) {
				return t + 1
			}
		}
		return v
	}
	return t + 1
}

// factorELP maps the locator roots to error positions inside a
// codeword of l nibbles. Returns false when the locator does not
// split into distinct roots, a root is zero, or a position falls
// outside the codeword.
func factorELP(pos *[3]uint8, elp *[4]uint8, deg, l int) bool {
	switch deg {
	case 0:
		return true
	case 1:
		r := elp[0]
		if r == 0 {
			return false
		}
		p := gfLog(r)
		if int(p) >= l {
			return false
		}
		pos[0] = p
		return true
	case 2:
		e := quadRoots[int(elp[0])|int(elp[1])<<4]
		if e == 0 {
			return false
		}
		r0, r1 := e&0xF, e>>4
		if r0 == 0 {
			return false
		}
		p0, p1 := gfLog(r0), gfLog(r1)
		if int(p0) >= l || int(p1) >= l {
			return false
		}
		pos[0], pos[1] = p0, p1
		return true
	case 3:
		// Tschirnhaus shift x = y + a turns the monic cubic
		// x^3 + a*x^2 + b*x + c into y^3 + beta*y + gamma.
		a, b, c := elp[2], elp[1], elp[0]
		beta := gfMul(a, a) ^ b
		gamma := gfMul(a, b) ^ c
		e := cubicRoots[int(beta)|int(gamma)<<4]
		if e == 0 {
			return false
		}
		for i := 0; i < 3; i++ {
			r := uint8(e>>(4*i))&0xF ^ a
			if r == 0 {
				return false
			}
			p := gfLog(r)
			if int(p) >= l {
				return false
			}
			pos[i] = p
		}
		return true
	}
	return false
}

// errValues solves the small power-sum system for the error
// magnitudes at the located positions, one closed form per degree.
func errValues(vals *[3]uint8, syn []uint8, pos *[3]uint8, deg int) {
	switch deg {
	case 1:
		x := gfPowTab[pos[0]]
		vals[0] = gfMul(syn[0], gfInv(x))
	case 2:
		x1, x2 := gfPowTab[pos[0]], gfPowTab[pos[1]]
		sum := x1 ^ x2
		vals[0] = gfMul(syn[1]^gfMul(x2, syn[0]), gfInv(gfMul(x1, sum)))
		vals[1] = gfMul(syn[1]^gfMul(x1, syn[0]), gfInv(gfMul(x2, sum)))
	case 3:
		x1, x2, x3 := gfPowTab[pos[0]], gfPowTab[pos[1]], gfPowTab[pos[2]]
		q1, q2, q3 := gfMul(x1, x1), gfMul(x2, x2), gfMul(x3, x3)
		c1, c2, c3 := gfMul(q1, x1), gfMul(q2, x2), gfMul(q3, x3)
		di := gfInv(gfDet3(x1, x2, x3, q1, q2, q3, c1, c2, c3))
		vals[0] = gfMul(di, gfDet3(syn[0], x2, x3, syn[1], q2, q3, syn[2], c2, c3))
		vals[1] = gfMul(di, gfDet3(x1, syn[0], x3, q1, syn[1], q3, c1, syn[2], c3))
		vals[2] = gfMul(di, gfDet3(x1, x2, syn[0], q1, q2, syn[1], c1, c2, syn[2]))
	}
}

// rsCorrect runs the full syndrome, locator, root and magnitude
// pipeline on one codeword and repairs it in place. Returns the
// locator degree, the number of corrected bits, and false when the
// damage exceeds the code's capacity.
func rsCorrect(cw []uint8, t int) (int, int, bool) {
	var syn [6]uint8
	rsSyndromes(syn[:2*t], cw, 2*t)
	if synAllZero(syn[:2*t]) {
		return 0, 0, true
	}
	var elp [4]uint8
	deg := calcELP(&elp, syn[:2*t], t)
	if deg > t {
		return deg, 0, false
	}
	var pos, vals [3]uint8
	if !factorELP(&pos, &elp, deg, len(cw)) {
		return deg, 0, false
	}
	errValues(&vals, syn[:2*t], &pos, deg)
	bits := 0
	for i := 0; i < deg; i++ {
		cw[pos[i]] ^= vals[i]
		bits += int(nibblePop[vals[i]])
	}
	return deg, bits, true
}
