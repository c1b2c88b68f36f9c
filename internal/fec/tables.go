package fec

// Constant and derived tables shared by the codec: per-mode Hamming
// distances, the mode-signalling polynomials and their syndromes, the
// Reed-Solomon generator polynomials, the degree-2/3 locator
// factorisation tables, the risk weights and the popcount helper.

// Hamming distances per protection strength, indexed by epMode =
// mode-1. The first codeword of the CRC-only strength still carries a
// distance-3 block so the signalling slot exists; the remaining
// codewords of that strength are bare.
var cwDistFirst = [4]int{3, 3, 5, 7}
var cwDistRest = [4]int{1, 3, 5, 7}

// elpCap is the guaranteed correction capacity t = (d-1)/2 per
// epMode, for the uniform-distance strengths.
var elpCap = [4]int{1, 1, 2, 3}

// lowBRMax caps the accepted corrected-bit count for 40-byte slots,
// indexed by mode 0..4. Beyond it the frame is rejected outright.
var lowBRMax = [5]int{0, 0, 3, 9, 18}

// Mode-signalling polynomials, one per epMode, XOR'd into the first
// six codewords of every slot. Degree is at most 12 so the two top
// nibbles stay clear and codeword length never changes the syndromes.
// The CRC-only strength carries no polynomial. Every polynomial and
// every pairwise difference has nibble weight 13 and a nonzero first
// syndrome, so no hypothesis ever sees a clean slot under the wrong
// strength.
var sigPolys = [4][15]uint8{
	{},
	{0x7, 0x2, 0xB, 0x1, 0x9, 0xC, 0x4, 0xF, 0x3, 0xA, 0x6, 0xD, 0x5, 0, 0},
	{0xC, 0x9, 0x1, 0xC, 0x5, 0x7, 0xA, 0x2, 0xD, 0x4, 0xB, 0x8, 0x6, 0, 0},
	{0x4, 0xD, 0x8, 0x6, 0xF, 0x2, 0x9, 0xB, 0x1, 0xE, 0x3, 0x7, 0xC, 0, 0},
}

// sigSyndromes[m][k-1] is the k-th syndrome of sigPolys[m], so a
// hypothesis can be tested by XOR instead of re-evaluating the
// received polynomial.
var sigSyndromes = buildSigSyndromes()

func buildSigSyndromes() [4][6]uint8 {
	var t [4][6]uint8
	for m := 1; m < 4; m++ {
		rsSyndromes(t[m][:], sigPolys[m][:], 6)
	}
	return t
}

// rsGenPolys[d] holds the generator polynomial for Hamming distance
// d, constant term first with the leading 1 omitted, built from its
// roots g^1 .. g^(d-1).
var rsGenPolys = buildGenPolys()

func buildGenPolys() [8][]uint8 {
	var out [8][]uint8
	for _, d := range []int{3, 5, 7} {
		p := []uint8{1}
		for i := 1; i < d; i++ {
			root := gfPowTab[i]
			q := make([]uint8, len(p)+1)
			for j, c := range p {
				q[j] ^= gfMul(c, root)
				q[j+1] ^= c
			}
			p = q
		}
		out[d] = p[:d-1]
	}
	return out
}

// quadRoots[c0 | c1<<4] packs the two distinct roots of
// x^2 + c1*x + c0, smaller root in the low nibble, or 0 when the
// polynomial has a repeated root or does not split over the field.
var quadRoots = buildQuadRoots()

func buildQuadRoots() [256]uint8 {
	var t [256]uint8
	for c1 := 0; c1 < 16; c1++ {
		for c0 := 0; c0 < 16; c0++ {
			var roots []uint8
			for y := 0; y < 16; y++ {
				v := gfMul(uint8(y), uint8(y)) ^ gfMul(uint8(c1), uint8(y)) ^ uint8(c0)
				if v == 0 {
					roots = append(roots, uint8(y))
				}
			}
			if len(roots) == 2 {
				t[c0|c1<<4] = roots[0] | roots[1]<<4
			}
		}
	}
	return t
}

// cubicRoots[beta | gamma<<4] packs the three distinct roots of the
// depressed cubic y^3 + beta*y + gamma, ascending, four bits each, or
// 0 when the cubic has a repeated root or does not split.
var cubicRoots = buildCubicRoots()

func buildCubicRoots() [256]uint16 {
	var t [256]uint16
	for beta := 0; beta < 16; beta++ {
		for gamma := 0; gamma < 16; gamma++ {
			var roots []uint16
			for y := 0; y < 16; y++ {
				y3 := gfMul(uint8(y), gfMul(uint8(y), uint8(y)))
				if y3^gfMul(uint8(beta), uint8(y))^uint8(gamma) == 0 {
					roots = append(roots, uint16(y))
				}
			}
			if len(roots) == 3 {
				t[beta|gamma<<4] = roots[0] | roots[1]<<4 | roots[2]<<8
			}
		}
	}
	return t
}

// riskTable[m][k] weighs a k-error explanation under epMode m: the
// share of the mode's syndrome space covered by patterns of up to one
// nibble error in each of k positions, binom(14,k)*15^k / 16^(2t).
// A hypothesis with few check symbols is easy to satisfy by chance,
// so its explanations weigh heavier and rank later.
var riskTable = buildRiskTable()

func buildRiskTable() [4][4]simpleFloat {
	binom := [4]uint64{1, 14, 91, 364}
	pow15 := [4]uint64{1, 15, 225, 3375}
	var t [4][4]simpleFloat
	for m := 1; m < 4; m++ {
		tc := elpCap[m]
		for k := 0; k <= tc; k++ {
			t[m][k] = sfloatFrom(binom[k]*pow15[k], -8*tc)
		}
	}
	return t
}

// Risk thresholds feeding the mode-request confidence, named for
// regular slots and for slots of 80 bytes and up. riskConfidence
// grades every winning risk against both, whatever the slot size.
var riskThreshNS = simpleFloat{mant: 21990, exp: -23}
var riskThreshOS = simpleFloat{mant: 25166, exp: -10}

// untrustedExp: a codeword whose correction weighs more than
// 2^untrustedExp is flagged in the trust array even when it decoded.
const untrustedExp = -16

var nibblePop = [16]uint8{0, 1, 1, 2, 1, 2, 2, 3, 1, 2, 2, 3, 2, 3, 3, 4}
