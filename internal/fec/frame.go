package fec

// Framing layer: the codeword length schedule, nibble packing, the
// column-wise interleaver and the mode-request bit swap.

// codewordLengths returns the per-codeword nibble lengths for a slot.
// Lengths are 13..15, descending by at most one, and always sum to
// 2*slotBytes.
func codewordLengths(slotBytes int) []int {
	n := 2 * slotBytes
	ncw := (n + 14) / 15
	lens := make([]int, ncw)
	for i := range lens {
		lens[i] = (n-i-1)/ncw + 1
	}
	return lens
}

// bytesToNibbles splits each byte into two symbols, low nibble first.
func bytesToNibbles(dst []uint8, src []byte) {
	for i, b := range src {
		dst[2*i] = b & 0xF
		dst[2*i+1] = b >> 4
	}
}

func nibblesToBytes(dst []byte, src []uint8) {
	for i := range dst {
		dst[i] = src[2*i] | src[2*i+1]<<4
	}
}

// interleavePos maps nibble j of codeword i onto the wire. The
// reversed column order spreads a wire burst across codewords.
func interleavePos(slotBytes, ncw, i, j int) int {
	return 2*slotBytes - 1 - (j*ncw + i)
}

// interleave scatters the codewords into the wire nibble buffer.
func interleave(nb []uint8, cws [][]uint8, slotBytes int) {
	ncw := len(cws)
	for i, cw := range cws {
		for j, v := range cw {
			nb[interleavePos(slotBytes, ncw, i, j)] = v
		}
	}
}

// deinterleave gathers the codewords back out of the wire buffer.
func deinterleave(nb []uint8, lens []int, slotBytes int) [][]uint8 {
	ncw := len(lens)
	cws := make([][]uint8, ncw)
	for i, l := range lens {
		cw := make([]uint8, l)
		for j := range cw {
			cw[j] = nb[interleavePos(slotBytes, ncw, i, j)]
		}
		cws[i] = cw
	}
	return cws
}

// dw0BitSwap exchanges the mode-request bits sitting in the top of
// the CRC1 remainder (bits 2,3 of the last hash nibble) with bits 0,1
// of the nibble at codeword-0 offset L0-d+1, which is stream position
// L0-2d+2. Self-inverse, also when both positions coincide.
func dw0BitSwap(dn []uint8, hashBytes, l0, d0 int) {
	p1 := 2*hashBytes - 1
	p2 := l0 - 2*d0 + 2
	hi := dn[p1] >> 2
	lo := dn[p2] & 3
	dn[p1] = dn[p1]&3 | lo<<2
	dn[p2] = dn[p2]&0xC | hi
}

// epmrStreamPos is the stream index of the nibble carrying the
// swapped-in mode-request bits for a first codeword of length l0 and
// distance d0.
func epmrStreamPos(l0, d0 int) int {
	return l0 - 2*d0 + 2
}

// pcSplitOf returns the number of payload nibbles held by the last k
// codewords under a uniform distance d.
func pcSplitOf(k int, lens []int, d int) int {
	n := 0
	for i := len(lens) - k; i < len(lens); i++ {
		n += lens[i] - (d - 1)
	}
	return n
}

// crc1Bytes selects the first-stage hash width for a slot size.
func crc1Bytes(slotBytes int) int {
	if slotBytes >= 80 {
		return 3
	}
	return 2
}
