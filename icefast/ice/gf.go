package ice

// gfMult multiplies a by b in GF(2^8) reduced by the row modulus m.
// Additions are XORs; a is folded back below 256 after every doubling.
func gfMult(a, b, m uint32) uint32 {
	var res uint32
	for b != 0 {
		if b&1 != 0 {
			res ^= a
		}
		a <<= 1
		b >>= 1
		if a >= 256 {
			a ^= m
		}
	}
	return res
}

// gfExp7 raises b to the 7th power modulo m.
func gfExp7(b, m uint32) uint32 {
	if b == 0 {
		return 0
	}
	x := gfMult(b, b, m)
	x = gfMult(b, x, m)
	x = gfMult(x, x, m)
	return gfMult(b, x, m)
}
