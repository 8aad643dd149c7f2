package ice

import "math/bits"

// mix expands p to two 20-bit halves, applies the salt permutation selected
// by sk[2] and XORs in the round key.
func mix(p uint32, sk *subkey) (al, ar uint32) {
	tl := (p>>16)&0x3ff | bits.RotateLeft32(p, 18)&0xffc00
	tr := p&0x3ff | (p<<2)&0xffc00

	al = sk[2] & (tl ^ tr)
	ar = al ^ tr
	al ^= tl

	al ^= sk[0]
	ar ^= sk[1]
	return al, ar
}

// f is the ICE round function.
func (c *Cipher) f(p uint32, sk *subkey) uint32 {
	al, ar := mix(p, sk)
	return c.sbox.lookup(al, ar)
}
