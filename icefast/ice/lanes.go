package ice

import "encoding/binary"

// SuperBlockSize is the unit handled by the dual-lane transform.
const SuperBlockSize = 2 * BlockSize

// encryptPair encrypts two adjacent blocks in place. Both lanes run through the
// same round at the same time: the mixing arithmetic of both lanes is done first,
// then both sets of S-box lookups, then the XORs. The result is identical to
// calling encryptBlock on each half.
func (c *Cipher) encryptPair(b []byte) {
	_ = b[15]
	l1 := binary.BigEndian.Uint32(b[0:4])
	r1 := binary.BigEndian.Uint32(b[4:8])
	l2 := binary.BigEndian.Uint32(b[8:12])
	r2 := binary.BigEndian.Uint32(b[12:16])

	t := c.sbox
	ks := c.sched
	for i := 0; i < len(ks); i += 2 {
		k0, k1 := &ks[i], &ks[i+1]

		al1, ar1 := mix(r1, k0)
		al2, ar2 := mix(r2, k0)
		f1 := t.lookup(al1, ar1)
		f2 := t.lookup(al2, ar2)
		l1 ^= f1
		l2 ^= f2

		al1, ar1 = mix(l1, k1)
		al2, ar2 = mix(l2, k1)
		f1 = t.lookup(al1, ar1)
		f2 = t.lookup(al2, ar2)
		r1 ^= f1
		r2 ^= f2
	}

	binary.BigEndian.PutUint32(b[0:4], r1)
	binary.BigEndian.PutUint32(b[4:8], l1)
	binary.BigEndian.PutUint32(b[8:12], r2)
	binary.BigEndian.PutUint32(b[12:16], l2)
}

// decryptPair is the inverse of encryptPair.
func (c *Cipher) decryptPair(b []byte) {
	_ = b[15]
	l1 := binary.BigEndian.Uint32(b[0:4])
	r1 := binary.BigEndian.Uint32(b[4:8])
	l2 := binary.BigEndian.Uint32(b[8:12])
	r2 := binary.BigEndian.Uint32(b[12:16])

	t := c.sbox
	ks := c.sched
	for i := len(ks) - 2; i >= 0; i -= 2 {
		k0, k1 := &ks[i], &ks[i+1]

		al1, ar1 := mix(r1, k1)
		al2, ar2 := mix(r2, k1)
		f1 := t.lookup(al1, ar1)
		f2 := t.lookup(al2, ar2)
		l1 ^= f1
		l2 ^= f2

		al1, ar1 = mix(l1, k0)
		al2, ar2 = mix(l2, k0)
		f1 = t.lookup(al1, ar1)
		f2 = t.lookup(al2, ar2)
		r1 ^= f1
		r2 ^= f2
	}

	binary.BigEndian.PutUint32(b[0:4], r1)
	binary.BigEndian.PutUint32(b[4:8], l1)
	binary.BigEndian.PutUint32(b[8:12], r2)
	binary.BigEndian.PutUint32(b[12:16], l2)
}

// encryptLanes runs encryptPair over b, whose length is a multiple of SuperBlockSize.
func (c *Cipher) encryptLanes(b []byte) {
	for len(b) >= SuperBlockSize {
		c.encryptPair(b[:SuperBlockSize])
		b = b[SuperBlockSize:]
	}
}

func (c *Cipher) decryptLanes(b []byte) {
	for len(b) >= SuperBlockSize {
		c.decryptPair(b[:SuperBlockSize])
		b = b[SuperBlockSize:]
	}
}
