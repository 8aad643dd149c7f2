package ice

import "encoding/binary"

// encryptBlock encrypts exactly one 8-byte block in place.
func (c *Cipher) encryptBlock(b []byte) {
	_ = b[7]
	l := binary.BigEndian.Uint32(b[0:4])
	r := binary.BigEndian.Uint32(b[4:8])

	ks := c.sched
	for i := 0; i < len(ks); i += 2 {
		l ^= c.f(r, &ks[i])
		r ^= c.f(l, &ks[i+1])
	}

	// halves are written back swapped
	binary.BigEndian.PutUint32(b[0:4], r)
	binary.BigEndian.PutUint32(b[4:8], l)
}

// decryptBlock decrypts exactly one 8-byte block in place.
func (c *Cipher) decryptBlock(b []byte) {
	_ = b[7]
	l := binary.BigEndian.Uint32(b[0:4])
	r := binary.BigEndian.Uint32(b[4:8])

	ks := c.sched
	for i := len(ks) - 2; i >= 0; i -= 2 {
		l ^= c.f(r, &ks[i+1])
		r ^= c.f(l, &ks[i])
	}

	binary.BigEndian.PutUint32(b[0:4], r)
	binary.BigEndian.PutUint32(b[4:8], l)
}
