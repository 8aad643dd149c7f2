package ice

import "fmt"

func checkAligned(n int) error {
	if n%BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrAlignment, n)
	}
	return nil
}

// Encrypt encrypts buf in place. len(buf) must be a multiple of BlockSize;
// otherwise ErrAlignment is returned and buf is not modified. An empty buffer
// is a no-op.
func (c *Cipher) Encrypt(buf []byte) error {
	if err := checkAligned(len(buf)); err != nil {
		return err
	}
	c.encryptBuffer(buf)
	return nil
}

// Decrypt decrypts buf in place with the same length rules as Encrypt.
func (c *Cipher) Decrypt(buf []byte) error {
	if err := checkAligned(len(buf)); err != nil {
		return err
	}
	c.decryptBuffer(buf)
	return nil
}

// EncryptTo encrypts src into dst. dst must be at least len(src) bytes;
// the two may overlap only if they are identical.
func (c *Cipher) EncryptTo(dst, src []byte) error {
	if err := checkAligned(len(src)); err != nil {
		return err
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrShortBuffer, len(src), len(dst))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	c.encryptBuffer(dst)
	return nil
}

// DecryptTo decrypts src into dst with the same rules as EncryptTo.
func (c *Cipher) DecryptTo(dst, src []byte) error {
	if err := checkAligned(len(src)); err != nil {
		return err
	}
	if len(dst) < len(src) {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrShortBuffer, len(src), len(dst))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	c.decryptBuffer(dst)
	return nil
}

// encryptBuffer transforms an aligned buffer: whole super-blocks through the
// dual-lane path, then at most one trailing block.
func (c *Cipher) encryptBuffer(buf []byte) {
	n := len(buf) &^ (SuperBlockSize - 1)
	c.encryptLanes(buf[:n])
	if n < len(buf) {
		c.encryptBlock(buf[n:])
	}
}

func (c *Cipher) decryptBuffer(buf []byte) {
	n := len(buf) &^ (SuperBlockSize - 1)
	c.decryptLanes(buf[:n])
	if n < len(buf) {
		c.decryptBlock(buf[n:])
	}
}
