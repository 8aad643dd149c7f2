package ice

import "errors"

var (
	// ErrKeySize is returned by New when the key length does not match the level.
	ErrKeySize = errors.New("ice: invalid key size for level")

	// ErrLevel is returned by New for a negative level.
	ErrLevel = errors.New("ice: invalid level")

	// ErrAlignment is returned when a buffer length is not a multiple of BlockSize.
	// The buffer is left untouched.
	ErrAlignment = errors.New("ice: buffer length is not a multiple of the block size")

	// ErrShortBuffer is returned by EncryptTo and DecryptTo when dst is smaller than src.
	ErrShortBuffer = errors.New("ice: destination buffer too small")
)
