// Package ice implements the ICE (Information Concealment Engine) 64-bit block cipher.
//
// ICE is a Feistel cipher with key-dependent bit permutation in its round
// function. Three strength settings are supported through Level:
//
//   - Thin (level 0): 8 rounds, 8-byte key
//   - Level n (n >= 1): 16*n rounds, 8*n-byte key
//
// The package transforms raw blocks only. There is no chaining, padding or
// authentication: a buffer is transformed block by block, in place, which is
// equivalent to ECB. Callers that need a mode can use Cipher.Block together with
// crypto/cipher.
//
// # Usage
//
//	c, err := ice.New(ice.Level(1), key) // key is 8 bytes for level 1
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := []byte("abcdefgh") // length must be a multiple of 8
//	if err := c.Encrypt(buf); err != nil {
//	    log.Fatal(err)
//	}
//	if err := c.Decrypt(buf); err != nil {
//	    log.Fatal(err)
//	}
//
// # Performance
//
// Buffers are processed two blocks at a time. The two lanes are interleaved
// inside every round so the S-box lookups of both blocks are independent and
// can overlap in the CPU pipeline. EncryptParallel and DecryptParallel split
// large buffers into disjoint slices and transform them on several goroutines.
// Every path produces the same bytes as the single-block transform.
//
// # Thread Safety
//
// A Cipher is immutable after New returns and is safe for concurrent use.
// The S-box tables are built once per process using sync.Once.
package ice
