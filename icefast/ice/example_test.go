package ice_test

import (
	"crypto/cipher"
	"fmt"

	"github.com/TheusHen/icefast/icefast/ice"
)

// ExampleNew demonstrates in-place encryption of an aligned buffer.
func ExampleNew() {
	key := []byte{0x51, 0xF3, 0x0F, 0x11, 0x04, 0x24, 0x6A, 0x00}
	c, err := ice.New(ice.Thin, key)
	if err != nil {
		panic(err)
	}

	buf := []byte("abcdefgh")
	if err := c.Encrypt(buf); err != nil {
		panic(err)
	}
	fmt.Println(buf)

	if err := c.Decrypt(buf); err != nil {
		panic(err)
	}
	fmt.Println(string(buf))

	// Output:
	// [195 233 103 103 181 234 50 163]
	// abcdefgh
}

// ExampleCipher_Encrypt shows the alignment rule.
func ExampleCipher_Encrypt() {
	c, _ := ice.New(ice.Level(1), make([]byte, 8))

	err := c.Encrypt([]byte("seven!!"))
	fmt.Println(err)

	// Output:
	// ice: buffer length is not a multiple of the block size: 7 bytes
}

// ExampleCipher_Block plugs the cipher into a standard library mode.
// Chaining is the caller's choice; the package itself only provides blocks.
func ExampleCipher_Block() {
	c, _ := ice.New(ice.Level(2), make([]byte, 16))
	iv := make([]byte, ice.BlockSize)

	msg := []byte("sixteen byte msg")
	enc := make([]byte, len(msg))
	cipher.NewCBCEncrypter(c.Block(), iv).CryptBlocks(enc, msg)

	dec := make([]byte, len(enc))
	cipher.NewCBCDecrypter(c.Block(), iv).CryptBlocks(dec, enc)
	fmt.Println(string(dec))

	// Output:
	// sixteen byte msg
}
