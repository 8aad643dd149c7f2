package ice

import (
	"crypto/cipher"
	"fmt"
	"math"
)

// BlockSize is the ICE block size in bytes.
const BlockSize = 8

// Level selects the key length and number of rounds.
type Level int

// Thin is the 8-round variant keyed with 8 bytes.
const Thin Level = 0

// maxLevel keeps Rounds and KeySize from overflowing int.
const maxLevel = math.MaxInt / 16

// size is the number of 8-byte key segments; thin counts as one.
func (l Level) size() int {
	if l < 1 {
		return 1
	}
	return int(l)
}

// Rounds returns the number of rounds used at this level.
func (l Level) Rounds() int {
	if l == Thin {
		return 8
	}
	return 16 * int(l)
}

// KeySize returns the key length in bytes required at this level.
func (l Level) KeySize() int { return 8 * l.size() }

func (l Level) String() string {
	if l == Thin {
		return "thin"
	}
	return fmt.Sprintf("level-%d", int(l))
}

// Cipher is an ICE key: the expanded key schedule for one (level, key) pair
// plus the shared S-box tables. It is read-only after New.
type Cipher struct {
	level Level
	sched []subkey
	sbox  *sboxTable
}

// New creates a Cipher for the given level from raw key bytes.
// The key must be exactly level.KeySize() bytes long.
func New(level Level, key []byte) (*Cipher, error) {
	if level < 0 || level > maxLevel {
		return nil, fmt.Errorf("%w: %d", ErrLevel, int(level))
	}
	if len(key) != level.KeySize() {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", ErrKeySize, level, level.KeySize(), len(key))
	}
	return &Cipher{
		level: level,
		sched: buildSchedule(level, key),
		sbox:  sboxes(),
	}, nil
}

// Level returns the level the cipher was created with.
func (c *Cipher) Level() Level { return c.level }

// Rounds returns the number of rounds.
func (c *Cipher) Rounds() int { return len(c.sched) }

// KeySize returns the key size in bytes.
func (c *Cipher) KeySize() int { return c.level.KeySize() }

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Block returns a crypto/cipher.Block view of c that transforms one block per call.
// Like the standard library ciphers it panics if src or dst is shorter than a block.
func (c *Cipher) Block() cipher.Block { return blockView{c} }

type blockView struct{ c *Cipher }

func (v blockView) BlockSize() int { return BlockSize }

func (v blockView) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("ice: input not full block")
	}
	if len(dst) < BlockSize {
		panic("ice: output not full block")
	}
	copy(dst[:BlockSize], src[:BlockSize])
	v.c.encryptBlock(dst[:BlockSize])
}

func (v blockView) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("ice: input not full block")
	}
	if len(dst) < BlockSize {
		panic("ice: output not full block")
	}
	copy(dst[:BlockSize], src[:BlockSize])
	v.c.decryptBlock(dst[:BlockSize])
}
