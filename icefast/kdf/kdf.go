package kdf

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/TheusHen/icefast/icefast/ice"
)

var (
	ErrEmptySecret = errors.New("kdf: secret must not be empty")
	ErrLevel       = errors.New("kdf: invalid level")
)

// contextLabel binds derived keys to this package so the same secret used
// elsewhere with HKDF yields unrelated output.
const contextLabel = "icefast-ice-key"

// MaxLevel is the highest level whose key HKDF-SHA256 can expand to.
const MaxLevel = ice.Level(255 * sha256.Size / ice.BlockSize)

// FromSecret derives level.KeySize() key bytes from secret using HKDF-SHA256.
// salt may be nil. info provides additional context binding.
func FromSecret(secret, salt []byte, info string, level ice.Level) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("%w: %d", ErrLevel, int(level))
	}

	label := make([]byte, 0, len(contextLabel)+1+len(info)+4)
	label = append(label, contextLabel...)
	label = append(label, 0)
	label = append(label, info...)
	label = binary.BigEndian.AppendUint32(label, uint32(level))

	hk := hkdf.New(sha256.New, secret, salt, label)
	key := make([]byte, level.KeySize())
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	return key, nil
}

// NewCipherFromSecret derives a key with FromSecret and builds the cipher.
func NewCipherFromSecret(secret, salt []byte, info string, level ice.Level) (*ice.Cipher, error) {
	key, err := FromSecret(secret, salt, info, level)
	if err != nil {
		return nil, err
	}
	return ice.New(level, key)
}
