package kdf

import "github.com/TheusHen/icefast/icefast/ice"

// VersionLevel is the level paired with keys from FromVersion.
const VersionLevel = ice.Level(2)

var versionPrefix = [4]byte{'C', 'S', 'G', 'O'}

// FromVersion returns the 16-byte key used for data produced by a CS:GO client
// of the given version: the ASCII prefix "CSGO" followed by three little-endian
// samplings of the version number shifted by 0, 2 and 4 bits.
func FromVersion(version uint32) []byte {
	key := make([]byte, 0, 16)
	key = append(key, versionPrefix[:]...)
	for _, shift := range [...]uint{0, 2, 4} {
		v := version >> shift
		key = append(key, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return key
}

// NewCipherFromVersion builds the level-2 cipher for a client version.
func NewCipherFromVersion(version uint32) (*ice.Cipher, error) {
	return ice.New(VersionLevel, FromVersion(version))
}
