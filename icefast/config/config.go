// Package config loads icefast profiles from TOML files.
//
// A profile names the cipher level, exactly one key source and the stream
// settings:
//
//	level = 1
//	key = "deadbeef01234567"
//	workers = 4
//	chunk_size = 262144
//	passthrough_tail = false
//
// The key source is one of key (hex), secret (HKDF input, with optional
// salt) or game_version (the 16-byte level-2 key of a client version).
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/TheusHen/icefast/icefast/ice"
	"github.com/TheusHen/icefast/icefast/kdf"
	"github.com/TheusHen/icefast/icefast/stream"
)

// MaxLevel bounds the level accepted from profiles and flags.
const MaxLevel = 64

// secretInfo is the HKDF info used for profile secrets.
const secretInfo = "profile"

var (
	ErrNoKey       = errors.New("config: no key source set")
	ErrAmbiguous   = errors.New("config: more than one key source set")
	ErrInvalid     = errors.New("config: invalid profile")
	ErrLevelForKey = errors.New("config: game_version requires level 2")
)

// Profile is the TOML representation of a cipher and stream setup.
type Profile struct {
	Level           int     `toml:"level"`
	Key             string  `toml:"key,omitempty"`
	Secret          string  `toml:"secret,omitempty"`
	Salt            string  `toml:"salt,omitempty"`
	GameVersion     *uint32 `toml:"game_version,omitempty"` // nil when unset; 0 is a valid version
	Workers         int     `toml:"workers"`
	ChunkSize       int     `toml:"chunk_size"`
	PassthroughTail bool    `toml:"passthrough_tail"`
}

// Version returns a GameVersion value for v.
func Version(v uint32) *uint32 { return &v }

// Default returns a level-1 profile with the default stream settings and no key.
func Default() *Profile {
	return &Profile{
		Level:     1,
		ChunkSize: stream.DefaultChunkSize,
	}
}

// Load reads a profile from path. Fields missing from the file keep their
// Default values. Unknown keys are rejected.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a profile from TOML bytes.
func Parse(data []byte) (*Profile, error) {
	p := Default()
	md, err := toml.Decode(string(data), p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	return p, nil
}

// Encode writes p as TOML.
func (p *Profile) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// Save writes p to path with owner-only permissions, since it may hold key material.
func (p *Profile) Save(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := p.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (p *Profile) sources() int {
	n := 0
	if p.Key != "" {
		n++
	}
	if p.Secret != "" {
		n++
	}
	if p.GameVersion != nil {
		n++
	}
	return n
}

// Validate checks the profile for consistency.
func (p *Profile) Validate() error {
	if p.Level < 0 || p.Level > MaxLevel {
		return fmt.Errorf("%w: level %d out of range [0, %d]", ErrInvalid, p.Level, MaxLevel)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: negative workers", ErrInvalid)
	}
	if p.ChunkSize < 0 || (p.ChunkSize > 0 && p.ChunkSize < ice.SuperBlockSize) {
		return fmt.Errorf("%w: chunk_size must be at least %d", ErrInvalid, ice.SuperBlockSize)
	}
	switch p.sources() {
	case 0:
		return ErrNoKey
	case 1:
	default:
		return ErrAmbiguous
	}
	if p.Salt != "" && p.Secret == "" {
		return fmt.Errorf("%w: salt without secret", ErrInvalid)
	}
	if p.GameVersion != nil && ice.Level(p.Level) != kdf.VersionLevel {
		return ErrLevelForKey
	}
	return nil
}

// CipherLevel returns the profile level as an ice.Level.
func (p *Profile) CipherLevel() ice.Level { return ice.Level(p.Level) }

// KeyBytes resolves the single configured key source into raw key bytes.
func (p *Profile) KeyBytes() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	switch {
	case p.Key != "":
		key, err := hex.DecodeString(p.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: key is not hex: %v", ErrInvalid, err)
		}
		if len(key) != p.CipherLevel().KeySize() {
			return nil, fmt.Errorf("%w: %s needs %d bytes, got %d",
				ice.ErrKeySize, p.CipherLevel(), p.CipherLevel().KeySize(), len(key))
		}
		return key, nil
	case p.Secret != "":
		return kdf.FromSecret([]byte(p.Secret), []byte(p.Salt), secretInfo, p.CipherLevel())
	default:
		return kdf.FromVersion(*p.GameVersion), nil
	}
}

// Cipher builds the cipher described by the profile.
func (p *Profile) Cipher() (*ice.Cipher, error) {
	key, err := p.KeyBytes()
	if err != nil {
		return nil, err
	}
	return ice.New(p.CipherLevel(), key)
}

// StreamConfig returns the stream settings of the profile.
func (p *Profile) StreamConfig() stream.Config {
	return stream.Config{
		ChunkSize:       p.ChunkSize,
		Workers:         p.Workers,
		PassthroughTail: p.PassthroughTail,
	}
}
