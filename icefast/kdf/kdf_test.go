package kdf

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheusHen/icefast/icefast/ice"
)

func TestFromVersion(t *testing.T) {
	key := FromVersion(13765)
	require.Equal(t, "4353474fc5350000710d00005c030000", hex.EncodeToString(key))
	require.Len(t, key, VersionLevel.KeySize())

	require.Equal(t, []byte("CSGO"), FromVersion(0)[:4])
	require.Equal(t, make([]byte, 12), FromVersion(0)[4:])
	require.NotEqual(t, FromVersion(13765), FromVersion(13766))
}

func TestNewCipherFromVersion(t *testing.T) {
	c, err := NewCipherFromVersion(13765)
	require.NoError(t, err)
	require.Equal(t, VersionLevel, c.Level())
	require.Equal(t, 32, c.Rounds())

	buf := []byte("demo packet 0001")
	orig := append([]byte(nil), buf...)
	require.NoError(t, c.Encrypt(buf))
	require.NotEqual(t, orig, buf)
	require.NoError(t, c.Decrypt(buf))
	require.Equal(t, orig, buf)
}

func TestFromSecret(t *testing.T) {
	key, err := FromSecret([]byte("correct horse"), nil, "demo", ice.Level(1))
	require.NoError(t, err)
	require.Equal(t, "b4fd35be33b37faf", hex.EncodeToString(key))

	key, err = FromSecret([]byte("correct horse"), []byte("salt"), "", ice.Level(2))
	require.NoError(t, err)
	require.Equal(t, "948dcfb47484dfb5204722dd1a39260d", hex.EncodeToString(key))
}

func TestFromSecretSizes(t *testing.T) {
	for _, level := range []ice.Level{ice.Thin, 1, 2, 3, 8} {
		key, err := FromSecret([]byte("secret"), nil, "", level)
		require.NoError(t, err)
		require.Len(t, key, level.KeySize())

		_, err = ice.New(level, key)
		require.NoError(t, err)
	}
}

func TestFromSecretSeparation(t *testing.T) {
	a, err := FromSecret([]byte("secret"), nil, "files", ice.Level(2))
	require.NoError(t, err)
	b, err := FromSecret([]byte("secret"), nil, "packets", ice.Level(2))
	require.NoError(t, err)
	c, err := FromSecret([]byte("secret"), []byte("pepper"), "files", ice.Level(2))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotEqual(t, a, c)

	// level is bound into the context, so a shorter key is not a prefix
	thin, err := FromSecret([]byte("secret"), nil, "files", ice.Thin)
	require.NoError(t, err)
	one, err := FromSecret([]byte("secret"), nil, "files", ice.Level(1))
	require.NoError(t, err)
	require.NotEqual(t, thin, one)
	require.NotEqual(t, a[:8], one)
}

func TestFromSecretErrors(t *testing.T) {
	_, err := FromSecret(nil, nil, "", ice.Level(1))
	require.True(t, errors.Is(err, ErrEmptySecret))

	_, err = FromSecret([]byte("x"), nil, "", ice.Level(-2))
	require.True(t, errors.Is(err, ErrLevel))

	_, err = FromSecret([]byte("x"), nil, "", MaxLevel+1)
	require.True(t, errors.Is(err, ErrLevel))

	key, err := FromSecret([]byte("x"), nil, "", MaxLevel)
	require.NoError(t, err)
	require.Len(t, key, MaxLevel.KeySize())

	_, err = NewCipherFromSecret(nil, nil, "", ice.Thin)
	require.Error(t, err)

	c, err := NewCipherFromSecret([]byte("x"), nil, "", ice.Thin)
	require.NoError(t, err)
	require.Equal(t, 8, c.KeySize())
}

func TestFromSecretLevelNotTruncated(t *testing.T) {
	// 257 and 1 share the low byte
	low, err := FromSecret([]byte("secret"), nil, "files", ice.Level(1))
	require.NoError(t, err)
	high, err := FromSecret([]byte("secret"), nil, "files", ice.Level(257))
	require.NoError(t, err)
	require.NotEqual(t, low, high[:len(low)])
}
