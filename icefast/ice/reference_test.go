package ice

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// refKey is a deliberately plain, block-at-a-time rendition of ICE used as an
// oracle for the optimized paths.
type refKey struct {
	rounds int
	sched  [][3]int
	sbox   [4][1024]int
}

func refPerm32(x int) int {
	res := 0
	for i := 0; x != 0; i++ {
		if x&1 != 0 {
			res |= int(pbox[i])
		}
		x >>= 1
	}
	return res
}

func refGFMult(a, b, m int) int {
	res := 0
	for b != 0 {
		if b&1 != 0 {
			res ^= a
		}
		a <<= 1
		b >>= 1
		if a >= 256 {
			a ^= m
		}
	}
	return res
}

func newRefKey(level int, key []byte) *refKey {
	k := &refKey{}
	size := level
	if level < 1 {
		size = 1
		k.rounds = 8
	} else {
		k.rounds = level * 16
	}

	for i := 0; i < 1024; i++ {
		col := (i >> 1) & 0xff
		row := (i & 1) | ((i & 0x200) >> 8)
		for t := 0; t < 4; t++ {
			b := col ^ int(sXor[t][row])
			m := int(sMod[t][row])
			x := 0
			if b != 0 {
				x = refGFMult(b, b, m)
				x = refGFMult(b, x, m)
				x = refGFMult(x, x, m)
				x = refGFMult(b, x, m)
			}
			k.sbox[t][i] = refPerm32(x << (24 - 8*t))
		}
	}

	k.sched = make([][3]int, k.rounds)
	build := func(kb []int, n int, rot []int) {
		for i := 0; i < 8; i++ {
			kr := rot[i]
			isk := &k.sched[n+i]
			isk[0], isk[1], isk[2] = 0, 0, 0
			for j := 0; j < 15; j++ {
				for m := 0; m < 4; m++ {
					idx := (kr + m) & 3
					bit := kb[idx] & 1
					isk[j%3] = (isk[j%3] << 1) | bit
					kb[idx] = (kb[idx] >> 1) | ((bit ^ 1) << 15)
				}
			}
		}
	}

	kb := make([]int, 4)
	for i := 0; i < size; i++ {
		for j := 0; j < 4; j++ {
			kb[3-j] = int(key[i*8+j*2])<<8 | int(key[i*8+j*2+1])
		}
		build(kb, i*8, keyRot[:8])
		if k.rounds != 8 {
			build(kb, k.rounds-8-i*8, keyRot[8:])
		}
	}
	return k
}

func (k *refKey) f(p int, sk [3]int) int {
	tl := ((p >> 16) & 0x3ff) | (((p >> 14) | (p << 18)) & 0xffc00)
	tr := (p & 0x3ff) | ((p << 2) & 0xffc00)
	al := sk[2] & (tl ^ tr)
	ar := al ^ tr
	al ^= tl
	al ^= sk[0]
	ar ^= sk[1]
	return k.sbox[0][al>>10] | k.sbox[1][al&0x3ff] | k.sbox[2][ar>>10] | k.sbox[3][ar&0x3ff]
}

func (k *refKey) encrypt(b []byte) {
	var l, r int
	for i := 0; i < 4; i++ {
		l |= int(b[i]) << (24 - i*8)
		r |= int(b[i+4]) << (24 - i*8)
	}
	for i := 0; i < k.rounds; i += 2 {
		l ^= k.f(r, k.sched[i])
		r ^= k.f(l, k.sched[i+1])
	}
	for i := 0; i < 4; i++ {
		b[3-i] = byte(r & 0xff)
		b[7-i] = byte(l & 0xff)
		r >>= 8
		l >>= 8
	}
}

func TestReferenceKnownAnswers(t *testing.T) {
	for _, tc := range knownAnswers {
		k := newRefKey(int(tc.level), tc.key)
		data := clone(plainSmall)
		k.encrypt(data)
		require.Equal(t, tc.cipher, data, tc.name)
	}
}

func TestSBoxesMatchReference(t *testing.T) {
	k := newRefKey(0, key8)
	s := sboxes()
	for i := 0; i < 4; i++ {
		for j := 0; j < 1024; j++ {
			require.Equal(t, uint32(k.sbox[i][j]), s[i][j], "table %d entry %d", i, j)
		}
	}
	require.Same(t, s, sboxes())
}

func TestSBoxRowsArePermutations(t *testing.T) {
	s := sboxes()
	for tbl := 0; tbl < 4; tbl++ {
		for row := 0; row < 4; row++ {
			seen := make(map[uint32]bool, 256)
			for col := 0; col < 256; col++ {
				i := (row&2)<<8 | col<<1 | row&1
				v := s[tbl][i]
				require.LessOrEqual(t, bits.OnesCount32(v), 8)
				seen[v] = true
			}
			require.Len(t, seen, 256, "table %d row %d", tbl, row)
		}
	}
}

func TestScheduleMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, level := range []Level{Thin, 1, 2, 4} {
		key := randomBytes(r, level.KeySize())
		c, err := New(level, key)
		require.NoError(t, err)

		k := newRefKey(int(level), key)
		require.Len(t, c.sched, len(k.sched))
		for i := range k.sched {
			for j := 0; j < 3; j++ {
				require.Equal(t, uint32(k.sched[i][j]), c.sched[i][j], "%s round %d word %d", level, i, j)
			}
		}
	}
}

func TestPerm32(t *testing.T) {
	for i := 0; i < 32; i++ {
		require.Equal(t, pbox[i], perm32(1<<i))
	}
	require.Equal(t, uint32(0), perm32(0))
	require.Equal(t, uint32(0xffffffff), perm32(0xffffffff))

	r := rand.New(rand.NewSource(8))
	for i := 0; i < 1000; i++ {
		x := r.Uint32()
		require.Equal(t, bits.OnesCount32(x), bits.OnesCount32(perm32(x)))
		require.Equal(t, uint32(refPerm32(int(x))), perm32(x))
	}
}

func TestGFExp7(t *testing.T) {
	require.Zero(t, gfExp7(0, 333))
	require.Equal(t, uint32(1), gfExp7(1, 333))
	for b := uint32(1); b < 256; b++ {
		m := uint32(333)
		x := uint32(1)
		for i := 0; i < 7; i++ {
			x = gfMult(x, b, m)
		}
		require.Equal(t, x, gfExp7(b, m), "b=%d", b)
		require.Less(t, gfExp7(b, m), uint32(256))
	}
}

func FuzzCompareTransforms(f *testing.F) {
	f.Add(int8(0), []byte("abcdefgh"), []byte("abcdefgh"))
	f.Add(int8(1), key8, []byte("0123456789abcdef01234567"))
	f.Add(int8(2), key16, make([]byte, 64))
	f.Fuzz(func(t *testing.T, lvl int8, keySeed, data []byte) {
		level := Level(int(lvl) & 3) // thin, 1, 2 or 3
		key := make([]byte, level.KeySize())
		copy(key, keySeed)
		data = data[:len(data)&^(BlockSize-1)]

		c, err := New(level, key)
		if err != nil {
			t.Fatal(err)
		}
		ref := newRefKey(int(level), key)

		want := clone(data)
		for i := 0; i < len(want); i += BlockSize {
			ref.encrypt(want[i : i+BlockSize])
		}

		got := clone(data)
		if err := c.Encrypt(got); err != nil {
			t.Fatal(err)
		}
		require.Equal(t, want, got)

		if err := c.DecryptParallel(got, 3); err != nil {
			t.Fatal(err)
		}
		require.Equal(t, data, got)
	})
}
