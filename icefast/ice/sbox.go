package ice

import "sync"

// S-box moduli, indexed [table][row].
var sMod = [4][4]uint32{
	{333, 313, 505, 369},
	{379, 375, 319, 391},
	{361, 445, 451, 397},
	{397, 425, 395, 505},
}

// S-box XOR values, indexed [table][row].
var sXor = [4][4]uint32{
	{0x83, 0x85, 0x9b, 0xcd},
	{0xcc, 0xa7, 0xad, 0x41},
	{0x4b, 0x2e, 0xd4, 0x33},
	{0xea, 0xcb, 0x2e, 0x04},
}

// sboxTable holds the four combined S-box/P-box lookup tables.
// The contents depend only on the constants above, never on a key.
type sboxTable [4][1024]uint32

var (
	sboxOnce   sync.Once
	sboxShared *sboxTable
)

// sboxes returns the process-wide table, building it on first use.
func sboxes() *sboxTable {
	sboxOnce.Do(func() {
		sboxShared = buildSBoxes()
	})
	return sboxShared
}

func buildSBoxes() *sboxTable {
	t := new(sboxTable)
	for i := uint32(0); i < 1024; i++ {
		col := (i >> 1) & 0xff
		row := (i & 1) | ((i & 0x200) >> 8)
		for j := 0; j < 4; j++ {
			x := gfExp7(col^sXor[j][row], sMod[j][row]) << (24 - 8*j)
			t[j][i] = perm32(x)
		}
	}
	return t
}

// lookup combines the four S-box outputs for the salted halves al and ar.
func (t *sboxTable) lookup(al, ar uint32) uint32 {
	return t[0][(al>>10)&0x3ff] |
		t[1][al&0x3ff] |
		t[2][(ar>>10)&0x3ff] |
		t[3][ar&0x3ff]
}
