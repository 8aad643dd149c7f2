package ice

// subkey is the key material for one round: two XOR words and the salt mask.
type subkey [3]uint32

// Key rotation schedule. The first eight entries drive the forward pass,
// the last eight the backward pass.
var keyRot = [16]int{
	0, 1, 2, 3, 2, 1, 3, 0,
	1, 3, 2, 0, 3, 1, 0, 2,
}

// buildSchedule expands key into level.Rounds() subkeys.
// The caller has already checked len(key) == level.KeySize().
func buildSchedule(level Level, key []byte) []subkey {
	rounds := level.Rounds()
	sched := make([]subkey, rounds)

	if level == Thin {
		kb := loadHalfWords(key[:8])
		scheduleBuild(sched[:8], &kb, keyRot[:8])
		return sched
	}

	for n := 0; n < int(level); n++ {
		kb := loadHalfWords(key[n*8 : n*8+8])
		scheduleBuild(sched[n*8:n*8+8], &kb, keyRot[:8])
		// the backward pass continues from the state left by the forward pass
		scheduleBuild(sched[rounds-8-n*8:rounds-n*8], &kb, keyRot[8:])
	}
	return sched
}

// loadHalfWords reads 8 key bytes as four big-endian half-words in reverse order.
func loadHalfWords(seg []byte) [4]uint16 {
	var kb [4]uint16
	for j := 0; j < 4; j++ {
		kb[3-j] = uint16(seg[j*2])<<8 | uint16(seg[j*2+1])
	}
	return kb
}

// scheduleBuild fills the 8 subkeys in dst, consuming bits from kb.
// Every consumed bit is recycled into bit 15 of its half-word complemented.
func scheduleBuild(dst []subkey, kb *[4]uint16, rot []int) {
	for i := range dst[:8] {
		kr := rot[i]
		sk := &dst[i]
		sk[0], sk[1], sk[2] = 0, 0, 0

		for j := 0; j < 15; j++ {
			w := &sk[j%3]
			for k := 0; k < 4; k++ {
				b := &kb[(kr+k)&3]
				bit := *b & 1
				*w = *w<<1 | uint32(bit)
				*b = *b>>1 | (bit^1)<<15
			}
		}
	}
}
