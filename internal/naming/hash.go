// Tastegraph - Deterministic Taste Modeling and Ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package naming

// Hash is a multiplicative rolling hash over the UTF-8 bytes of
// salt + ":" + s. Arithmetic wraps in uint64.
func Hash(salt, s string) uint64 {
	var h uint64
	for i := 0; i < len(salt); i++ {
		h = h*31 + uint64(salt[i])
	}
	h = h*31 + ':'
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}

// pick selects a word from pool for the given salt and fingerprint.
func pick(pool []string, salt, fingerprint string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[Hash(salt, fingerprint)%uint64(len(pool))]
}

// lcg is a 64-bit linear congruential generator (Knuth MMIX constants).
type lcg struct {
	state uint64
}

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

// intn returns a value in [0, n). The high bits are used because the low bits
// of an LCG have short periods.
func (g *lcg) intn(n int) int {
	return int((g.next() >> 33) % uint64(n))
}
