package engine

// PseudoRand is a xorshift64* generator implementing rand.Source64. It is
// cheap to seed, which keeps tie-breaks reproducible in tests.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed int64) *PseudoRand {
	r := &PseudoRand{}
	r.Seed(seed)
	return r
}

// Seed resets the state. A zero state never leaves zero, so it is remapped.
func (r *PseudoRand) Seed(seed int64) {
	r.s = uint64(seed)
	if r.s == 0 {
		r.s = 0x9E3779B97F4A7C15
	}
}

func (r *PseudoRand) Int63() int64 {
	return int64(r.Uint64() >> 1)
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}
