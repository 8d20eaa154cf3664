package generator

import "math"

// Modulo6 yields 2, 3 and then every integer congruent to 1 or 5 modulo 6:
// 5, 7, 11, 13, 17, 19, 23, 25, ... It keeps no table, so composites such as
// 25, 35 and 49 are part of the sequence.
type Modulo6 struct {
	bound
	last uint64
	step uint64
	done bool
}

// NewModulo6 returns a Modulo6 generator positioned before 2.
func NewModulo6() *Modulo6 {
	return &Modulo6{}
}

func (g *Modulo6) Next() (uint64, bool) {
	if g.done {
		return 0, false
	}

	switch g.last {
	case 0:
		g.last = 2
	case 2:
		g.last = 3
	case 3:
		g.last, g.step = 5, 2
	default:
		if g.last > math.MaxUint64-g.step {
			g.done = true
			return 0, false
		}
		g.last += g.step
		g.step = 6 - g.step
	}
	return g.last, true
}

func (g *Modulo6) Rewind() {
	g.last, g.step, g.done = 0, 0, false
}
