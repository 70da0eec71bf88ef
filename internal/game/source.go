// internal/game/source.go
//
// Random color sources used to draw secrets.
// The engine only needs Intn; tests and the daily mode inject seeded
// sources so secrets are reproducible.

package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand/v2"
)

// ColorSource yields uniform integers in [0, n).
type ColorSource interface {
	Intn(n int) int
}

// cryptoSource draws from crypto/rand. It is the default source.
type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// seeded wraps a PCG generator.
type seeded struct{ r *rand.Rand }

func (s *seeded) Intn(n int) int { return s.r.IntN(n) }

// NewSeededSource returns a deterministic source for seed.
func NewSeededSource(seed uint64) ColorSource {
	return &seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// FixedSource replays the given palette indexes in order, wrapping around.
// Indexes are reduced modulo n so any value is safe.
type FixedSource struct {
	Indexes []int
	pos     int
}

func (f *FixedSource) Intn(n int) int {
	if len(f.Indexes) == 0 || n <= 0 {
		return 0
	}
	v := f.Indexes[f.pos%len(f.Indexes)]
	f.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// SourceFor returns a FixedSource that reproduces code at difficulty d.
// Colors outside d's palette fall back to the first palette color.
func SourceFor(d Difficulty, code Code) *FixedSource {
	p := d.Palette()
	idx := make([]int, CodeLength)
	for i, c := range code {
		for j, x := range p {
			if x == c {
				idx[i] = j
				break
			}
		}
	}
	return &FixedSource{Indexes: idx}
}

// drawSecret draws CodeLength independent colors from d's palette.
func drawSecret(src ColorSource, d Difficulty) Code {
	p := d.Palette()
	var c Code
	for i := range c {
		c[i] = p[src.Intn(len(p))]
	}
	return c
}
