//go:build !cuda && !opencl

package embedding

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// computeMatrix is the CPU accelerator path (the default). It fills an
// n x cfg.Dim mat.Dense according to cfg.Scheme.
func computeMatrix(cfg Config, seeds []float64) (*mat.Dense, error) {
	n := len(seeds)
	m := mat.NewDense(n, cfg.Dim, nil)

	switch cfg.Scheme {
	case UniformRandom:
		src := cfg.Source
		if src == nil {
			src = rand.NewSource(1)
		}
		u := distuv.Uniform{Min: cfg.Min, Max: cfg.Max, Src: src}
		for i := 0; i < n; i++ {
			for j := 0; j < cfg.Dim; j++ {
				m.Set(i, j, u.Rand())
			}
		}
	default: // Deterministic
		for i, seed := range seeds {
			for j := 0; j < cfg.Dim; j++ {
				m.Set(i, j, Value(j, cfg.Divisor, seed))
			}
		}
	}

	return m, nil
}
