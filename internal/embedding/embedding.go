// Package embedding implements C9: assignment of a dense n x d embedding
// vector to every vocabulary token. Matrix storage and the vector math
// used by tests are expressed with gonum, grounded on
// ollama-ollama/vector/store.go's mat.Dense/mat.VecDense usage and
// TimAnthonyAlexander-tiny-gpt's per-token vector tables; per-token seeds
// are drawn with gonum/stat/distuv the way
// ollama-ollama/convert/convert_gemma3n.go draws from distuv.Normal.
//
// The formula itself is a fixed contract: this package's job is
// producing a Table shaped correctly and, for the deterministic scheme,
// reproducibly from a given seed source.
package embedding

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Scheme selects which of the two acceptable formulas populates the
// matrix.
type Scheme int

const (
	// Deterministic computes E[i][j] from a per-token seed via Value.
	Deterministic Scheme = iota
	// UniformRandom draws every entry independently from [Min, Max].
	UniformRandom
)

// Config parameterizes Build. Dim and Divisor must be positive; callers
// validate this before calling Build (internal/config.Validate is the
// usual caller).
type Config struct {
	Dim     int
	Divisor int
	Scheme  Scheme
	Min     float64
	Max     float64
	// Source seeds the random draws. Nil uses a fixed source seeded with
	// 1, so every run without a Source draws the same values.
	Source rand.Source
}

// Table is the persisted output of C9: one seed and one row of the
// matrix per token, in the same order as the token slice passed to
// Build.
type Table struct {
	Tokens []string
	Seeds  []float64
	Matrix *mat.Dense // len(Tokens) x cfg.Dim
}

// Row returns token i's embedding vector as a view into the matrix; the
// caller must not mutate it if the Table is shared.
func (t *Table) Row(i int) []float64 {
	return t.Matrix.RawRowView(i)
}

// Build assigns an embedding vector to every token, per the accelerator
// path selected at compile time (computeMatrix, provided by cpu.go,
// cuda_stub.go, or opencl_stub.go depending on build tags).
func Build(tokens []string, cfg Config) (*Table, error) {
	n := len(tokens)
	seeds := make([]float64, n)

	src := cfg.Source
	if src == nil {
		src = rand.NewSource(1)
	}
	seedDist := distuv.Uniform{Min: cfg.Min, Max: cfg.Max, Src: src}
	for i := range seeds {
		seeds[i] = seedDist.Rand()
	}

	matrix, err := computeMatrix(cfg, seeds)
	if err != nil {
		return nil, err
	}

	return &Table{Tokens: tokens, Seeds: seeds, Matrix: matrix}, nil
}

// Value computes one deterministic-formula entry:
// (j+1)*0.01/((j mod dVal)+1) * seed^((j mod dVal)+1). Exported so
// internal/artifact and tests can recompute an entry without rebuilding
// a whole Table.
func Value(j, dVal int, seed float64) float64 {
	mod := j % dVal
	exp := mod + 1
	base := float64(j+1) * 0.01 / float64(exp)
	return base * pow(seed, exp)
}

// pow is integer-exponent power; the exponent here is always a small
// positive int ((j mod dVal) + 1), so a multiply loop is simpler and
// avoids math.Pow's float-exponent edge cases for this use.
func pow(base float64, exp int) float64 {
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
