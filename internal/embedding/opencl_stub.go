//go:build opencl

package embedding

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bpeforge/bpeforge/internal/bpeerr"
)

// computeMatrix is the OpenCL accelerator path, a contract-only stub for
// the same reason as its CUDA counterpart in cuda_stub.go.
func computeMatrix(cfg Config, seeds []float64) (*mat.Dense, error) {
	return nil, bpeerr.Wrap(bpeerr.KindConfig, "embedding.computeMatrix(opencl)",
		errUnimplemented("opencl"))
}
