//go:build cuda

package embedding

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bpeforge/bpeforge/internal/bpeerr"
)

// computeMatrix is the CUDA accelerator path. It shares the CPU path's
// input/output contract but is not implemented here — no CUDA
// toolchain is available to this build, so this stub only documents
// where a real kernel launch would plug in. Accelerator selection is a
// compile-time concern, not a runtime branch.
func computeMatrix(cfg Config, seeds []float64) (*mat.Dense, error) {
	return nil, bpeerr.Wrap(bpeerr.KindConfig, "embedding.computeMatrix(cuda)",
		errUnimplemented("cuda"))
}
