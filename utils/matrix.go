package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense staging area. Sparse operators pass through it only for
// operations the sparse storage cannot do in place, like a circular shift.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix       { return m.M.T() }

// CircShift moves entry (i,j) to ((i+d) mod nr, j) along RowAxis or to
// (i, (j+d) mod nc) along ColAxis. Does not change receiver.
func (m Matrix) CircShift(d int, axis Axis) (R Matrix) {
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		stride = m.M.RawMatrix().Stride
	)
	R = NewMatrix(nr, nc)
	dataR := R.M.RawMatrix().Data
	switch axis {
	case ColAxis:
		s := mod(d, nc)
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				dataR[i*nc+(j+s)%nc] = data[i*stride+j]
			}
		}
	case RowAxis:
		s := mod(d, nr)
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				dataR[((i+s)%nr)*nc+j] = data[i*stride+j]
			}
		}
	default:
		panic(fmt.Errorf("unknown shift axis %v", axis))
	}
	return
}

// ToDOK re-sparsifies, dropping every zero entry
func (m Matrix) ToDOK() (R DOK) {
	var (
		nr, nc = m.Dims()
	)
	R = NewDOK(nr, nc)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := m.M.At(i, j); val != 0 {
				R.M.Set(i, j, val)
			}
		}
	}
	return
}

func (m Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.M, mat.Squeeze()))
}
