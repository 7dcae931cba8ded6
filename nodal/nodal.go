package nodal

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/notargets/mimetic/utils"
)

var (
	ErrUnsupportedOrder = errors.New("nodal: unsupported order")
	ErrGridTooSmall     = errors.New("nodal: grid too small")
	ErrInvalidSpacing   = errors.New("nodal: invalid spacing")
)

var logger = log.New(io.Discard, "nodal: ", 0)

// SetTraceOutput routes construction messages to w
func SetTraceOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Axis is the cell count and grid step along one direction
type Axis struct {
	Cells   int
	Spacing float64
}

// Validate checks the stencil order and every axis. Only second order exists,
// and each axis needs at least 2k cells.
func Validate(k int, axes ...Axis) (err error) {
	if k != 2 {
		return fmt.Errorf("%w: k = %d, only k = 2 is implemented", ErrUnsupportedOrder, k)
	}
	if len(axes) < 1 || len(axes) > 3 {
		return fmt.Errorf("nodal operator needs 1 to 3 axes, have %d", len(axes))
	}
	for d, ax := range axes {
		if ax.Cells < 2*k {
			return fmt.Errorf("%w: axis %d has %d cells, need at least %d", ErrGridTooSmall, d, ax.Cells, 2*k)
		}
		if !(ax.Spacing > 0) {
			return fmt.Errorf("%w: axis %d spacing %v", ErrInvalidSpacing, d, ax.Spacing)
		}
	}
	return
}

// BuildNodalDifference dispatches on the number of axes
func BuildNodalDifference(k int, axes ...Axis) (D utils.DOK) {
	if err := Validate(k, axes...); err != nil {
		panic(err)
	}
	switch len(axes) {
	case 1:
		D = NewNodal1D(k, axes[0].Cells, axes[0].Spacing)
	case 2:
		D = NewNodal2D(k, axes[0].Cells, axes[0].Spacing, axes[1].Cells, axes[1].Spacing)
	case 3:
		D = NewNodal3D(k, axes[0].Cells, axes[0].Spacing, axes[1].Cells, axes[1].Spacing,
			axes[2].Cells, axes[2].Spacing)
	}
	return
}

// NewNodal1D is the (m+1) x (m+1) first derivative at the nodes of a uniform
// 1-D grid: one-sided three point stencils in the first and last rows, central
// differences between
func NewNodal1D(k, m int, dx float64) (D utils.DOK) {
	if err := Validate(k, Axis{m, dx}); err != nil {
		panic(err)
	}
	D = utils.NewDOK(m+1, m+1)
	D.Set(0, 0, -1.5/dx)
	D.Set(0, 1, 2.0/dx)
	D.Set(0, 2, -0.5/dx)
	D.Set(m, m-2, 0.5/dx)
	D.Set(m, m-1, -2.0/dx)
	D.Set(m, m, 1.5/dx)
	for i := 1; i < m; i++ {
		D.Set(i, i-1, -0.5/dx)
		D.Set(i, i+1, 0.5/dx)
	}
	return D.SetReadOnly(fmt.Sprintf("Nodal1D-%d", m))
}

// NewNodal2D stacks the x and y derivatives of a field stored x fastest,
// giving 2(m+1)(n+1) rows over (m+1)(n+1) nodes
func NewNodal2D(k, m int, dx float64, n int, dy float64) (D utils.DOK) {
	if err := Validate(k, Axis{m, dx}, Axis{n, dy}); err != nil {
		panic(err)
	}
	var (
		Im = utils.NewSpeye(m+1, m+1)
		In = utils.NewSpeye(n+1, n+1)
		G1 = utils.SpKron(In, NewNodal1D(k, m, dx))
		G2 = utils.SpKron(NewNodal1D(k, n, dy), Im)
	)
	if m != n {
		logger.Printf("Nodal2D %dx%d -- joined", m, n)
		D = utils.JoinVert(G1, G2)
	} else {
		logger.Printf("Nodal2D %dx%d -- selector sum", m, n)
		D = selectorSum(G1, G2)
	}
	return D.SetReadOnly(fmt.Sprintf("Nodal2D-%dx%d", m, n))
}

// NewNodal3D stacks the x, y and z derivatives, 3(m+1)(n+1)(o+1) rows
func NewNodal3D(k, m int, dx float64, n int, dy float64, o int, dz float64) (D utils.DOK) {
	if err := Validate(k, Axis{m, dx}, Axis{n, dy}, Axis{o, dz}); err != nil {
		panic(err)
	}
	var (
		Im = utils.NewSpeye(m+1, m+1)
		In = utils.NewSpeye(n+1, n+1)
		Io = utils.NewSpeye(o+1, o+1)
		G1 = utils.SpKron(utils.SpKron(Io, In), NewNodal1D(k, m, dx))
		G2 = utils.SpKron(utils.SpKron(Io, NewNodal1D(k, n, dy)), Im)
		G3 = utils.SpKron(utils.SpKron(NewNodal1D(k, o, dz), In), Im)
	)
	if m != n || n != o {
		logger.Printf("Nodal3D %dx%dx%d -- joined", m, n, o)
		D = utils.JoinVert(utils.JoinVert(G1, G2), G3)
	} else {
		logger.Printf("Nodal3D %dx%dx%d -- selector sum", m, n, o)
		D = selectorSum(G1, G2, G3)
	}
	return D.SetReadOnly(fmt.Sprintf("Nodal3D-%dx%dx%d", m, n, o))
}

// selectorSum computes Σ e_d ⊗ G_d with e_d the d-th unit column. For equally
// shaped pieces this equals stacking them top to bottom.
func selectorSum(G ...utils.DOK) (D utils.DOK) {
	for d, Gd := range G {
		e := utils.NewDOK(len(G), 1)
		e.Set(d, 0, 1)
		term := utils.SpKron(e, Gd)
		if d == 0 {
			D = term
			continue
		}
		D = D.Add(term)
	}
	return
}
