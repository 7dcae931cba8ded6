package utils

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is a dictionary-of-keys sparse matrix. All operations allocate a fresh
// result, except Set, SetDiag and FillDiag which change the receiver and are
// only legal while the matrix is still being constructed.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

// Triplet is one stored nonzero of a sparse matrix
type Triplet struct {
	I, J int
	V    float64
}

func NewDOK(nr, nc int) (R DOK) {
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("negative sparse matrix dimensions: nr, nc = %v, %v", nr, nc))
	}
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// NewSpeye returns the (possibly rectangular) identity, ones on the main diagonal
func NewSpeye(nr, nc int) (R DOK) {
	R = NewDOK(nr, nc)
	R.FillDiag(0, 1)
	return
}

// NewTriplet assembles a matrix from coordinate triplets. Duplicate or out of
// range coordinates are a precondition violation.
func NewTriplet(nr, nc int, I2 Index2D, V []float64) (R DOK) {
	if I2.Len != len(V) {
		panic(fmt.Errorf("length of index and values are not equal: len(I) = %v, len(Val) = %v", I2.Len, len(V)))
	}
	seen := make(map[[2]int]struct{}, I2.Len)
	for n := 0; n < I2.Len; n++ {
		i, j := I2.RI[n], I2.CI[n]
		if i < 0 || i >= nr || j < 0 || j >= nc {
			panic(fmt.Errorf("triplet %d at (%d,%d) outside of %dx%d", n, i, j, nr, nc))
		}
		key := [2]int{i, j}
		if _, dup := seen[key]; dup {
			panic(fmt.Errorf("duplicate triplet at (%d,%d)", i, j))
		}
		seen[key] = struct{}{}
	}
	coo := sparse.NewCOO(nr, nc, I2.RI, I2.CI, V)
	R = NewDOK(nr, nc)
	coo.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			R.M.Set(i, j, v)
		}
	})
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

// Chainable methods (extended)
func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Name() string { return m.name }

// Set never stores a zero: writing zero over a stored entry rebuilds the
// storage without it
func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	m.checkWritable()
	if val != 0 {
		m.M.Set(i, j, val)
		return m
	}
	if m.M.At(i, j) == 0 {
		return m
	}
	var (
		nr, nc = m.Dims()
		R      = sparse.NewDOK(nr, nc)
	)
	m.DoNonZero(func(ii, jj int, v float64) {
		if ii != i || jj != j {
			R.Set(ii, jj, v)
		}
	})
	*m.M = *R
	return m
}

// DiagLen is the number of entries on diagonal k, k > 0 above the main
// diagonal and k < 0 below it
func (m DOK) DiagLen(k int) (l int) {
	var (
		nr, nc = m.Dims()
		i0, j0 = diagOrigin(k)
	)
	l = nr - i0
	if nc-j0 < l {
		l = nc - j0
	}
	if l < 0 {
		l = 0
	}
	return
}

func diagOrigin(k int) (i0, j0 int) {
	if k >= 0 {
		return 0, k
	}
	return -k, 0
}

func (m DOK) SetDiag(k int, values []float64) DOK { // Changes receiver
	var (
		l      = m.DiagLen(k)
		i0, j0 = diagOrigin(k)
	)
	if len(values) != l {
		panic(fmt.Errorf("diagonal %d of %q has length %d, got %d values", k, m.name, l, len(values)))
	}
	for p, val := range values {
		m.Set(i0+p, j0+p, val)
	}
	return m
}

func (m DOK) FillDiag(k int, val float64) DOK { // Changes receiver
	var (
		l      = m.DiagLen(k)
		i0, j0 = diagOrigin(k)
	)
	for p := 0; p < l; p++ {
		m.Set(i0+p, j0+p, val)
	}
	return m
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

// DoNonZero calls fn for every stored nonzero, in no particular order
func (m DOK) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(func(i, j int, v float64) {
		if v != 0 {
			fn(i, j, v)
		}
	})
}

func (m DOK) NNZ() (nnz int) {
	m.DoNonZero(func(_, _ int, _ float64) { nnz++ })
	return
}

// Triplets lists the nonzeros in row-major order
func (m DOK) Triplets() (T []Triplet) {
	T = make([]Triplet, 0, m.M.NNZ())
	m.DoNonZero(func(i, j int, v float64) {
		T = append(T, Triplet{i, j, v})
	})
	sort.Slice(T, func(a, b int) bool {
		if T[a].I != T[b].I {
			return T[a].I < T[b].I
		}
		return T[a].J < T[b].J
	})
	return
}

func (m DOK) Copy() (R DOK) { // Does not change receiver
	R = NewDOK(m.Dims())
	m.DoNonZero(func(i, j int, v float64) { R.M.Set(i, j, v) })
	return
}

func (m DOK) Scale(a float64) (R DOK) { // Does not change receiver
	R = NewDOK(m.Dims())
	m.DoNonZero(func(i, j int, v float64) { R.Set(i, j, a*v) })
	return
}

func (m DOK) Neg() (R DOK) { // Does not change receiver
	return m.Scale(-1)
}

func (m DOK) Add(A DOK) (R DOK) { // Does not change receiver
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nr != nrA || nc != ncA {
		panic(fmt.Errorf("dimension mismatch in Add: %dx%d + %dx%d", nr, nc, nrA, ncA))
	}
	sums := make(map[[2]int]float64, m.M.NNZ()+A.M.NNZ())
	accumulate := func(i, j int, v float64) { sums[[2]int{i, j}] += v }
	m.DoNonZero(accumulate)
	A.DoNonZero(accumulate)
	R = NewDOK(nr, nc)
	for key, sum := range sums {
		if sum != 0 {
			R.M.Set(key[0], key[1], sum)
		}
	}
	return
}

// SliceCols keeps columns [j0, j1), does not change receiver
func (m DOK) SliceCols(j0, j1 int) (R DOK) {
	var nr, nc = m.Dims()
	if j0 < 0 || j1 > nc || j0 > j1 {
		panic(fmt.Errorf("column range [%d,%d) outside of %dx%d", j0, j1, nr, nc))
	}
	R = NewDOK(nr, j1-j0)
	m.DoNonZero(func(i, j int, v float64) {
		if j >= j0 && j < j1 {
			R.M.Set(i, j-j0, v)
		}
	})
	return
}

func (m DOK) RowSums() (sums []float64) {
	var nr, _ = m.Dims()
	sums = make([]float64, nr)
	m.DoNonZero(func(i, _ int, v float64) { sums[i] += v })
	return
}

// Equals compares shape and every entry to within tol
func (m DOK) Equals(A DOK, tol float64) bool {
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
		equal    = true
	)
	if nr != nrA || nc != ncA {
		return false
	}
	check := func(B DOK) func(i, j int, v float64) {
		return func(i, j int, v float64) {
			d := v - B.M.At(i, j)
			if d > tol || d < -tol {
				equal = false
			}
		}
	}
	m.DoNonZero(check(A))
	A.DoNonZero(check(m))
	return equal
}

func (m DOK) ToCSR() *sparse.CSR {
	return m.M.ToCSR()
}

// ToMatrix densifies the receiver
func (m DOK) ToMatrix() (R Matrix) {
	R = NewMatrix(m.Dims())
	m.DoNonZero(func(i, j int, v float64) { R.M.Set(i, j, v) })
	return
}

// WriteMatrixMarket writes the nonzeros in Matrix Market coordinate format,
// row-major and with 1-based indices
func (m DOK) WriteMatrixMarket(w io.Writer) (err error) {
	var (
		nr, nc = m.Dims()
		T      = m.Triplets()
	)
	if _, err = fmt.Fprintf(w, "%%%%MatrixMarket matrix coordinate real general\n%d %d %d\n", nr, nc, len(T)); err != nil {
		return
	}
	for _, t := range T {
		if _, err = fmt.Fprintf(w, "%d %d %s\n", t.I+1, t.J+1, strconv.FormatFloat(t.V, 'g', -1, 64)); err != nil {
			return
		}
	}
	return
}

// SpKron is the Kronecker product A ⊗ B: block (i,j) of the result is A(i,j)·B
func SpKron(A, B DOK) (R DOK) {
	var (
		nrA, ncA = A.Dims()
		nrB, ncB = B.Dims()
		TB       = B.Triplets()
	)
	R = NewDOK(nrA*nrB, ncA*ncB)
	A.DoNonZero(func(i, j int, a float64) {
		for _, b := range TB {
			R.Set(i*nrB+b.I, j*ncB+b.J, a*b.V)
		}
	})
	return
}

// JoinVert stacks A above B. Only two operands are accepted, longer stacks are
// built by repeated calls from the top down.
func JoinVert(A, B DOK) (R DOK) {
	var (
		nrA, ncA = A.Dims()
		nrB, ncB = B.Dims()
	)
	if ncA != ncB {
		panic(fmt.Errorf("JoinVert column mismatch: A is %dx%d, B is %dx%d", nrA, ncA, nrB, ncB))
	}
	R = NewDOK(nrA+nrB, ncA)
	A.DoNonZero(func(i, j int, v float64) { R.M.Set(i, j, v) })
	B.DoNonZero(func(i, j int, v float64) { R.M.Set(nrA+i, j, v) })
	return
}

// JoinHorz places A to the left of B
func JoinHorz(A, B DOK) (R DOK) {
	var (
		nrA, ncA = A.Dims()
		nrB, ncB = B.Dims()
	)
	if nrA != nrB {
		panic(fmt.Errorf("JoinHorz row mismatch: A is %dx%d, B is %dx%d", nrA, ncA, nrB, ncB))
	}
	R = NewDOK(nrA, ncA+ncB)
	A.DoNonZero(func(i, j int, v float64) { R.M.Set(i, j, v) })
	B.DoNonZero(func(i, j int, v float64) { R.M.Set(i, ncA+j, v) })
	return
}

// CircShift moves every entry d places along axis, wrapping at the end. The
// sparse storage has no shift of its own, so the matrix is densified, shifted
// and re-sparsified. Only use it on boundary sized blocks.
func CircShift(A DOK, d int, axis Axis) (R DOK) {
	var nr, nc = A.Dims()
	if nr == 0 || nc == 0 {
		return A.Copy()
	}
	return A.ToMatrix().CircShift(d, axis).ToDOK()
}
