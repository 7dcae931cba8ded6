package correction

import (
	"github.com/notargets/mimetic/utils"
)

/*
Boundary blocks hold the one-sided stencils at a domain edge, patterns are the
thin band matrices that tile a block across the interior through a Kronecker
product. All of them are generated from the cell counts alone.
*/

// neumannBoundary is m x (m+1)n: the two-point averages of a row-block
// subtracted from those of the next row-block
func neumannBoundary(m, n int) (B utils.DOK) {
	B = utils.NewDOK(m, (m+1)*n)
	B.FillDiag(0, -0.5)
	B.FillDiag(1, -0.5)
	B.FillDiag(m+1, 0.5)
	B.FillDiag(m+2, 0.5)
	return
}

// neumannBlock is (m+2) x (m+1), a 0.25 band on diagonals 0 and 1 with the
// last diagonal entry dropped
func neumannBlock(m int) (B utils.DOK) {
	B = utils.NewDOK(m+2, m+1)
	d := make([]float64, m+1)
	for i := 0; i < m; i++ {
		d[i] = 0.25
	}
	B.SetDiag(0, d)
	B.FillDiag(1, 0.25)
	return
}

// edgeBlock is (m+2) x m, centered differences of quarter weights with
// one-sided half weights in the first and last edge rows
func edgeBlock(m int) (B utils.DOK) {
	B = utils.NewDOK(m+2, m)
	d := make([]float64, m)
	for i := 0; i < m-1; i++ {
		d[i] = -0.25
	}
	B.SetDiag(-1, d)
	B.FillDiag(1, 0.25)
	B.Set(0, 0, -0.5)
	B.Set(0, 1, 0.5)
	B.Set(m-1, m-2, -0.5)
	B.Set(m-1, m-1, 0.5)
	return
}

// centerBoundary is m x (m+1), the face to center average
func centerBoundary(m int) (B utils.DOK) {
	B = utils.NewDOK(m, m+1)
	B.FillDiag(0, 0.5)
	B.FillDiag(1, 0.5)
	return
}

// pairedNeumannBoundary is m x 2mn: differences across one row-block taken
// in two planes at once
func pairedNeumannBoundary(m, n int) (B utils.DOK) {
	B = utils.NewDOK(m, 2*m*n)
	B.FillDiag(0, -0.5)
	B.FillDiag(m, 0.5)
	B.FillDiag(m*n, -0.5)
	B.FillDiag(m*n+m, 0.5)
	return
}

func scaledIdentity(p int, s float64) (B utils.DOK) {
	B = utils.NewDOK(p, p)
	B.FillDiag(0, s)
	return
}

// differencePattern is (p-2) x p with -1 on diagonal 0 and +1 on diagonal 2
func differencePattern(p int) (P utils.DOK) {
	P = utils.NewDOK(p-2, p)
	P.FillDiag(0, -1)
	P.FillDiag(2, 1)
	return
}

// pairPattern is p x (p+1) with ones on diagonals 0 and 1
func pairPattern(p int) (P utils.DOK) {
	P = utils.NewDOK(p, p+1)
	P.FillDiag(0, 1)
	P.FillDiag(1, 1)
	return
}

// extension is the (p+1) x p identity whose extra last row repeats the last
// interior element
func extension(p int) (E utils.DOK) {
	E = utils.NewSpeye(p+1, p)
	E.Set(p, p-1, 1)
	return
}
