package correction

import (
	"fmt"

	"github.com/notargets/mimetic/utils"
)

/*
Divergence/gradient corrections (GI) extend a grid by one boundary element per
axis. Every row of the result sums to one: interior rows pick or average
existing unknowns, boundary rows extrapolate from the nearest interior ones.
*/

// BuildDivergenceCorrection2D assembles the 2-D divergence correction from
// coordinate triplets. Only PlainNeumann and Edge exist in two dimensions.
func BuildDivergenceCorrection2D(m, n int, t Topology) (G utils.DOK) {
	var (
		g = NewGrid2D(m, n)
	)
	if err := g.ValidateDivergence(t); err != nil {
		panic(err)
	}
	logger.Printf("GI2 -- %v on %v", t, g)
	switch t {
	case PlainNeumann:
		G = divergenceNeumann2D(g)
	case Edge:
		G = divergenceEdge2D(g)
	}
	return finishDivergence(g, t, G)
}

// BuildDivergenceCorrection3D assembles the 3-D divergence correction for any
// of the six tags
func BuildDivergenceCorrection3D(m, n, o int, t Topology) (G utils.DOK) {
	var (
		g = NewGrid3D(m, n, o)
	)
	if err := g.ValidateDivergence(t); err != nil {
		panic(err)
	}
	logger.Printf("GI3 -- %v on %v", t, g)
	switch t {
	case PlainNeumann:
		G = padColumns(utils.SpKron(utils.NewSpeye(n*o, n*o), extension(m)), n*o*(m+1), n*o*m, m*o)
	case Edge:
		G = utils.SpKron(utils.NewSpeye(o, o), utils.SpKron(extension(n), utils.NewSpeye(m, m+1)))
	case CurvilinearPlain:
		G = padColumns(utils.SpKron(utils.NewSpeye(n*o, n*o), extension(m)), n*o*(m+1), n*o*m, m*n)
	case CurvilinearPlainPair:
		G = padColumns(utils.SpKron(utils.NewSpeye(m*o, m*o), extension(n)), m*o*(n+1), m*o*n, m*n)
	case CurvilinearEdge:
		G = utils.SpKron(utils.NewSpeye(n, n), utils.SpKron(extension(o), utils.NewSpeye(m, m+1)))
	case CurvilinearEdgePair:
		G = padColumns(utils.SpKron(utils.NewSpeye(m*n, m*n), extension(o)), m*n*(o+1), m*n*o, m*o)
	}
	return finishDivergence(g, t, G)
}

func finishDivergence(g Grid, t Topology, G utils.DOK) utils.DOK {
	var (
		nr, nc   = G.Dims()
		nrF, ncF = DivergenceShape(g, t)
	)
	if nr != nrF || nc != ncF {
		panic(fmt.Errorf("divergence correction %v on %v assembled as %dx%d, expected %dx%d",
			t, g, nr, nc, nrF, ncF))
	}
	return G.SetReadOnly(fmt.Sprintf("GI%dD-%v-%v", g.Dimensions(), t, g))
}

// padColumns appends pad zero columns so the column count reaches the target
// set by the product of the other two axes
func padColumns(G utils.DOK, rows, cols, pad int) utils.DOK {
	return stackHorz(
		block("extension", rows, cols, G),
		zero("pad", rows, pad),
	)
}

// pairedRows appends, for p in [0, m), row rowBase+p with values[k] at columns
// colBases[k]+p and colBases[k]+p+1
func pairedRows(I2 utils.Index2D, V []float64, m, rowBase int, colBases []int, values []float64) (utils.Index2D, []float64) {
	var (
		rows = utils.NewRange(rowBase, rowBase+m-1)
	)
	for k, cb := range colBases {
		cols := utils.NewRange(cb, cb+m-1)
		I2 = I2.Append(mustIndex2D(rows.Repeat(2), cols.Concat(cols.Add(1))))
		for p := 0; p < 2*m; p++ {
			V = append(V, values[k])
		}
	}
	return I2, V
}

func mustIndex2D(RI, CI utils.Index) utils.Index2D {
	I2, err := utils.NewIndex2D(RI, CI)
	if err != nil {
		panic(err)
	}
	return I2
}

// divergenceNeumann2D is n(m+1) x (n+1)m. Interior rows of each row-block
// average the four surrounding edges, its first and last rows extrapolate
// from the three nearest edges on either side.
func divergenceNeumann2D(g Grid) utils.DOK {
	var (
		m, n  = g.M, g.N
		I2    utils.Index2D
		V     []float64
		outer = []float64{-0.25, 0.25, 0.5, -0.25, 0.25, 0.5}
	)
	for b := 0; b < n; b++ {
		var (
			r, c = b * (m + 1), b * m
			rows = utils.NewRange(r+1, r+m-1)
			cols = utils.NewRange(c, c+m-2)
		)
		I2 = I2.Append(mustIndex2D(rows.Repeat(4),
			cols.Concat(cols.Add(1)).Concat(cols.Add(m)).Concat(cols.Add(m+1))))
		for p := 0; p < 4*(m-1); p++ {
			V = append(V, 0.25)
		}
	}
	for b := 0; b < n; b++ {
		var (
			r, c  = b * (m + 1), b * m
			first = utils.Index{c, c + 1, c + 2, c + m, c + m + 1, c + m + 2}
			last  = utils.Index{c + m - 3, c + m - 2, c + m - 1, c + 2*m - 3, c + 2*m - 2, c + 2*m - 1}
		)
		I2 = I2.Append(mustIndex2D(utils.NewConst(6, r), first))
		V = append(V, outer...)
		I2 = I2.Append(mustIndex2D(utils.NewConst(6, r+m), last))
		V = append(V, outer...)
	}
	nr, nc := DivergenceShape(g, PlainNeumann)
	return utils.NewTriplet(nr, nc, I2, V)
}

// divergenceEdge2D is (n+1)m x n(m+1). The first and last m rows extrapolate
// across three row-blocks, the rows between average two neighboring blocks.
func divergenceEdge2D(g Grid) utils.DOK {
	var (
		m, n = g.M, g.N
		I2   utils.Index2D
		V    []float64
		jb   = (n - 3) * (m + 1)
	)
	I2, V = pairedRows(I2, V, m, 0,
		[]int{0, m + 1, 2 * (m + 1)}, []float64{0.5, 0.25, -0.25})
	for b := 0; b < n-1; b++ {
		I2, V = pairedRows(I2, V, m, (b+1)*m,
			[]int{b * (m + 1), (b + 1) * (m + 1)}, []float64{0.25, 0.25})
	}
	I2, V = pairedRows(I2, V, m, n*m,
		[]int{jb, jb + m + 1, jb + 2*(m+1)}, []float64{-0.25, 0.25, 0.5})
	nr, nc := DivergenceShape(g, Edge)
	return utils.NewTriplet(nr, nc, I2, V)
}
