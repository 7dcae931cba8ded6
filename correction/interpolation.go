package correction

import (
	"fmt"

	"github.com/notargets/mimetic/utils"
)

/*
Interpolation corrections (DI) difference the face or node interpolations of
neighboring row-blocks, producing one sparse matrix per call. Row counts are
padded so that the result lines up with the padded node/center numbering used
by the operators that consume it.
*/

// BuildInterpolationCorrection2D assembles the 2-D interpolation correction.
// Only PlainNeumann and Edge exist in two dimensions, any other tag or an
// undersized grid panics.
func BuildInterpolationCorrection2D(m, n int, t Topology) (I utils.DOK) {
	var (
		g     = NewGrid2D(m, n)
		build func(Grid) utils.DOK
	)
	if err := g.ValidateInterpolation(t); err != nil {
		panic(err)
	}
	logger.Printf("DI2 -- %v on %v", t, g)
	switch t {
	case PlainNeumann:
		build = interpolationNeumann2D
	case Edge:
		build = interpolationEdge2D
	}
	return finishInterpolation(g, t, build(g))
}

// BuildInterpolationCorrection3D assembles the 3-D interpolation correction
// for any of the six tags
func BuildInterpolationCorrection3D(m, n, o int, t Topology) (I utils.DOK) {
	var (
		g     = NewGrid3D(m, n, o)
		build func(Grid) utils.DOK
	)
	if err := g.ValidateInterpolation(t); err != nil {
		panic(err)
	}
	logger.Printf("DI3 -- %v on %v", t, g)
	switch t {
	case PlainNeumann, Edge:
		build = func(g Grid) utils.DOK { return extendInterpolation(g, t) }
	case CurvilinearPlain:
		build = interpolationCurvilinearPlain
	case CurvilinearPlainPair:
		build = interpolationCurvilinearPlainPair
	case CurvilinearEdge:
		build = interpolationCurvilinearEdge
	case CurvilinearEdgePair:
		build = interpolationCurvilinearEdgePair
	}
	return finishInterpolation(g, t, build(g))
}

func finishInterpolation(g Grid, t Topology, I utils.DOK) utils.DOK {
	var (
		nr, nc   = I.Dims()
		nrF, ncF = InterpolationShape(g, t)
	)
	if nr != nrF || nc != ncF {
		panic(fmt.Errorf("interpolation correction %v on %v assembled as %dx%d, expected %dx%d",
			t, g, nr, nc, nrF, ncF))
	}
	return I.SetReadOnly(fmt.Sprintf("DI%dD-%v-%v", g.Dimensions(), t, g))
}

func interpolationNeumann2D(g Grid) utils.DOK {
	var (
		m, n    = g.M, g.N
		nc      = (m + 1) * n
		bdry    = neumannBoundary(m, n)
		middle  = utils.SpKron(differencePattern(n), neumannBlock(m))
		shifted = utils.CircShift(bdry, (m+1)*(n-2), utils.ColAxis)
	)
	return stackVert(
		zero("top", m+3, nc),
		block("boundary", m, nc, bdry),
		zero("gap", 2, nc),
		block("middle", (n-2)*(m+2), nc, middle),
		block("shifted boundary", m, nc, shifted),
		zero("bottom", m+3, nc),
	)
}

func interpolationEdge2D(g Grid) utils.DOK {
	var (
		m, n   = g.M, g.N
		nc     = (n + 1) * m
		middle = utils.SpKron(pairPattern(n), edgeBlock(m))
	)
	return stackVert(
		zero("top", m+3, nc),
		block("middle", n*(m+2), nc, middle),
		zero("bottom", m+1, nc),
	)
}

// extendInterpolation repeats the 2-D correction over every plane of the third
// axis and pads one plane of nodes above and below
func extendInterpolation(g Grid, t Topology) utils.DOK {
	var (
		m, n, o  = g.M, g.N, g.O
		P        = (m + 2) * (n + 2)
		nr2, nc2 = InterpolationShape(g.plane(), t)
		I2       utils.DOK
	)
	switch t {
	case PlainNeumann:
		I2 = interpolationNeumann2D(g.plane())
	case Edge:
		I2 = interpolationEdge2D(g.plane())
	}
	I := utils.SpKron(utils.NewSpeye(o, o), I2)
	return stackVert(
		zero("top end", P, o*nc2),
		block("planes", o*nr2, o*nc2, I),
		zero("bottom end", P, o*nc2),
	)
}

func interpolationCurvilinearPlain(g Grid) utils.DOK {
	var (
		m, n, o = g.M, g.N, g.O
		P       = (m + 2) * (n + 2)
		nc      = (m + 1) * n * o
		bc      = n * (m + 1)
		br      = n * (m + 2)
		mr      = 2*(m+2) + (o-2)*P
	)
	bdry := stackVert(
		block("center boundary", m, m+1, centerBoundary(m)),
		zero("gap", 2, m+1),
	)
	bdry = utils.SpKron(utils.NewSpeye(n, n), bdry)

	middle := stackVert(
		block("boundary", br, bc, bdry),
		zero("gap", 2*(m+2), bc),
	)
	middle = utils.SpKron(scaledIdentity(o-2, 0.25), middle)
	middle = stackVert(
		zero("lead", 2*(m+2), (o-2)*bc),
		block("middle", (o-2)*P, (o-2)*bc, middle),
	)
	middle = stackHorz(
		block("middle", mr, (o-2)*bc, middle),
		zero("fill", mr, nc-(o-2)*bc),
	)
	middle = middle.Neg().Add(utils.CircShift(middle, 2*(m+1)*n, utils.ColAxis))

	bdry = stackHorz(
		block("-boundary", br, bc, bdry.Neg()),
		block("boundary", br, bc, bdry),
		zero("fill", br, nc-2*bc),
	)
	return stackVert(
		zero("top", P+m+3, nc),
		block("boundary", br, nc, bdry),
		block("middle", mr, nc, middle),
		block("shifted boundary", br, nc, utils.CircShift(bdry, (m+1)*n*(o-2), utils.ColAxis)),
		zero("bottom", P+m+1, nc),
	)
}

func interpolationCurvilinearPlainPair(g Grid) utils.DOK {
	var (
		m, n, o = g.M, g.N, g.O
		P       = (m + 2) * (n + 2)
		nc      = m * (n + 1) * o
		bc      = (n + 1) * m
		br      = n * (m + 2)
		pair    = pairPattern(n)
	)
	bdry := stackVert(
		block("center boundary", m, m, scaledIdentity(m, 0.5)),
		zero("gap", 2, m),
	)
	middle := stackVert(
		block("middle", br, bc, utils.SpKron(pair.Scale(0.25), bdry)),
		zero("gap", 2*(m+2), bc),
	)
	middle = utils.SpKron(differencePattern(o), middle)

	bdry = utils.SpKron(pair, bdry)
	bdry = stackHorz(
		block("-boundary", br, bc, bdry.Neg()),
		block("boundary", br, bc, bdry),
		zero("fill", br, nc-2*bc),
	)
	return stackVert(
		zero("top", P+m+3, nc),
		block("boundary", br, nc, bdry),
		zero("gap", 2*(m+2), nc),
		block("middle", (o-2)*P, nc, middle),
		block("shifted boundary", br, nc, utils.CircShift(bdry, m*(n+1)*(o-2), utils.ColAxis)),
		zero("bottom", P+m+1, nc),
	)
}

func interpolationCurvilinearEdge(g Grid) utils.DOK {
	var (
		m, n, o = g.M, g.N, g.O
		P       = (m + 2) * (n + 2)
		nc      = (o + 1) * n * m
	)
	middle := stackVert(
		block("edges", n*(m+2), n*m, utils.SpKron(utils.NewSpeye(n, n), edgeBlock(m))),
		zero("gap", 2*(m+2), n*m),
	)
	return stackVert(
		zero("top", P+m+3, nc),
		block("planes", o*P, nc, utils.SpKron(pairPattern(o), middle)),
		zero("bottom", (m+2)*n+m+1, nc),
	)
}

func interpolationCurvilinearEdgePair(g Grid) utils.DOK {
	var (
		m, n, o = g.M, g.N, g.O
		P       = (m + 2) * (n + 2)
		nc      = (o + 1) * m * n
		mr      = (n - 2) * (m + 2)
		bdry    = pairedNeumannBoundary(m, n)
	)
	middle := stackVert(
		block("quarter identity", m, m, scaledIdentity(m, 0.25)),
		zero("gap", 2, m),
	)
	middle = utils.SpKron(differencePattern(n), middle)
	middle = stackHorz(
		block("middle", mr, m*n, middle),
		block("middle", mr, m*n, middle),
	)
	I := stackVert(
		block("boundary", m, 2*m*n, bdry),
		zero("gap", 2, 2*m*n),
		block("middle", mr, 2*m*n, middle),
		block("shifted boundary", m, 2*m*n, utils.CircShift(bdry, m*(n-2), utils.ColAxis)),
	)
	I = stackVert(
		block("plane", n*(m+2)-2, m*n, I.SliceCols(0, m*n)),
		zero("gap", 2*(m+2)+2, m*n),
	)
	return stackVert(
		zero("top", P+m+3, nc),
		block("planes", o*P, nc, utils.SpKron(pairPattern(o), I)),
		zero("bottom", (m+2)*n+m+1, nc),
	)
}
