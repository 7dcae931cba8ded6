package correction

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/mimetic/utils"
)

func assertRowSums(t *testing.T, D utils.DOK, want float64, msg string) {
	t.Helper()
	for i, s := range D.RowSums() {
		if !assert.InDeltaf(t, want, s, utils.NODETOL, "%s row %d", msg, i) {
			return
		}
	}
}

func assertZeroRows(t *testing.T, D utils.DOK, rows utils.Index) {
	t.Helper()
	nonZero := make(map[int]bool)
	D.DoNonZero(func(i, _ int, _ float64) { nonZero[i] = true })
	for _, i := range rows {
		assert.Falsef(t, nonZero[i], "row %d should be empty", i)
	}
}

func rowEntries(D utils.DOK, r int) (T []utils.Triplet) {
	for _, tr := range D.Triplets() {
		if tr.I == r {
			T = append(T, tr)
		}
	}
	return
}

func TestInterpolationNeumann2D(t *testing.T) {
	D := BuildInterpolationCorrection2D(2, 4, PlainNeumann)
	nr, nc := D.Dims()
	require.Equal(t, 24, nr)
	require.Equal(t, 12, nc)
	assert.Equal(t, 32, D.NNZ())
	assert.Equal(t, "DI2D-plain-neumann-2x4", D.Name())

	// First boundary row sits below the m+3 padding rows
	assertZeroRows(t, D, utils.NewRange(0, 4))
	assert.Equal(t, -0.5, D.At(5, 0))
	assert.Equal(t, -0.5, D.At(5, 1))
	assert.Equal(t, 0.5, D.At(5, 3))
	assert.Equal(t, 0.5, D.At(5, 4))
	// Interior quarter weights
	assert.Equal(t, 0.25, D.At(13, 9))
	assert.Equal(t, -0.5, D.At(17, 6))
	assert.Equal(t, 0.5, D.At(18, 11))
	assertZeroRows(t, D, utils.NewRange(19, 23))
	assertRowSums(t, D, 0, "DI2 plain-neumann")

	assert.Panics(t, func() { D.Set(0, 0, 1) })
}

func TestInterpolationEdge2D(t *testing.T) {
	D := BuildInterpolationCorrection2D(3, 2, Edge)
	nr, nc := D.Dims()
	require.Equal(t, 20, nr)
	require.Equal(t, 9, nc)
	assert.Equal(t, 24, D.NNZ())

	assertZeroRows(t, D, utils.NewRange(0, 5))
	assert.Equal(t, -0.5, D.At(6, 0))
	assert.Equal(t, 0.5, D.At(6, 1))
	assert.Equal(t, -0.5, D.At(6, 3))
	assert.Equal(t, 0.5, D.At(6, 4))
	assert.Equal(t, 0.25, D.At(7, 5))
	assert.Equal(t, -0.25, D.At(7, 3))
	assert.Equal(t, 0.5, D.At(13, 5))
	assert.Equal(t, 0.5, D.At(13, 8))
	assert.Equal(t, -0.5, D.At(13, 7))
	assertZeroRows(t, D, utils.NewRange(16, 19))
	assertRowSums(t, D, 0, "DI2 edge")
}

func TestInterpolation2DRejects(t *testing.T) {
	assert.Panics(t, func() { BuildInterpolationCorrection2D(4, 4, CurvilinearPlain) })
	assert.Panics(t, func() { BuildInterpolationCorrection2D(4, 1, PlainNeumann) })
	assert.Panics(t, func() { BuildInterpolationCorrection2D(1, 4, Edge) })
	assert.Panics(t, func() { BuildInterpolationCorrection3D(4, 4, 1, CurvilinearPlain) })
	assert.Panics(t, func() { BuildInterpolationCorrection3D(4, 4, 4, Topology(0)) })
}

// The plain 3-D corrections repeat the planar correction on the block
// diagonal, offset by one padding plane
func TestInterpolationExtension3D(t *testing.T) {
	for _, tag := range []Topology{PlainNeumann, Edge} {
		var (
			m, n, o  = 3, 4, 3
			P        = (m + 2) * (n + 2)
			D2       = BuildInterpolationCorrection2D(m, n, tag)
			D3       = BuildInterpolationCorrection3D(m, n, o, tag)
			nr2, nc2 = D2.Dims()
		)
		nr, nc := D3.Dims()
		require.Equal(t, 2*P+o*nr2, nr)
		require.Equal(t, o*nc2, nc)
		assert.Equal(t, o*D2.NNZ(), D3.NNZ())
		for k := 0; k < o; k++ {
			D2.DoNonZero(func(i, j int, v float64) {
				assert.Equal(t, v, D3.At(P+k*nr2+i, k*nc2+j))
			})
		}
		assertZeroRows(t, D3, utils.NewRange(0, P-1))
		assertZeroRows(t, D3, utils.NewRange(nr-P, nr-1))
	}
}

func TestInterpolationCurvilinear(t *testing.T) {
	var (
		m, n, o = 2, 2, 3
		P       = (m + 2) * (n + 2)
	)
	{
		D := BuildInterpolationCorrection3D(m, n, o, CurvilinearPlain)
		nr, nc := D.Dims()
		assert.Equal(t, 2*P+2*n*(m+2)+2*(m+2)+(o-2)*P+2*m+4, nr)
		assert.Equal(t, (m+1)*n*o, nc)
		// First boundary row: center averages of the first plane subtracted from the second
		r := P + m + 3
		assert.Equal(t, -0.5, D.At(r, 0))
		assert.Equal(t, -0.5, D.At(r, 1))
		assert.Equal(t, 0.5, D.At(r, (m+1)*n))
		assert.Equal(t, 0.5, D.At(r, (m+1)*n+1))
	}
	{
		D := BuildInterpolationCorrection3D(m, n, o, CurvilinearEdge)
		nr, nc := D.Dims()
		assert.Equal(t, (P+m+3)+o*P+(m+2)*n+m+1, nr)
		assert.Equal(t, (o+1)*n*m, nc)
		// edge block of plane 0 appears in column blocks 0 and 1
		r := P + m + 3
		assert.Equal(t, -0.5, D.At(r, 0))
		assert.Equal(t, 0.5, D.At(r, 1))
		assert.Equal(t, -0.5, D.At(r, n*m))
		assert.Equal(t, 0.5, D.At(r, n*m+1))
	}
}

// Every row of every interpolation correction differences two interpolations
// of the same field, so it sums to zero
func TestInterpolationRowSums(t *testing.T) {
	for _, tag := range []Topology{PlainNeumann, Edge} {
		for m := 1; m <= 5; m++ {
			for n := 1; n <= 5; n++ {
				g := NewGrid2D(m, n)
				if g.ValidateInterpolation(tag) != nil {
					continue
				}
				D := BuildInterpolationCorrection2D(m, n, tag)
				nr, nc := D.Dims()
				nrF, ncF := InterpolationShape(g, tag)
				assert.Equal(t, [2]int{nrF, ncF}, [2]int{nr, nc})
				assertRowSums(t, D, 0, fmt.Sprintf("DI2 %v %v", tag, g))
			}
		}
	}
	for _, tag := range Topologies() {
		for m := 1; m <= 4; m++ {
			for n := 1; n <= 4; n++ {
				for o := 1; o <= 4; o++ {
					g := NewGrid3D(m, n, o)
					if g.ValidateInterpolation(tag) != nil {
						continue
					}
					D := BuildInterpolationCorrection3D(m, n, o, tag)
					nr, nc := D.Dims()
					nrF, ncF := InterpolationShape(g, tag)
					assert.Equal(t, [2]int{nrF, ncF}, [2]int{nr, nc})
					assertRowSums(t, D, 0, fmt.Sprintf("DI3 %v %v", tag, g))
				}
			}
		}
	}
}

func TestInterpolationDeterministic(t *testing.T) {
	for _, tag := range Topologies() {
		A := BuildInterpolationCorrection3D(3, 3, 3, tag)
		B := BuildInterpolationCorrection3D(3, 3, 3, tag)
		assert.True(t, A.Equals(B, 0), tag.String())
		assert.Equal(t, A.Triplets(), B.Triplets())
	}
}

func TestTraceOutput(t *testing.T) {
	var buf bytes.Buffer
	SetTraceOutput(&buf)
	defer SetTraceOutput(io.Discard)
	BuildInterpolationCorrection2D(2, 2, PlainNeumann)
	BuildDivergenceCorrection3D(2, 2, 2, CurvilinearEdge)
	assert.Contains(t, buf.String(), "DI2 -- plain-neumann on 2x2")
	assert.Contains(t, buf.String(), "GI3 -- curvilinear-edge on 2x2x2")
}

// Rows built from circular shifts: the flux differences of curvilinear-plain
// and curvilinear-plain-pair, and the mirrored boundary rows of every
// curvilinear tag
func TestInterpolationCurvilinearShifts(t *testing.T) {
	{
		D := BuildInterpolationCorrection3D(2, 2, 4, CurvilinearPlain)
		// -middle + shift(middle) by 2(m+1)n columns
		assert.Equal(t, []utils.Triplet{
			{I: 37, J: 0, V: -0.125}, {I: 37, J: 1, V: -0.125}, {I: 37, J: 12, V: 0.125}, {I: 37, J: 13, V: 0.125},
		}, rowEntries(D, 37))
		assert.Equal(t, []utils.Triplet{
			{I: 58, J: 10, V: -0.125}, {I: 58, J: 11, V: -0.125}, {I: 58, J: 22, V: 0.125}, {I: 58, J: 23, V: 0.125},
		}, rowEntries(D, 58))
		// boundary shifted by (m+1)n(o-2) columns
		assert.Equal(t, []utils.Triplet{
			{I: 69, J: 12, V: -0.5}, {I: 69, J: 13, V: -0.5}, {I: 69, J: 18, V: 0.5}, {I: 69, J: 19, V: 0.5},
		}, rowEntries(D, 69))
		assert.Equal(t, []utils.Triplet{
			{I: 74, J: 16, V: -0.5}, {I: 74, J: 17, V: -0.5}, {I: 74, J: 22, V: 0.5}, {I: 74, J: 23, V: 0.5},
		}, rowEntries(D, 74))
	}
	{
		D := BuildInterpolationCorrection3D(2, 2, 4, CurvilinearPlainPair)
		assert.Equal(t, []utils.Triplet{
			{I: 37, J: 0, V: -0.125}, {I: 37, J: 2, V: -0.125}, {I: 37, J: 12, V: 0.125}, {I: 37, J: 14, V: 0.125},
		}, rowEntries(D, 37))
		// boundary shifted by m(n+1)(o-2) columns
		assert.Equal(t, []utils.Triplet{
			{I: 69, J: 12, V: -0.5}, {I: 69, J: 14, V: -0.5}, {I: 69, J: 18, V: 0.5}, {I: 69, J: 20, V: 0.5},
		}, rowEntries(D, 69))
	}
	{
		D := BuildInterpolationCorrection3D(2, 4, 2, CurvilinearEdgePair)
		assert.Equal(t, []utils.Triplet{
			{I: 33, J: 0, V: -0.25}, {I: 33, J: 4, V: 0.25}, {I: 33, J: 8, V: -0.25}, {I: 33, J: 12, V: 0.25},
		}, rowEntries(D, 33))
		// boundary shifted by m(n-2) columns, then repeated in the next plane
		assert.Equal(t, []utils.Triplet{
			{I: 41, J: 4, V: -0.5}, {I: 41, J: 6, V: 0.5}, {I: 41, J: 12, V: -0.5}, {I: 41, J: 14, V: 0.5},
		}, rowEntries(D, 41))
		assert.Equal(t, []utils.Triplet{
			{I: 66, J: 13, V: -0.5}, {I: 66, J: 15, V: 0.5}, {I: 66, J: 21, V: -0.5}, {I: 66, J: 23, V: 0.5},
		}, rowEntries(D, 66))
	}
}

func TestInterpolationCurvilinearGolden(t *testing.T) {
	g := goldie.New(t)
	for _, tc := range []struct {
		tag     Topology
		m, n, o int
	}{
		{CurvilinearPlain, 2, 2, 4},
		{CurvilinearPlainPair, 2, 2, 4},
		{CurvilinearEdge, 2, 2, 3},
		{CurvilinearEdgePair, 2, 4, 2},
	} {
		var (
			D   = BuildInterpolationCorrection3D(tc.m, tc.n, tc.o, tc.tag)
			buf bytes.Buffer
		)
		require.NoError(t, D.WriteMatrixMarket(&buf))
		g.Assert(t, D.Name(), buf.Bytes())
	}
}
