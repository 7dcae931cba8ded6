package correction

import (
	"fmt"
)

// Grid holds the cell counts along each axis, O is unused on a 2-D grid
type Grid struct {
	M, N, O int
	threeD  bool
}

func NewGrid2D(m, n int) Grid {
	return Grid{M: m, N: n}
}

func NewGrid3D(m, n, o int) Grid {
	return Grid{M: m, N: n, O: o, threeD: true}
}

func (g Grid) Is3D() bool { return g.threeD }

func (g Grid) Dimensions() int {
	if g.Is3D() {
		return 3
	}
	return 2
}

// plane drops the third axis
func (g Grid) plane() Grid {
	return Grid{M: g.M, N: g.N}
}

func (g Grid) String() string {
	if g.Is3D() {
		return fmt.Sprintf("%dx%dx%d", g.M, g.N, g.O)
	}
	return fmt.Sprintf("%dx%d", g.M, g.N)
}

// minimum cell counts per axis
type minimums struct {
	m, n, o int
}

var (
	interpolationMinimums = [2]map[Topology]minimums{
		{
			PlainNeumann: {1, 2, 0},
			Edge:         {2, 1, 0},
		},
		{
			PlainNeumann:         {1, 2, 1},
			Edge:                 {2, 1, 1},
			CurvilinearPlain:     {1, 1, 2},
			CurvilinearPlainPair: {1, 1, 2},
			CurvilinearEdge:      {2, 1, 1},
			CurvilinearEdgePair:  {1, 2, 1},
		},
	}
	divergenceMinimums = [2]map[Topology]minimums{
		{
			PlainNeumann: {3, 1, 0},
			Edge:         {1, 3, 0},
		},
		{
			PlainNeumann:         {1, 1, 1},
			Edge:                 {1, 1, 1},
			CurvilinearPlain:     {1, 1, 1},
			CurvilinearPlainPair: {1, 1, 1},
			CurvilinearEdge:      {1, 1, 1},
			CurvilinearEdgePair:  {1, 1, 1},
		},
	}
)

// ValidateInterpolation checks the grid and tag against the interpolation-correction preconditions
func (g Grid) ValidateInterpolation(t Topology) error {
	return g.validate("interpolation correction", t, interpolationMinimums)
}

// ValidateDivergence checks the grid and tag against the divergence-correction preconditions
func (g Grid) ValidateDivergence(t Topology) error {
	return g.validate("divergence correction", t, divergenceMinimums)
}

func (g Grid) validate(family string, t Topology, table [2]map[Topology]minimums) (err error) {
	var (
		dims = g.Dimensions()
	)
	if !t.valid() || (dims == 2 && !t.Supports2D()) {
		return fmt.Errorf("%s %dD: %w: %v", family, dims, ErrUnsupportedTopology, t)
	}
	min := table[dims-2][t]
	if g.M < min.m || g.N < min.n || (dims == 3 && g.O < min.o) {
		if dims == 2 {
			return fmt.Errorf("%s 2D %v: %w: have m,n = %d,%d, need at least %d,%d",
				family, t, ErrGridTooSmall, g.M, g.N, min.m, min.n)
		}
		return fmt.Errorf("%s 3D %v: %w: have m,n,o = %d,%d,%d, need at least %d,%d,%d",
			family, t, ErrGridTooSmall, g.M, g.N, g.O, min.m, min.n, min.o)
	}
	return
}
