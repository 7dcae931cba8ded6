package correction

// InterpolationShape is the closed form output shape of the interpolation
// correction for the grid and tag. The grid and tag are assumed valid.
func InterpolationShape(g Grid, t Topology) (nr, nc int) {
	var (
		m, n, o = g.M, g.N, g.O
		P       = (m + 2) * (n + 2)
	)
	if !g.Is3D() {
		switch t {
		case PlainNeumann:
			return 2*(m+3) + 2 + 2*m + (n-2)*(m+2), (m + 1) * n
		case Edge:
			return (m + 3) + n*(m+2) + (m + 1), (n + 1) * m
		}
		return
	}
	switch t {
	case PlainNeumann, Edge:
		nr2, nc2 := InterpolationShape(g.plane(), t)
		return 2*P + o*nr2, o * nc2
	case CurvilinearPlain:
		return 2*P + 2*n*(m+2) + 2*(m+2) + (o-2)*P + 2*m + 4, (m + 1) * n * o
	case CurvilinearPlainPair:
		return 2*P + 2*n*(m+2) + 2*(m+2) + (o-2)*P + 2*m + 4, m * (n + 1) * o
	case CurvilinearEdge, CurvilinearEdgePair:
		return (P + m + 3) + o*P + ((m+2)*n + m + 1), (o + 1) * n * m
	}
	return
}

// DivergenceShape is the closed form output shape of the divergence
// correction for the grid and tag. The grid and tag are assumed valid.
func DivergenceShape(g Grid, t Topology) (nr, nc int) {
	var (
		m, n, o = g.M, g.N, g.O
	)
	if !g.Is3D() {
		switch t {
		case PlainNeumann:
			return n * (m + 1), (n + 1) * m
		case Edge:
			return (n + 1) * m, n * (m + 1)
		}
		return
	}
	switch t {
	case PlainNeumann:
		return n * o * (m + 1), n*o*m + m*o
	case Edge:
		return o * (n + 1) * m, o * n * (m + 1)
	case CurvilinearPlain:
		return n * o * (m + 1), n*o*m + m*n
	case CurvilinearPlainPair:
		return m * o * (n + 1), m*o*n + m*n
	case CurvilinearEdge:
		return n * (o + 1) * m, n * o * (m + 1)
	case CurvilinearEdgePair:
		return m * n * (o + 1), m*n*o + m*o
	}
	return
}
