package utils

const (
	NODETOL = 1.e-12
)

// Axis selects the dimension along which entries of a matrix are moved
type Axis uint8

const (
	RowAxis Axis = iota // entries move between rows, columns are untouched
	ColAxis             // entries move between columns, rows are untouched
)

func (a Axis) String() string {
	switch a {
	case RowAxis:
		return "row"
	case ColAxis:
		return "column"
	}
	return "unknown"
}

// modulo with a non-negative result for any sign of i
func mod(i, n int) int {
	if n == 0 {
		return 0
	}
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
