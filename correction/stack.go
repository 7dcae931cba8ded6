package correction

import (
	"fmt"

	"github.com/notargets/mimetic/utils"
)

// stage is one named piece of an operator together with the shape derived for
// it from the cell counts
type stage struct {
	name       string
	rows, cols int
	M          utils.DOK
}

func block(name string, rows, cols int, M utils.DOK) stage {
	return stage{name, rows, cols, M}
}

func zero(name string, rows, cols int) stage {
	return stage{name, rows, cols, utils.NewDOK(rows, cols)}
}

func (s stage) check() {
	if nr, nc := s.M.Dims(); nr != s.rows || nc != s.cols {
		panic(fmt.Errorf("stage %q is %dx%d, derived %dx%d", s.name, nr, nc, s.rows, s.cols))
	}
}

// stackVert folds the stages top down through the pairwise utils.JoinVert
func stackVert(stages ...stage) (R utils.DOK) {
	for n, s := range stages {
		s.check()
		if n == 0 {
			R = s.M
			continue
		}
		R = utils.JoinVert(R, s.M)
	}
	return
}

// stackHorz folds the stages left to right through the pairwise utils.JoinHorz
func stackHorz(stages ...stage) (R utils.DOK) {
	for n, s := range stages {
		s.check()
		if n == 0 {
			R = s.M
			continue
		}
		R = utils.JoinHorz(R, s.M)
	}
	return
}
