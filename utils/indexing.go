package utils

import (
	"fmt"
)

// Index2D holds matched row and column coordinates, one pair per entry
type Index2D struct {
	RI, CI Index
	Len    int
}

func NewIndex2D(RI, CI Index) (I2 Index2D, err error) {
	if len(RI) != len(CI) {
		err = fmt.Errorf("lengths of row and column indices must be the same: nr, nc = %v, %v", len(RI), len(CI))
		return
	}
	return Index2D{
		RI:  RI,
		CI:  CI,
		Len: len(RI),
	}, nil
}

// Append adds the coordinate pairs of J after those of I2, does not change receiver
func (I2 Index2D) Append(J Index2D) (R Index2D) {
	R = Index2D{
		RI:  I2.RI.Concat(J.RI),
		CI:  I2.CI.Concat(J.CI),
		Len: I2.Len + J.Len,
	}
	return
}

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

// NewConst returns N copies of val
func NewConst(N, val int) (r Index) {
	r = make(Index, N)
	for i := range r {
		r[i] = val
	}
	return
}

func (I Index) Add(val int) (r Index) {
	r = make(Index, len(I))
	for i, ival := range I {
		r[i] = val + ival
	}
	return r
}

func (I Index) Concat(J Index) (r Index) {
	r = make(Index, 0, len(I)+len(J))
	r = append(r, I...)
	r = append(r, J...)
	return
}

// Repeat stacks N copies of I end to end
func (I Index) Repeat(N int) (r Index) {
	r = make(Index, 0, N*len(I))
	for n := 0; n < N; n++ {
		r = append(r, I...)
	}
	return
}
