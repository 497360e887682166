// Package matrix 7 feb 2018, ints added for the aligner.
// Make a 2D array of ints which lives on one backing slice.
// You can declare an IMatrix2d. This will have zero space allocated.
// Before you use it, call Resize. This will do the allocation.
// If you want to use matrices whose size changes on iterations of a loop,
// as an aligner does from one pair of sequences to the next, declare the
// matrix once and call Resize on each iteration. The backing store only
// grows, and the row slices are set up again to suit the new shape.
// Resize does not clear old contents. The caller is expected to write
// every cell it reads.
// With zero columns, you get n_row rows pointing at empty slices.
// With zero rows, nothing is allocated and Size returns 0, 0.

package matrix

import (
	"fmt"
	"strings"
)

// IMatrix2d is a two dimensional array of ints
type IMatrix2d struct {
	Mat      [][]int
	fullData []int
}

// fixSlices sets the pointers in a matrix.
// It is in its own function so we can call it for new objects
// or when resizing an old one.
func (mat *IMatrix2d) fixSlices(n_r, n_c int) {
	tmp := mat.fullData
	if cap(mat.Mat) >= n_r {
		mat.Mat = mat.Mat[:n_r]
	} else {
		mat.Mat = make([][]int, n_r)
	}
	for i := range mat.Mat {
		mat.Mat[i] = tmp[:n_c:n_c]
		tmp = tmp[n_c:]
	}
}

// Resize takes a matrix and desired size. If the backing array is too
// small, it is reallocated. Otherwise the rows are laid out again over
// the old storage.
// It will not reduce the space held by a matrix.
func (mat *IMatrix2d) Resize(n_r, n_c int) *IMatrix2d {
	if nrow, ncol := mat.Size(); nrow == n_r && ncol == n_c {
		return mat
	}
	if n_r*n_c > len(mat.fullData) {
		mat.fullData = make([]int, n_r*n_c)
	}
	mat.fixSlices(n_r, n_c)
	return mat
}

// Size returns the number of rows and number of columns
func (mat *IMatrix2d) Size() (nrow, ncol int) {
	if nrow = len(mat.Mat); nrow == 0 {
		return 0, 0
	}
	ncol = len(mat.Mat[0])
	return
}

// Last returns the bottom right element. For an alignment grid, this
// is the score of the best global alignment.
func (mat *IMatrix2d) Last() int {
	nrow, ncol := mat.Size()
	return mat.Mat[nrow-1][ncol-1]
}

// String returns the matrix printed out in a form that might be useful
// for debugging.
func (mat *IMatrix2d) String() string {
	var b strings.Builder
	for _, row := range mat.Mat {
		for _, x := range row {
			fmt.Fprintf(&b, "%5d", x)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
