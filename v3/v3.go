/*
 * v3.go, part of govasp.
 *
 * Copyright 2023 The govasp authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package v3 implements matrices of 3D vectors (Nx3 matrices) on top of
//gonum's mat.Dense. Within the package it is understood that a "vector" is
//a row vector, i.e. the cartesian or fractional coordinates of a point in
//3D space, a force acting on an atom, or one row of a 3x3 tensor.
package v3

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. It must be able to implement any
//gonum interface through the embedded Dense.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the embedded mat.Dense of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a mat.Dense into a Matrix. It panics if A does not
//have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(fmt.Sprintf("Dense2Matrix: given matrix has %d columns, need 3", c))
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//FromRows builds a Matrix from a slice of rows, each of which must have
//exactly 3 elements.
func FromRows(rows [][]float64) (*Matrix, error) {
	data := make([]float64, 0, 3*len(rows))
	for i, r := range rows {
		if len(r) != 3 {
			return nil, Error{fmt.Sprintf("row %d has %d elements, need 3", i, len(r)), []string{"FromRows"}, true}
		}
		data = append(data, r...)
	}
	return NewMatrix(data)
}

//Zeros returns a zero-initialized Matrix with the given number of vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//VecView returns a view of the i-th vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Vec returns a copy of the i-th vector of F as a 3-element slice.
func (F *Matrix) Vec(i int) []float64 {
	ret := make([]float64, 3)
	copy(ret, F.Dense.RawRowView(i))
	return ret
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic("NVecs: malformed Matrix")
	}
	return r
}

//Clone returns a deep copy of F.
func (F *Matrix) Clone() *Matrix {
	if F == nil || F.Dense == nil {
		return nil
	}
	ret := mat.DenseCopyOf(F.Dense)
	return &Matrix{ret}
}

//Rows returns the contents of F as a newly allocated slice of rows.
func (F *Matrix) Rows() [][]float64 {
	r := F.NVecs()
	ret := make([][]float64, r)
	for i := 0; i < r; i++ {
		ret[i] = F.Vec(i)
	}
	return ret
}

//String returns a one-line representation of F, mostly for debugging.
func (F *Matrix) String() string {
	if F == nil || F.Dense == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v", mat.Formatted(F.Dense, mat.Prefix(""), mat.Squeeze()))
}

//MarshalJSON serializes F as a JSON array of 3-element rows.
func (F *Matrix) MarshalJSON() ([]byte, error) {
	if F.Dense == nil {
		return []byte("null"), nil
	}
	return json.Marshal(F.Rows())
}

//UnmarshalJSON fills F from a JSON array of 3-element rows.
func (F *Matrix) UnmarshalJSON(b []byte) error {
	var rows [][]float64
	if err := json.Unmarshal(b, &rows); err != nil {
		return err
	}
	m, err := FromRows(rows)
	if err != nil {
		return err
	}
	F.Dense = m.Dense
	return nil
}

//Errors

//Error is the v3 implementation of the library-wide decorated error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error and returns the resulting
//decoration slice. An empty string only queries the current value.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }
