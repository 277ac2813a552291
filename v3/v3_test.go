/*
 * v3_test.go, part of govasp.
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

package v3

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NVecs())
	assert.Equal(t, 5.0, m.At(1, 1))

	_, err = NewMatrix([]float64{1, 2, 3, 4})
	require.Error(t, err)
	verr, ok := err.(Error)
	require.True(t, ok)
	assert.True(t, verr.Critical())
}

func TestFromRows(t *testing.T) {
	m, err := FromRows([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, m.Vec(1))

	_, err = FromRows([][]float64{{1, 2}})
	require.Error(t, err)
}

func TestViewsShareMemory(t *testing.T) {
	m := Zeros(3)
	v := m.VecView(1)
	v.Set(0, 2, 7.5)
	assert.Equal(t, 7.5, m.At(1, 2))
	//Vec is a copy, not a view
	c := m.Vec(1)
	c[2] = 0
	assert.Equal(t, 7.5, m.At(1, 2))
}

func TestDense2Matrix(t *testing.T) {
	d := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	m := Dense2Matrix(d)
	assert.Equal(t, 2, m.NVecs())
	assert.Panics(t, func() { Dense2Matrix(mat.NewDense(2, 2, nil)) })
}

func TestClone(t *testing.T) {
	m, err := NewMatrix([]float64{1, 2, 3})
	require.NoError(t, err)
	c := m.Clone()
	c.Set(0, 0, 9)
	assert.Equal(t, 1.0, m.At(0, 0))
	var nilm *Matrix
	assert.Nil(t, nilm.Clone())
}

func TestJSONRoundTrip(t *testing.T) {
	m, err := NewMatrix([]float64{1.5, -2.25, 3, 0.1, 0, -0.3})
	require.NoError(t, err)
	b, err := json.Marshal(m)
	require.NoError(t, err)
	back := new(Matrix)
	require.NoError(t, json.Unmarshal(b, back))
	assert.Equal(t, m, back)
}
