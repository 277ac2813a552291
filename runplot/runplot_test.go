/*
 * runplot_test.go, part of govasp.
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

package runplot

import (
	"path/filepath"
	"testing"

	vasp "github.com/materialsio/govasp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestEnergy(t *testing.T) {
	d, err := vasp.ParseDir("../test/run1")
	require.NoError(t, err)
	p, err := Energy(d, "relaxation")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "relaxation", p.Title.Text)
	//writable as a regular plot
	out := filepath.Join(t.TempDir(), "energy.png")
	require.NoError(t, p.Save(10*vg.Centimeter, 10*vg.Centimeter, out))
}

func TestEnergyEmpty(t *testing.T) {
	_, err := Energy(nil, "x")
	require.Error(t, err)
	_, err = Energy(new(vasp.Dataset), "x")
	require.Error(t, err)
}

func TestMagmoms(t *testing.T) {
	d, err := vasp.ParseDir("../test/run1")
	require.NoError(t, err)
	p, err := Magmoms(d, 0, "moments")
	require.NoError(t, err)
	require.NotNil(t, p)

	_, err = Magmoms(d, 5, "moments")
	require.Error(t, err)
	_, err = Magmoms(d, -1, "moments")
	require.Error(t, err)
}
