/*
 * structure_test.go, part of govasp.
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

package vasp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureBasics(t *testing.T) {
	s := testStructure(t, []string{"Mn", "O", "O"})
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, map[string]int{"Mn": 1, "O": 2}, s.Composition())

	masses, err := s.Masses()
	require.NoError(t, err)
	assert.InDelta(t, 54.94, masses[0], 1e-9)
	assert.InDelta(t, 16.00, masses[1], 1e-9)

	assert.Error(t, s.SetSiteProperty("magmom", []float64{1.0})) //wrong length
	require.NoError(t, s.SetSiteProperty("magmom", []float64{4.5, 0.1, 0.1}))
	assert.Equal(t, []string{"magmom"}, s.SitePropertyNames())
}

func TestStructureUnknownMass(t *testing.T) {
	s := testStructure(t, []string{"Xx"})
	_, err := s.Masses()
	require.Error(t, err)
}

func TestStructureCopyIsDeep(t *testing.T) {
	s := testStructure(t, []string{"Mn", "O"})
	require.NoError(t, s.SetSiteProperty("magmom", []float64{4.5, 0.1}))
	c := s.Copy()
	c.Sites[0].Symbol = "Fe"
	c.SiteProperty("magmom")[0] = 0.0
	c.Coords.Set(0, 0, 9.9)
	assert.Equal(t, "Mn", s.Sites[0].Symbol)
	assert.Equal(t, 4.5, s.SiteProperty("magmom")[0])
	assert.Equal(t, 0.0, s.Coords.At(0, 0))
}

func TestStructureOxidationStates(t *testing.T) {
	s := testStructure(t, []string{"Li", "O"})
	_, all := s.TotalCharge()
	assert.False(t, all)
	assert.Error(t, s.AddOxidationStateBySite([]int{1})) //wrong length
	require.NoError(t, s.AddOxidationStateBySite([]int{1, -2}))
	total, all := s.TotalCharge()
	assert.True(t, all)
	assert.Equal(t, -1, total)
	s.RemoveOxidationStates()
	_, all = s.TotalCharge()
	assert.False(t, all)
}

func TestStructureJSONRoundTrip(t *testing.T) {
	s := testStructure(t, []string{"Li", "O"})
	require.NoError(t, s.SetSiteProperty("magmom", []float64{0.01, 0.02}))
	require.NoError(t, s.AddOxidationStateBySite([]int{1, -2}))
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"lattice"`)
	assert.Contains(t, string(b), `"frac_coords"`)
	back := new(Structure)
	require.NoError(t, json.Unmarshal(b, back))
	assert.Equal(t, s, back)
}

func TestStructureJSONNoOxStates(t *testing.T) {
	s := testStructure(t, []string{"Li", "O"})
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "oxidation_states")
	back := new(Structure)
	require.NoError(t, json.Unmarshal(b, back))
	assert.Equal(t, s, back)
}
