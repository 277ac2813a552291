/*
 * atomicdata.go, part of govasp.
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

//A map for assigning mass to elements.
//Note that just the elements common in battery and magnetic materials plus
//the usual light elements are present. Unknown symbols are reported by
//Masses as an error, not silently zeroed.
var symbolMass = map[string]float64{
	"H":  1.008,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 51.996,
	"Mn": 54.94,
	"Fe": 55.84,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Se": 78.96,
	"Br": 79.904,
	"Zr": 91.22,
	"Nb": 92.91,
	"Mo": 95.95,
	"I":  126.90,
	"W":  183.84,
}

//Default tables for the oxidation-state solver. These are plain
//configuration data; callers override them per-invocation through
//SolveOption, they are never mutated.
var defaultOxidation = map[string]int{
	"Li": 1,
	"O":  -2,
}

var defaultOxRanges = map[string][]OxRange{
	"Mn": {
		{0.5, 1.5, 2},
		{1.5, 2.5, 3},
		{2.5, 3.5, 4},
		{3.5, 4.2, 3},
		{4.2, 5.0, 2},
	},
}
