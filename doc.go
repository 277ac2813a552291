/*
 * doc.go, part of govasp.
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

//Package vasp extracts training data for machine-learning interatomic
//potentials from the output files of a VASP calculation. ParseDir walks a
//run directory (OSZICAR, vasprun.xml, OUTCAR, plain or gzipped) and returns
//the per-ionic-step structures, energies, forces, magnetic moments and
//stresses as a Dataset, optionally writing a JSON snapshot of it.
//SolveChargeByMag post-processes a Structure, inferring integer oxidation
//states from per-site magnetic moments through per-element ranges.
//
//The heavy lifting on each file lives in the oszicar, vasprun and outcar
//subpackages; this package glues them together and holds the Structure and
//Dataset types they feed.
package vasp
