/*
 * solve.go, part of govasp.
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

import "log"

//OxRange maps the half-open magnetic-moment interval [Min, Max) to a
//formal oxidation state. Per-element tables are ordered slices: lookup
//takes the first matching interval, and overlaps are not validated.
type OxRange struct {
	Min float64
	Max float64
	Ox  int
}

type solveOptions struct {
	defaultOx map[string]int
	oxRanges  map[string][]OxRange
}

//SolveOption modifies the behavior of SolveChargeByMag.
type SolveOption func(*solveOptions)

// DefaultOx replaces the fixed per-element oxidation states used for
// elements without a range table. The built-in table is {Li: 1, O: -2}.
func DefaultOx(m map[string]int) SolveOption {
	return func(o *solveOptions) { o.defaultOx = m }
}

// OxRanges replaces the per-element moment-to-oxidation-state range
// tables. The built-in table covers Mn only:
// [0.5,1.5)->2 [1.5,2.5)->3 [2.5,3.5)->4 [3.5,4.2)->3 [4.2,5.0)->2.
func OxRanges(m map[string][]OxRange) SolveOption {
	return func(o *solveOptions) { o.oxRanges = m }
}

// SolveChargeByMag infers integer oxidation states from the per-site
// magnetic moments of s, read from the "final_magmom" site property with
// "magmom" as the fallback. Each site is resolved through its element's
// range table, or through the fixed default for elements without one.
// If every site resolves, a decorated copy of s is returned with ok true
// and the total charge is logged; if any site fails to resolve, the result
// is (nil, false) and a diagnostic is logged. s itself is never modified.
func SolveChargeByMag(s *Structure, options ...SolveOption) (*Structure, bool) {
	opt := solveOptions{defaultOx: defaultOxidation, oxRanges: defaultOxRanges}
	for _, o := range options {
		o(&opt)
	}
	out := s.Copy()
	out.RemoveOxidationStates()
	magmoms := s.SiteProperty("final_magmom")
	if magmoms == nil {
		magmoms = s.SiteProperty("magmom")
	}
	ox := make([]int, 0, out.Len())
	solved := true
	for i, site := range out.Sites {
		assigned := false
		if ranges, ok := opt.oxRanges[site.Symbol]; ok {
			if magmoms != nil && i < len(magmoms) {
				m := magmoms[i]
				for _, r := range ranges {
					if r.Min <= m && m < r.Max {
						ox = append(ox, r.Ox)
						assigned = true
						break
					}
				}
			}
		} else if v, ok := opt.defaultOx[site.Symbol]; ok {
			ox = append(ox, v)
			assigned = true
		}
		if !assigned {
			solved = false
		}
	}
	if !solved {
		log.Printf("vasp: failed to solve oxidation states")
		return nil, false
	}
	if err := out.AddOxidationStateBySite(ox); err != nil {
		log.Printf("vasp: failed to solve oxidation states: %v", err)
		return nil, false
	}
	total, _ := out.TotalCharge()
	log.Printf("vasp: solved oxidation states, total charge %d", total)
	return out, true
}
