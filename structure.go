/*
 * structure.go, part of govasp.
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
	"fmt"

	v3 "github.com/materialsio/govasp/v3"
)

/**Note: several functions here panic instead of returning errors. This is
 * because they are "fundamental" functions. If something goes wrong here,
 * the program is way-most likely wrong and should crash.**/

//Site contains everything about one atom of a Structure except for its
//coordinates, which are kept in the Coords matrix of the Structure.
type Site struct {
	Symbol  string
	OxState int
	OxSet   bool //whether OxState has been assigned.
}

//Copy returns a copy of the Site object.
func (S *Site) Copy() *Site {
	if S == nil {
		panic("Attempted to copy a nil site")
	}
	news := new(Site)
	news.Symbol = S.Symbol
	news.OxState = S.OxState
	news.OxSet = S.OxSet
	return news
}

//Structure is a periodic arrangement of sites: a lattice (rows are the
//lattice vectors, in Angstrom), the sites, their fractional coordinates
//(one row per site, same order) and named per-site float properties such
//as "magmom".
type Structure struct {
	Lattice *v3.Matrix //3x3
	Coords  *v3.Matrix //fractional, NVecs()==len(Sites)
	Sites   []*Site
	props   map[string][]float64
}

//NewStructure builds a Structure from a 3x3 lattice, the per-site symbols
//and the matching fractional coordinates.
func NewStructure(lattice *v3.Matrix, symbols []string, coords *v3.Matrix) (*Structure, error) {
	if lattice == nil || coords == nil {
		return nil, ParseError{"nil lattice or coordinates", "", []string{"NewStructure"}, true}
	}
	if r := lattice.NVecs(); r != 3 {
		return nil, ParseError{fmt.Sprintf("lattice has %d vectors, need 3", r), "", []string{"NewStructure"}, true}
	}
	if coords.NVecs() != len(symbols) {
		return nil, ParseError{fmt.Sprintf("%d coordinates for %d sites", coords.NVecs(), len(symbols)), "", []string{"NewStructure"}, true}
	}
	sites := make([]*Site, len(symbols))
	for i, s := range symbols {
		sites[i] = &Site{Symbol: s}
	}
	return &Structure{Lattice: lattice, Coords: coords, Sites: sites}, nil
}

//Len returns the number of sites in the structure.
func (S *Structure) Len() int {
	return len(S.Sites)
}

//Copy returns a deep copy of the Structure.
func (S *Structure) Copy() *Structure {
	if S == nil {
		panic("Attempted to copy a nil structure")
	}
	news := new(Structure)
	news.Lattice = S.Lattice.Clone()
	news.Coords = S.Coords.Clone()
	news.Sites = make([]*Site, len(S.Sites))
	for i, s := range S.Sites {
		news.Sites[i] = s.Copy()
	}
	if S.props != nil {
		news.props = make(map[string][]float64, len(S.props))
		for k, v := range S.props {
			nv := make([]float64, len(v))
			copy(nv, v)
			news.props[k] = nv
		}
	}
	return news
}

//SiteProperty returns the named per-site property, or nil if the structure
//does not carry it. The returned slice is the live one, not a copy.
func (S *Structure) SiteProperty(name string) []float64 {
	if S.props == nil {
		return nil
	}
	return S.props[name]
}

//SetSiteProperty attaches a named per-site property. vals must have one
//element per site.
func (S *Structure) SetSiteProperty(name string, vals []float64) error {
	if len(vals) != S.Len() {
		return ParseError{fmt.Sprintf("%d values for property %q, %d sites", len(vals), name, S.Len()), "", []string{"SetSiteProperty"}, true}
	}
	if S.props == nil {
		S.props = make(map[string][]float64)
	}
	S.props[name] = vals
	return nil
}

//SitePropertyNames returns the names of the properties the structure
//carries, in no particular order.
func (S *Structure) SitePropertyNames() []string {
	names := make([]string, 0, len(S.props))
	for k := range S.props {
		names = append(names, k)
	}
	return names
}

//RemoveOxidationStates strips any oxidation-state decoration from all
//sites.
func (S *Structure) RemoveOxidationStates() {
	for _, site := range S.Sites {
		site.OxState = 0
		site.OxSet = false
	}
}

//AddOxidationStateBySite decorates the sites with the given oxidation
//states, one per site, in site order.
func (S *Structure) AddOxidationStateBySite(ox []int) error {
	if len(ox) != S.Len() {
		return ParseError{fmt.Sprintf("%d oxidation states for %d sites", len(ox), S.Len()), "", []string{"AddOxidationStateBySite"}, true}
	}
	for i, site := range S.Sites {
		site.OxState = ox[i]
		site.OxSet = true
	}
	return nil
}

//TotalCharge returns the sum of the assigned oxidation states, and whether
//every site actually carries one.
func (S *Structure) TotalCharge() (int, bool) {
	total := 0
	for _, site := range S.Sites {
		if !site.OxSet {
			return 0, false
		}
		total += site.OxState
	}
	return total, true
}

//Composition returns the number of sites of each element.
func (S *Structure) Composition() map[string]int {
	comp := make(map[string]int)
	for _, site := range S.Sites {
		comp[site.Symbol]++
	}
	return comp
}

//Masses returns a slice with the masses of all sites, in site order. It
//fails on the first symbol missing from the element table.
func (S *Structure) Masses() ([]float64, error) {
	masses := make([]float64, S.Len())
	for i, site := range S.Sites {
		m, ok := symbolMass[site.Symbol]
		if !ok {
			return nil, ParseError{fmt.Sprintf("no mass for element %q", site.Symbol), "", []string{"Masses"}, false}
		}
		masses[i] = m
	}
	return masses, nil
}
