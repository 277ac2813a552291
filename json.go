/*
 * json.go, part of govasp.
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
	"bufio"
	"encoding/json"
	"os"

	v3 "github.com/materialsio/govasp/v3"
)

//jsonStructure is a ready-to-serialize mirror of Structure, its
//"dictionary representation". Structures are written in this form both by
//MarshalJSON and inside Dataset snapshots.
type jsonStructure struct {
	Lattice         [][]float64          `json:"lattice"`
	Species         []string             `json:"species"`
	FracCoords      [][]float64          `json:"frac_coords"`
	OxidationStates []int                `json:"oxidation_states,omitempty"`
	SiteProperties  map[string][]float64 `json:"site_properties,omitempty"`
}

//MarshalJSON serializes the structure in its dictionary representation.
//Oxidation states are included only when every site carries one.
func (S *Structure) MarshalJSON() ([]byte, error) {
	j := jsonStructure{
		Lattice:    S.Lattice.Rows(),
		Species:    make([]string, S.Len()),
		FracCoords: S.Coords.Rows(),
	}
	for i, site := range S.Sites {
		j.Species[i] = site.Symbol
	}
	if _, ok := S.TotalCharge(); ok && S.Len() > 0 {
		j.OxidationStates = make([]int, S.Len())
		for i, site := range S.Sites {
			j.OxidationStates[i] = site.OxState
		}
	}
	if len(S.props) > 0 {
		j.SiteProperties = S.props
	}
	return json.Marshal(j)
}

//UnmarshalJSON rebuilds a structure from its dictionary representation.
func (S *Structure) UnmarshalJSON(b []byte) error {
	var j jsonStructure
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	lattice, err := v3.FromRows(j.Lattice)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	coords, err := v3.FromRows(j.FracCoords)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	news, err := NewStructure(lattice, j.Species, coords)
	if err != nil {
		return errDecorate(err, "UnmarshalJSON")
	}
	if j.OxidationStates != nil {
		if err := news.AddOxidationStateBySite(j.OxidationStates); err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
	}
	for name, vals := range j.SiteProperties {
		if err := news.SetSiteProperty(name, vals); err != nil {
			return errDecorate(err, "UnmarshalJSON")
		}
	}
	*S = *news
	return nil
}

//SaveJSON writes the dataset to path as a single JSON snapshot, with each
//structure in its dictionary representation. There is no partial-failure
//recovery: any I/O error propagates.
func (d *Dataset) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	return w.Flush()
}

//ReadJSON reads back a dataset snapshot written by SaveJSON.
func ReadJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseError{UnableToOpen, path, []string{"ReadJSON"}, true}
	}
	defer f.Close()
	d := new(Dataset)
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(d); err != nil {
		return nil, err
	}
	return d, nil
}
