/*
 * parse.go, part of govasp.
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
	"log"
	"os"
	"path/filepath"

	"github.com/materialsio/govasp/oszicar"
	"github.com/materialsio/govasp/outcar"
	"github.com/materialsio/govasp/vasprun"
	v3 "github.com/materialsio/govasp/v3"
)

//Dataset is the training data extracted from one VASP run: one entry per
//surviving ionic step in each sequence. Stresses is nil when the run never
//reports a stress tensor, in which case the key is absent from the JSON
//snapshot as well.
type Dataset struct {
	Structures             []*Structure `json:"structure"`
	UncorrectedTotalEnergy []float64    `json:"uncorrected_total_energy"`
	EnergyPerAtom          []float64    `json:"energy_per_atom"`
	Forces                 []*v3.Matrix `json:"force"`
	Magmoms                [][]float64  `json:"magmom"`
	Stresses               []*v3.Matrix `json:"stress,omitempty"`
}

//Len returns the number of ionic steps in the dataset.
func (d *Dataset) Len() int {
	return len(d.UncorrectedTotalEnergy)
}

type parseOptions struct {
	checkConvergence bool
	savePath         string
}

//Option modifies the behavior of ParseDir.
type Option func(*parseOptions)

// CheckElectronicConvergence controls whether ionic steps whose
// self-consistency loop exhausted the NELM iteration budget are dropped.
// The default is true.
func CheckElectronicConvergence(check bool) Option {
	return func(o *parseOptions) { o.checkConvergence = check }
}

// SavePath makes ParseDir also write the dataset to the given path as a
// JSON snapshot, with structures in their dictionary representation.
func SavePath(path string) Option {
	return func(o *parseOptions) { o.savePath = path }
}

//The three files of a run, plain and gzipped naming variants.
var plainNames = [3]string{"OSZICAR", "vasprun.xml", "OUTCAR"}
var gzNames = [3]string{"OSZICAR.gz", "vasprun.xml.gz", "OUTCAR.gz"}

// ParseDir extracts the training dataset from the VASP output files in
// root. It locates OSZICAR, vasprun.xml and OUTCAR (or their .gz naming
// variants, chosen together by whichever OSZICAR is present), delegates
// the structured parsing to the oszicar and vasprun packages, recovers the
// per-atom magnetization tables from OUTCAR and aligns them to the ionic
// steps, then assembles one dataset entry per step that passed the
// electronic-convergence filter.
//
// A missing root yields an error for which IsNotFound returns true; a
// missing OSZICAR under both naming variants, or zero surviving ionic
// steps, yield an error for which IsNoData returns true.
func ParseDir(root string, options ...Option) (*Dataset, error) {
	opt := parseOptions{checkConvergence: true}
	for _, o := range options {
		o(&opt)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, ParseError{DirNotFound, root, []string{"ParseDir"}, true}
	}
	names := plainNames
	if !exists(filepath.Join(root, plainNames[0])) {
		if !exists(filepath.Join(root, gzNames[0])) {
			return nil, ParseError{NoData, root, []string{"ParseDir"}, true}
		}
		names = gzNames
	}
	osz, err := oszicar.Read(filepath.Join(root, names[0]))
	if err != nil {
		return nil, errDecorate(err, "ParseDir")
	}
	run, err := vasprun.Read(filepath.Join(root, names[1]))
	if err != nil {
		return nil, errDecorate(err, "ParseDir")
	}
	scan, err := outcar.Scan(filepath.Join(root, names[2]))
	if err != nil {
		return nil, errDecorate(err, "ParseDir")
	}
	tables := outcar.AlignTables(scan, osz.Len())

	natoms := run.NAtoms()
	d := new(Dataset)
	stressPresent := len(run.IonicSteps) > 0 && run.IonicSteps[0].Stress != nil
	noTable := 0
	for i, step := range run.IonicSteps {
		if opt.checkConvergence && step.NElectronicSteps >= run.NElm {
			continue
		}
		var table outcar.Table
		if len(tables) != 0 && i < len(tables) {
			table = tables[i]
		}
		s, err := structureFromStep(run.Species, &step, table)
		if err != nil {
			return nil, errDecorate(err, "ParseDir")
		}
		d.Structures = append(d.Structures, s)
		d.UncorrectedTotalEnergy = append(d.UncorrectedTotalEnergy, step.E0Energy)
		d.EnergyPerAtom = append(d.EnergyPerAtom, step.E0Energy/float64(natoms))
		d.Forces = append(d.Forces, step.Forces)
		if table != nil {
			d.Magmoms = append(d.Magmoms, table.Tots())
		} else if len(tables) != 0 {
			noTable++
		}
		if stressPresent {
			d.Stresses = append(d.Stresses, step.Stress)
		}
	}
	if noTable > 0 {
		log.Printf("vasp: %d ionic steps without a magnetization table, magmom sequence is shorter than the structures", noTable)
	}
	if len(d.UncorrectedTotalEnergy) == 0 {
		return nil, ParseError{NoData, root, []string{"ParseDir"}, true}
	}
	if opt.savePath != "" {
		if err := d.SaveJSON(opt.savePath); err != nil {
			return nil, err
		}
	}
	return d, nil
}

//structureFromStep builds a Structure from one vasprun ionic step,
//attaching the step's per-atom total moments as the "magmom" site property
//when a magnetization table was recovered for it.
func structureFromStep(species []string, step *vasprun.IonicStep, table outcar.Table) (*Structure, error) {
	if step.Structure == nil {
		return nil, ParseError{"ionic step without structure", "", []string{"structureFromStep"}, true}
	}
	s, err := NewStructure(step.Structure.Lattice, species, step.Structure.Positions)
	if err != nil {
		return nil, errDecorate(err, "structureFromStep")
	}
	if table != nil {
		tots := table.Tots()
		if len(tots) == s.Len() {
			s.SetSiteProperty("magmom", tots)
		}
	}
	return s, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
