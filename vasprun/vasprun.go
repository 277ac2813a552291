/*
 * vasprun.go, part of govasp.
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

//Package vasprun parses the structured vasprun.xml output of a VASP run
//into ordered ionic steps, each with its energies, forces, structure,
//optional stress tensor and electronic-step count. The file is walked with
//a streaming decoder; only one <calculation> block is materialized at a
//time. Both vasprun.xml and vasprun.xml.gz are accepted.
package vasprun

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	v3 "github.com/materialsio/govasp/v3"
	"golang.org/x/text/encoding/charmap"
)

//Crystal is the lattice (rows are lattice vectors, Angstrom) and the
//fractional positions of one ionic step.
type Crystal struct {
	Lattice   *v3.Matrix //3x3
	Positions *v3.Matrix //one row per atom
}

//IonicStep is one <calculation> block.
type IonicStep struct {
	Structure        *Crystal
	E0Energy         float64    //energy(sigma->0)
	EFrEnergy        float64    //free energy
	EWoEntrp         float64    //energy without entropy
	Forces           *v3.Matrix //one row per atom, eV/Angstrom
	Stress           *v3.Matrix //3x3 in kBar, nil when the run does not report it
	NElectronicSteps int
}

//Vasprun holds what this library needs from a vasprun.xml: the species in
//atom order, the NELM electronic-iteration budget and the ionic steps.
type Vasprun struct {
	filename   string
	Species    []string
	NElm       int
	IonicSteps []IonicStep
}

//FileName returns the path the file was read from.
func (V *Vasprun) FileName() string {
	return V.filename
}

//NAtoms returns the number of atoms per structure.
func (V *Vasprun) NAtoms() int {
	return len(V.Species)
}

//When NELM is absent from <parameters> VASP ran with its compiled-in
//default.
const defaultNElm = 60

//Read parses a vasprun.xml file, plain or gzipped (by the ".gz" suffix).
func Read(path string) (*Vasprun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen, path, []string{"Read"}, true}
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"Read"}, true}
		}
		defer gz.Close()
		r = gz
	}
	run := &Vasprun{filename: path, NElm: defaultNElm}
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Error{WrongFormat + ": " + err.Error(), path, []string{"Read"}, true}
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "parameters":
			var p separatorXML
			if err := d.DecodeElement(&p, &se); err != nil {
				return nil, Error{WrongFormat + ": " + err.Error(), path, []string{"Read"}, true}
			}
			if v, ok := findIntItem(&p, "NELM"); ok {
				run.NElm = v
			}
		case "array":
			if attrValue(se, "name") != "atoms" {
				continue
			}
			var a arrayXML
			if err := d.DecodeElement(&a, &se); err != nil {
				return nil, Error{WrongFormat + ": " + err.Error(), path, []string{"Read"}, true}
			}
			for _, rc := range a.Set.RC {
				if len(rc.C) == 0 {
					return nil, Error{WrongFormat + ": empty atom record", path, []string{"Read"}, true}
				}
				run.Species = append(run.Species, strings.TrimSpace(rc.C[0]))
			}
		case "calculation":
			var c calculationXML
			if err := d.DecodeElement(&c, &se); err != nil {
				return nil, Error{WrongFormat + ": " + err.Error(), path, []string{"Read"}, true}
			}
			step, err := convertCalculation(&c)
			if err != nil {
				return nil, Error{err.Error(), path, []string{"Read"}, true}
			}
			run.IonicSteps = append(run.IonicSteps, step)
		}
	}
	return run, nil
}

//VASP declares ISO-8859-1 in its XML prolog, and encoding/xml rejects any
//declared encoding other than UTF-8 unless a CharsetReader is set.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "iso8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "us-ascii", "ascii", "utf-8":
		return input, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}

//XML mirror types for the pieces of vasprun.xml this package reads.

type iXML struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type separatorXML struct {
	Name       string         `xml:"name,attr"`
	Items      []iXML         `xml:"i"`
	Separators []separatorXML `xml:"separator"`
}

type varrayXML struct {
	Name string   `xml:"name,attr"`
	V    []string `xml:"v"`
}

type crystalXML struct {
	Varrays []varrayXML `xml:"varray"`
}

type structureXML struct {
	Crystal crystalXML  `xml:"crystal"`
	Varrays []varrayXML `xml:"varray"`
}

type energyXML struct {
	Items []iXML `xml:"i"`
}

type scstepXML struct {
	Energy energyXML `xml:"energy"`
}

type calculationXML struct {
	SCSteps   []scstepXML  `xml:"scstep"`
	Structure structureXML `xml:"structure"`
	Varrays   []varrayXML  `xml:"varray"`
	Energy    energyXML    `xml:"energy"`
}

type rcXML struct {
	C []string `xml:"c"`
}

type setXML struct {
	RC []rcXML `xml:"rc"`
}

type arrayXML struct {
	Name string `xml:"name,attr"`
	Set  setXML `xml:"set"`
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func findIntItem(sep *separatorXML, name string) (int, bool) {
	for _, it := range sep.Items {
		if it.Name == name {
			v, err := strconv.Atoi(strings.TrimSpace(it.Value))
			if err == nil {
				return v, true
			}
			return 0, false
		}
	}
	for i := range sep.Separators {
		if v, ok := findIntItem(&sep.Separators[i], name); ok {
			return v, true
		}
	}
	return 0, false
}

func findEnergy(e *energyXML, name string) (float64, bool) {
	for _, it := range e.Items {
		if it.Name == name {
			v, err := strconv.ParseFloat(strings.TrimSpace(it.Value), 64)
			if err == nil {
				return v, true
			}
			return 0, false
		}
	}
	return 0, false
}

func findVarray(vs []varrayXML, name string) *varrayXML {
	for i := range vs {
		if vs[i].Name == name {
			return &vs[i]
		}
	}
	return nil
}

//varrayToMatrix turns the <v> children of a varray into an Nx3 matrix.
func varrayToMatrix(va *varrayXML) (*v3.Matrix, error) {
	data := make([]float64, 0, 3*len(va.V))
	for _, line := range va.V {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("varray %q: vector with %d components", va.Name, len(fields))
		}
		for _, fs := range fields {
			v, err := strconv.ParseFloat(fs, 64)
			if err != nil {
				return nil, fmt.Errorf("varray %q: %v", va.Name, err)
			}
			data = append(data, v)
		}
	}
	return v3.NewMatrix(data)
}

func convertCalculation(c *calculationXML) (IonicStep, error) {
	var step IonicStep
	step.NElectronicSteps = len(c.SCSteps)
	e0, ok := findEnergy(&c.Energy, "e_0_energy")
	if !ok && len(c.SCSteps) > 0 {
		//older VASP versions only write the step energies inside scstep.
		e0, ok = findEnergy(&c.SCSteps[len(c.SCSteps)-1].Energy, "e_0_energy")
	}
	if !ok {
		return step, fmt.Errorf("%s: calculation without e_0_energy", WrongFormat)
	}
	step.E0Energy = e0
	step.EFrEnergy, _ = findEnergy(&c.Energy, "e_fr_energy")
	step.EWoEntrp, _ = findEnergy(&c.Energy, "e_wo_entrp")
	if fo := findVarray(c.Varrays, "forces"); fo != nil {
		m, err := varrayToMatrix(fo)
		if err != nil {
			return step, err
		}
		step.Forces = m
	}
	if st := findVarray(c.Varrays, "stress"); st != nil {
		m, err := varrayToMatrix(st)
		if err != nil {
			return step, err
		}
		step.Stress = m
	}
	basis := findVarray(c.Structure.Crystal.Varrays, "basis")
	positions := findVarray(c.Structure.Varrays, "positions")
	if basis == nil || positions == nil {
		return step, fmt.Errorf("%s: calculation without basis or positions", WrongFormat)
	}
	lattice, err := varrayToMatrix(basis)
	if err != nil {
		return step, err
	}
	coords, err := varrayToMatrix(positions)
	if err != nil {
		return step, err
	}
	step.Structure = &Crystal{Lattice: lattice, Positions: coords}
	return step, nil
}

//Errors

//Error is the vasprun error type. It fulfills vasp.Error and
//vasp.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("vasprun file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error and returns the resulting
//decoration slice. An empty string only queries the current value.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnableToOpen = "unable to open file"
	WrongFormat  = "wrong format in vasprun.xml"
)
