/*
 * oszicar.go, part of govasp.
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

//Package oszicar parses the OSZICAR convergence log of a VASP run: one
//line per electronic minimization step (DAV/RMM/CG), punctuated by one
//summary line per ionic step (the "F=" lines). Both the plain file and the
//gzipped naming variant are accepted.
package oszicar

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//ElectronicStep is one line of the self-consistency loop.
type ElectronicStep struct {
	Scheme string //DAV, RMM, CG...
	N      int
	E      float64
	DE     float64
	DEps   float64
	NCG    int
	RMS    float64
	RMSC   float64 //only printed for charge-updating steps.
}

//IonicStep is one "F=" summary line, with the electronic steps that led
//to it.
type IonicStep struct {
	N          int
	F          float64
	E0         float64
	DE         float64
	Mag        float64
	HasMag     bool
	Electronic []ElectronicStep
}

//Oszicar holds the parsed convergence log.
type Oszicar struct {
	filename   string
	IonicSteps []IonicStep
}

//Len returns the number of ionic steps reported by the log.
func (O *Oszicar) Len() int {
	return len(O.IonicSteps)
}

//FileName returns the path the log was read from.
func (O *Oszicar) FileName() string {
	return O.filename
}

//FinalEnergy returns the E0 of the last ionic step.
func (O *Oszicar) FinalEnergy() (float64, error) {
	if len(O.IonicSteps) == 0 {
		return 0, Error{NoIonicSteps, O.filename, []string{"FinalEnergy"}, true}
	}
	return O.IonicSteps[len(O.IonicSteps)-1].E0, nil
}

var (
	ionicRe = regexp.MustCompile(`^(\d+)\s+F=\s*([0-9.Ee+-]+)\s+E0=\s*([0-9.Ee+-]+)`)
	dERe    = regexp.MustCompile(`d E =\s*([0-9.Ee+-]+)`)
	magRe   = regexp.MustCompile(`mag=\s*([0-9.Ee+-]+)`)
)

//Read parses an OSZICAR file, plain or gzipped (by the ".gz" suffix).
func Read(path string) (*Oszicar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen, path, []string{"Read"}, true}
	}
	defer f.Close()
	var scanner *bufio.Scanner
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"Read"}, true}
		}
		defer gz.Close()
		scanner = bufio.NewScanner(gz)
	} else {
		scanner = bufio.NewScanner(f)
	}
	O := &Oszicar{filename: path}
	var pending []ElectronicStep
	for scanner.Scan() {
		clean := strings.TrimSpace(scanner.Text())
		if clean == "" {
			continue
		}
		if m := ionicRe.FindStringSubmatch(clean); m != nil {
			step, err := parseIonic(m, clean)
			if err != nil {
				return nil, Error{fmt.Sprintf("%s: %q", WrongFormat, clean), path, []string{"Read"}, true}
			}
			step.Electronic = pending
			pending = nil
			O.IonicSteps = append(O.IonicSteps, step)
			continue
		}
		if es, ok := parseElectronic(clean); ok {
			pending = append(pending, es)
		}
		//anything else (the N/E/dE header, empty separators) is ignored.
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{err.Error(), path, []string{"Read"}, true}
	}
	return O, nil
}

func parseIonic(m []string, clean string) (IonicStep, error) {
	var step IonicStep
	var err error
	step.N, err = strconv.Atoi(m[1])
	if err != nil {
		return step, err
	}
	step.F, err = strconv.ParseFloat(m[2], 64)
	if err != nil {
		return step, err
	}
	step.E0, err = strconv.ParseFloat(m[3], 64)
	if err != nil {
		return step, err
	}
	if dm := dERe.FindStringSubmatch(clean); dm != nil {
		step.DE, _ = strconv.ParseFloat(dm[1], 64)
	}
	if mm := magRe.FindStringSubmatch(clean); mm != nil {
		if v, err := strconv.ParseFloat(mm[1], 64); err == nil {
			step.Mag = v
			step.HasMag = true
		}
	}
	return step, nil
}

//parseElectronic parses lines like
//"DAV:   2    -0.14E+03   -0.14E+03  -0.75E+03  3844   0.26E+02". Fields
//past the first three are best-effort: VASP truncates them in some
//configurations.
func parseElectronic(clean string) (ElectronicStep, bool) {
	var es ElectronicStep
	fields := strings.Fields(clean)
	if len(fields) < 3 || !strings.HasSuffix(fields[0], ":") {
		return es, false
	}
	es.Scheme = strings.TrimSuffix(fields[0], ":")
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return es, false
	}
	es.N = n
	e, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return es, false
	}
	es.E = e
	rest := []*float64{&es.DE, &es.DEps}
	for i, dst := range rest {
		if len(fields) > 3+i {
			*dst, _ = strconv.ParseFloat(fields[3+i], 64)
		}
	}
	if len(fields) > 5 {
		es.NCG, _ = strconv.Atoi(fields[5])
	}
	if len(fields) > 6 {
		es.RMS, _ = strconv.ParseFloat(fields[6], 64)
	}
	if len(fields) > 7 {
		es.RMSC, _ = strconv.ParseFloat(fields[7], 64)
	}
	return es, true
}

//Errors

//Error is the oszicar error type. It fulfills vasp.Error and
//vasp.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("oszicar file %s error: %s", err.filename, err.message)
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
	WrongFormat  = "wrong format in OSZICAR line"
	NoIonicSteps = "no ionic steps in file"
)
