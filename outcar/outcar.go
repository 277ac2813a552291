/*
 * outcar.go, part of govasp.
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

//Package outcar recovers the per-atom charge and magnetization tables that
//VASP prints to OUTCAR and that vasprun.xml does not carry. OUTCAR files
//can be huge, so the plain file is read backward from the end, line by
//line, and only then reversed into chronological order; the gzipped naming
//variant cannot seek and is read forward instead. The forward pass is a
//small state machine keyed on the section markers VASP prints before each
//table.
package outcar

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

//Row is one atom of a charge or magnetization table: the 1-based atom
//index and the named columns (s, p, d, tot...).
type Row struct {
	Index  int
	Values map[string]float64
}

//Table is one charge or magnetization table, in atom order.
type Table []Row

//Column returns the named column of the table, in atom order. Atoms whose
//row misses the column get a zero.
func (t Table) Column(name string) []float64 {
	if t == nil {
		return nil
	}
	col := make([]float64, len(t))
	for i, r := range t {
		col[i] = r.Values[name]
	}
	return col
}

//Tots returns the "tot" column, the per-atom total magnetic moment or
//charge.
func (t Table) Tots() []float64 {
	return t.Column("tot")
}

//ScanResult holds everything Scan recovered from an OUTCAR. MagX has one
//completed table per ionic step; Charge, MagY and MagZ are the tables as
//last seen in the file (MagY/MagZ only appear in SOC calculations).
type ScanResult struct {
	MagX     []Table
	Charge   Table
	MagY     Table
	MagZ     Table
	IonSteps int //number of "magnetization (x)" sections seen.
}

//The scanner states. Only the marker lines below, and any line containing
//"electrostatic", cause transitions; unrecognized lines are ignored in all
//states.
type mode int

const (
	modeNone mode = iota
	modeCharge
	modeMagX
	modeMagY
	modeMagZ
)

//The section markers, compared against whole whitespace-trimmed lines.
const (
	markCharge = "total charge"
	markMagX   = "magnetization (x)"
	markMagY   = "magnetization (y)"
	markMagZ   = "magnetization (z)"
)

var headerSplit = regexp.MustCompile(`\s{2,}`)

//Scan reads an OUTCAR (plain, or gzipped by the ".gz" suffix) and returns
//the charge/magnetization tables in forward chronological order.
func Scan(path string) (*ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen, path, []string{"Scan"}, true}
	}
	defer f.Close()
	var lines []string
	if strings.HasSuffix(path, ".gz") {
		lines, err = forwardLines(f)
	} else {
		lines, err = reverseLines(f)
		reverse(lines)
	}
	if err != nil {
		return nil, Error{err.Error(), path, []string{"Scan"}, true}
	}
	return scanLines(lines), nil
}

//scanLines runs the state machine over the lines of an OUTCAR, already in
//forward order. Within an active state a line is tried as a column header,
//then as a data row, then as a "tot" closing line; the marker chain runs
//afterwards in every state, so a marker arriving while a table is still
//open both closes it (through its "tot" prefix, for the charge marker) and
//switches state.
func scanLines(lines []string) *ScanResult {
	var (
		cur    mode
		header []string
		charge Table
		magx   Table
		magy   Table
		magz   Table
		all    []Table
	)
	ionSteps := 0
	for _, raw := range lines {
		clean := strings.TrimSpace(raw)
		if cur != modeNone {
			if strings.HasPrefix(clean, "# of ion") {
				header = parseHeader(clean)
			} else if row, ok := parseRow(clean, header); ok {
				switch cur {
				case modeCharge:
					charge = append(charge, row)
				case modeMagX:
					magx = append(magx, row)
				case modeMagY:
					magy = append(magy, row)
				case modeMagZ:
					magz = append(magz, row)
				}
			} else if strings.HasPrefix(clean, "tot") {
				//close out the running magnetization-x table, but only if
				//that keeps the completed count in sync with the number of
				//sections seen. This prevents duplicate closures when other
				//"tot" aggregate lines show up inside a section.
				if ionSteps == len(all)+1 {
					all = append(all, magx)
				}
				cur = modeNone
			}
		}
		switch {
		case clean == markCharge:
			cur = modeCharge
		case clean == markMagX:
			magx = nil
			ionSteps++
			cur = modeMagX
		case clean == markMagY:
			magy = nil
			cur = modeMagY
		case clean == markMagZ:
			magz = nil
			cur = modeMagZ
		case strings.Contains(clean, "electrostatic"):
			cur = modeNone //section boundary
		}
	}
	return &ScanResult{MagX: all, Charge: charge, MagY: magy, MagZ: magz, IonSteps: ionSteps}
}

//parseHeader splits a "# of ion  s  p  d  tot" line on runs of two or more
//spaces. The first token is the row-index label and is dropped.
func parseHeader(clean string) []string {
	header := headerSplit.Split(clean, -1)
	if len(header) > 0 {
		header = header[1:]
	}
	return header
}

//parseRow parses a "  1   0.010  0.020  4.500  4.530" data line. The first
//token is the atom index; the remaining numeric values are zipped with the
//header, stopping at whichever runs out first.
func parseRow(clean string, header []string) (Row, bool) {
	fields := strings.Fields(clean)
	if len(fields) < 2 {
		return Row{}, false
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return Row{}, false
	}
	vals := fields[1:]
	n := len(vals)
	if len(header) < n {
		n = len(header)
	}
	row := Row{Index: idx, Values: make(map[string]float64, n)}
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(vals[i], 64)
		if err != nil {
			return Row{}, false
		}
		row.Values[header[i]] = v
	}
	return row, true
}

//AlignTables reconciles the completed magnetization tables with the number
//of ionic steps the convergence log reports. Equal counts mean the run
//never wrote its final table (diagnostic only, all tables kept); one
//surplus table is the normal finished-run case and the trailing one is
//dropped; any other non-empty mismatch is reported and the tables are used
//as-is.
func AlignTables(res *ScanResult, nIonic int) []Table {
	tables := res.MagX
	switch {
	case len(tables) == 0:
		//non-spin-polarized runs print no magnetization sections at all.
	case len(tables) == nIonic:
		log.Printf("outcar: unfinished run: %d magnetization tables for %d ionic steps", len(tables), nIonic)
	case len(tables) == nIonic+1:
		tables = tables[:nIonic]
	default:
		log.Printf("outcar: inconsistent run: %d magnetization tables for %d ionic steps", len(tables), nIonic)
	}
	return tables
}

const tailChunk = 1 << 16

//reverseLines returns the lines of f from last to first, reading the file
//in chunks from the end so that only a bounded window is held at a time
//while splitting.
func reverseLines(f *os.File) ([]string, error) {
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	var lines []string
	var carry []byte //partial line continuing into the previous chunk
	for off := st.Size(); off > 0; {
		n := int64(tailChunk)
		if off < n {
			n = off
		}
		off -= n
		buf := make([]byte, n, n+int64(len(carry)))
		if _, err := f.ReadAt(buf, off); err != nil && err != io.EOF {
			return nil, err
		}
		buf = append(buf, carry...)
		parts := strings.Split(string(buf), "\n")
		carry = []byte(parts[0])
		for i := len(parts) - 1; i >= 1; i-- {
			lines = append(lines, parts[i])
		}
	}
	lines = append(lines, string(carry))
	return lines, nil
}

//forwardLines reads all lines of a gzip stream, which cannot seek.
func forwardLines(f *os.File) ([]string, error) {
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	var lines []string
	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, tailChunk), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func reverse(lines []string) {
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
}

//Errors

//Error is the outcar error type. It fulfills vasp.Error and
//vasp.FileError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("outcar file %s error: %s", err.filename, err.message)
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
)
