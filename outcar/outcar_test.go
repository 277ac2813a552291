/*
 * outcar_test.go, part of govasp.
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

package outcar

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFixture(t *testing.T) {
	res, err := Scan("../test/run1/OUTCAR")
	require.NoError(t, err)
	assert.Equal(t, 3, res.IonSteps)
	require.Len(t, res.MagX, 3)
	assert.Equal(t, []float64{4.536, 0.006}, res.MagX[0].Tots())
	assert.Equal(t, []float64{3.500, 0.012}, res.MagX[1].Tots())
	assert.Equal(t, []float64{3.400, 0.010}, res.MagX[2].Tots())
	//the d column comes from the same header
	assert.Equal(t, []float64{4.500, 0.003}, res.MagX[0].Column("d"))
	//the charge table is the last one seen in the file
	require.Len(t, res.Charge, 6)
	assert.Equal(t, 1, res.MagX[0][0].Index)
	assert.Equal(t, 2, res.MagX[0][1].Index)
	//no SOC components in this run
	assert.Nil(t, res.MagY)
	assert.Nil(t, res.MagZ)
}

func TestScanGz(t *testing.T) {
	plain, err := Scan("../test/run1/OUTCAR")
	require.NoError(t, err)
	gz, err := Scan("../test/run1gz/OUTCAR.gz")
	require.NoError(t, err)
	assert.Equal(t, plain, gz)
}

func TestScanMissing(t *testing.T) {
	_, err := Scan("../test/run1/NOSUCHFILE")
	require.Error(t, err)
	ferr, ok := err.(Error)
	require.True(t, ok)
	assert.Equal(t, "../test/run1/NOSUCHFILE", ferr.FileName())
}

//The "electrostatic" boundary must reset the scanner so that rows outside
//a section are never collected, and a "tot" line must not close the same
//table twice.
func TestScannerBoundaries(t *testing.T) {
	lines := []string{
		" magnetization (x)",
		"# of ion       s       p       d       tot",
		"    1        0.010   0.020   4.500    4.530",
		" average (electrostatic) potential at core",
		"    2        0.001   0.002   0.003    0.006", //outside any section
		" magnetization (x)",
		"# of ion       s       p       d       tot",
		"    1        0.011   0.021   4.501    4.533",
		"tot          0.011   0.021   4.501    4.533",
		"tot          0.011   0.021   4.501    4.533", //duplicate, must not close again
	}
	res := scanLines(lines)
	assert.Equal(t, 2, res.IonSteps)
	//the first section was cut by the boundary before its "tot" line, and
	//the second marker replaced its table; only the second completes, and
	//only when the counts stay in sync.
	require.Len(t, res.MagX, 0)
	lines = append(lines, " magnetization (x)",
		"# of ion       s       p       d       tot",
		"    1        0.012   0.022   4.502    4.536",
		"tot          0.012   0.022   4.502    4.536")
	res = scanLines(lines)
	assert.Equal(t, 3, res.IonSteps)
	require.Len(t, res.MagX, 0) //still out of sync: 3 sections, 0 completed
}

func TestScannerHeaderZip(t *testing.T) {
	lines := []string{
		" magnetization (x)",
		"# of ion       s       p       tot",
		"    1        0.010   0.020   4.500    4.530", //one more value than headers
		"tot          0.010   0.020   4.500",
	}
	res := scanLines(lines)
	require.Len(t, res.MagX, 1)
	require.Len(t, res.MagX[0], 1)
	row := res.MagX[0][0]
	assert.Len(t, row.Values, 3) //zipped up to the shorter side
	assert.Equal(t, 4.5, row.Values["tot"])
}

func TestAlignTables(t *testing.T) {
	mk := func(n int) *ScanResult {
		res := &ScanResult{}
		for i := 0; i < n; i++ {
			res.MagX = append(res.MagX, Table{{Index: 1, Values: map[string]float64{"tot": float64(i)}}})
		}
		res.IonSteps = n
		return res
	}
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	//finished run: one surplus table, dropped silently
	got := AlignTables(mk(3), 2)
	assert.Len(t, got, 2)
	assert.Empty(t, buf.String())

	//unfinished run: equal counts, diagnostic only, nothing dropped
	buf.Reset()
	got = AlignTables(mk(2), 2)
	assert.Len(t, got, 2)
	assert.Contains(t, buf.String(), "unfinished")

	//anything else: diagnostic, used as-is
	buf.Reset()
	got = AlignTables(mk(5), 2)
	assert.Len(t, got, 5)
	assert.Contains(t, buf.String(), "inconsistent")

	//no magnetization at all: not an inconsistency
	buf.Reset()
	got = AlignTables(mk(0), 2)
	assert.Len(t, got, 0)
	assert.Empty(t, buf.String())
}

func TestReverseLines(t *testing.T) {
	f, err := os.Open("../test/run1/OUTCAR")
	require.NoError(t, err)
	defer f.Close()
	back, err := reverseLines(f)
	require.NoError(t, err)
	data, err := os.ReadFile("../test/run1/OUTCAR")
	require.NoError(t, err)
	forward := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	reverse(back)
	//the trailing newline shows up as one empty final line; it is ignored
	//by the scanner either way.
	if len(back) == len(forward)+1 {
		assert.Equal(t, "", back[len(back)-1])
		back = back[:len(back)-1]
	}
	assert.Equal(t, forward, back)
}
