/*
 * runplot.go, part of govasp.
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

//Package runplot builds quick-look plots from an extracted VASP dataset.
//The functions here only assemble and return plot objects; saving them,
//in whatever format and size, is up to the caller.
package runplot

import (
	"fmt"
	"image/color"

	vasp "github.com/materialsio/govasp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// Energy returns a line plot of energy per atom against the ionic step
// number, the usual first look at how a relaxation went.
func Energy(d *vasp.Dataset, title string) (*plot.Plot, error) {
	if d == nil || d.Len() == 0 {
		return nil, fmt.Errorf("runplot: empty dataset")
	}
	pts := make(plotter.XYs, d.Len())
	for i, e := range d.EnergyPerAtom {
		pts[i].X = float64(i + 1)
		pts[i].Y = e
	}
	p := basicPlot(title, "Ionic step", "Energy per atom (eV)")
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	l.Color = color.RGBA{B: 255, A: 255}
	s.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(l, s)
	return p, nil
}

// Magmoms returns a scatter plot of the per-site total magnetic moments of
// one ionic step (0-based into the dataset).
func Magmoms(d *vasp.Dataset, step int, title string) (*plot.Plot, error) {
	if d == nil || step < 0 || step >= len(d.Magmoms) {
		return nil, fmt.Errorf("runplot: no magnetic moments for step %d", step)
	}
	moments := d.Magmoms[step]
	pts := make(plotter.XYs, len(moments))
	for i, m := range moments {
		pts[i].X = float64(i + 1)
		pts[i].Y = m
	}
	p := basicPlot(title, "Site", "Magnetic moment (mu_B)")
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	return p, nil
}
