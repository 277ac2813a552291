/*
 * interfaces.go, part of govasp.
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

import "fmt"

//Errors

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
// The decorate slice should contain a list of functions in the calling
// stack, plus, for each function, any relevant information, in the format
// "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is an Error associated to one of the files, or the directory,
// of a VASP run.
type FileError interface {
	Error
	FileName() string
}

//Messages for the errors surfaced by this package. Callers that need to
//branch on the error taxonomy should use the IsNoData/IsNotFound
//predicates rather than comparing these strings.
const (
	DirNotFound  = "no such file or directory"
	NoData       = "no data parsed"
	UnableToOpen = "unable to open file"
)

// ParseError is the concrete error type for the root package. It fulfills
// Error and FileError.
type ParseError struct {
	message  string
	path     string //the input file or directory with problems, or "" if none.
	deco     []string
	critical bool
}

func (err ParseError) Error() string {
	return fmt.Sprintf("vasp: %s: %s", err.message, err.path)
}

//Decorate adds new information to the error and returns the resulting
//decoration slice. An empty string only queries the current value.
func (err ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file or directory the error refers to.
func (err ParseError) FileName() string { return err.path }

//Critical returns true if the error is critical, false otherwise
func (err ParseError) Critical() bool { return err.critical }

//Message returns the raw message string, without the path.
func (err ParseError) Message() string { return err.message }

// IsNoData returns true if err reports that no usable data could be parsed
// from a run directory, either because the convergence log is missing under
// both its naming variants or because no ionic step survived filtering.
func IsNoData(err error) bool {
	e, ok := err.(ParseError)
	return ok && e.message == NoData
}

// IsNotFound returns true if err reports a missing run directory.
func IsNotFound(err error) bool {
	e, ok := err.(ParseError)
	return ok && e.message == DirNotFound
}

//errDecorate asserts that the error implements Error and decorates it with
//the caller's name before returning it. Used with any other error type it
//will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
