/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package history

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error. Kinds are themselves errors so that
// callers can test for them with errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

// The kinds of failures a conversion can have.
const (
	ArgumentError    Kind = "invalid argument"
	InputReadError   Kind = "reading input"
	ParseError       Kind = "parsing input"
	OutputWriteError Kind = "writing output"
)

// ErrNoData is returned when the input has no location records. It
// is not a failure; the conversion simply has nothing to write.
var ErrNoData = errors.New("no data found in input")

// Error is a conversion error of a certain Kind.
type Error struct {
	Kind    Kind
	Err     error  // underlying error, if any
	Log     string // optional; technical context in which the error was produced
	Message string // optional; a human-readable sentence
}

func (e Error) Error() string {
	var msg strings.Builder
	msg.WriteString(string(e.Kind))
	if e.Log != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Log)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	if e.Message != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Message))
	}
	return msg.String()
}

func (e Error) Unwrap() error { return e.Err }

// Is reports whether target is this error's Kind.
func (e Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Argumentf returns an ArgumentError with a formatted message.
func Argumentf(format string, a ...any) error {
	return Error{Kind: ArgumentError, Err: fmt.Errorf(format, a...)}
}
