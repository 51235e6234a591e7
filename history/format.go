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
	"io"
	"sort"
	"strings"
)

// Renderer writes a complete document for a sequence of records.
type Renderer interface {
	Render(w io.Writer, records []Record) error
}

// RenderOptions configures a renderer.
type RenderOptions struct {
	// Name of the global variable assigned by the js format.
	Variable string

	// Time zone for local times. If nil, the system zone is used.
	TimeZone TimeZone
}

// Format has information about an output format that can be registered.
type Format struct {
	// A lower-case name that uniquely identifies the format; it is
	// also the file extension of its output.
	Name string `json:"name"`

	// The human-readable name of the format.
	Title string `json:"title"`

	// Information that will help the user when choosing a format.
	Description string `json:"description"`

	NewRenderer func(RenderOptions) Renderer `json:"-"`
}

// RegisterFormat registers f as an output format.
func RegisterFormat(f Format) error {
	if f.Name == "" {
		return errors.New("missing name")
	}
	if f.Title == "" {
		return errors.New("missing title")
	}
	if f.NewRenderer == nil {
		return fmt.Errorf("format %s has no renderer", f.Name)
	}
	if _, ok := formats[f.Name]; ok {
		return fmt.Errorf("format already registered: %s", f.Name)
	}
	formats[f.Name] = f
	return nil
}

// GetFormat gets the format with the given name.
func GetFormat(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return Format{}, Argumentf("unknown format '%s' (choose from %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// AllFormats returns all registered formats sorted by name.
func AllFormats() []Format {
	all := make([]Format, 0, len(formats))
	for _, f := range formats {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

// FormatNames returns the names of all registered formats, sorted.
func FormatNames() []string {
	all := AllFormats()
	names := make([]string, 0, len(all))
	for _, f := range all {
		names = append(names, f.Name)
	}
	return names
}

var formats = make(map[string]Format)
