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

// Package jsonjs implements the json and js output formats: a compact
// location history document with only the timestamp and coordinates of
// each record, optionally assigned to a global JavaScript variable.
package jsonjs

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/timelinize/lhconv/history"
	"go.uber.org/zap"
)

func init() {
	err := history.RegisterFormat(history.Format{
		Name:        "json",
		Title:       "JSON",
		Description: "Location history JSON with only timestampMs, latitudeE7 and longitudeE7",
		NewRenderer: func(history.RenderOptions) history.Renderer { return Renderer{} },
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}

	err = history.RegisterFormat(history.Format{
		Name:        "js",
		Title:       "JavaScript",
		Description: "The json format assigned to a global variable, for loading with a <script> tag",
		NewRenderer: func(opt history.RenderOptions) history.Renderer {
			variable := opt.Variable
			if variable == "" {
				variable = DefaultVariable
			}
			return Renderer{Variable: variable}
		},
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}
}

// DefaultVariable is the variable name used by the js format if none is given.
const DefaultVariable = "locationJsonData"

// ValidVariable returns true if name can be used as the js variable.
func ValidVariable(name string) bool {
	return identifier.MatchString(name)
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Renderer writes records as JSON. If Variable is set, the document is
// written as a JavaScript assignment to window.<Variable>.
type Renderer struct {
	Variable string
}

// Render implements history.Renderer.
func (r Renderer) Render(w io.Writer, records []history.Record) error {
	doc := document{Locations: make([]location, 0, len(records))}
	for _, rec := range records {
		doc.Locations = append(doc.Locations, location{
			TimestampMs: rec.TimestampMs,
			LatitudeE7:  rec.LatitudeE7,
			LongitudeE7: rec.LongitudeE7,
		})
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	if r.Variable != "" {
		if _, err := fmt.Fprintf(w, "window.%s = ", r.Variable); err != nil {
			return err
		}
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if r.Variable != "" {
		if _, err := io.WriteString(w, ";"); err != nil {
			return err
		}
	}
	return nil
}

type document struct {
	Locations []location `json:"locations"`
}

type location struct {
	TimestampMs int64 `json:"timestampMs"`
	LatitudeE7  int64 `json:"latitudeE7"`
	LongitudeE7 int64 `json:"longitudeE7"`
}
