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

// Package kmldoc implements the kml output format: a Keyhole Markup
// Language document with one Placemark per record.
package kmldoc

import (
	"io"
	"strconv"

	"github.com/timelinize/lhconv/history"
	kml "github.com/twpayne/go-kml/v3"
	"go.uber.org/zap"
)

func init() {
	err := history.RegisterFormat(history.Format{
		Name:        "kml",
		Title:       "Keyhole (KML)",
		Description: "A KML document with a timestamped Placemark per location",
		NewRenderer: func(history.RenderOptions) history.Renderer { return Renderer{} },
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}
}

// DocumentName is the name given to the KML Document.
const DocumentName = "Location History"

// Renderer writes records as KML.
type Renderer struct{}

// Render implements history.Renderer.
func (Renderer) Render(w io.Writer, records []history.Record) error {
	elements := make([]kml.Element, 0, len(records)+1)
	elements = append(elements, kml.Name(DocumentName))
	for _, rec := range records {
		elements = append(elements, placemark(rec))
	}
	return kml.KML(kml.Document(elements...)).WriteIndent(w, "", "  ")
}

// placemark returns the Placemark for a record. The order of its
// children must be TimeStamp, ExtendedData, then Point for the
// document to be valid KML.
func placemark(rec history.Record) kml.Element {
	children := []kml.Element{
		kml.TimeStamp(kml.When(rec.Time().UTC())),
	}
	if rec.HasExtras() {
		var data []kml.Element
		for _, field := range []struct {
			name  string
			value *int64
		}{
			{"accuracy", rec.Accuracy},
			{"speed", rec.Speed},
			{"altitude", rec.Altitude},
		} {
			if field.value != nil {
				data = append(data, kml.Data(field.name, kml.Value(strconv.FormatInt(*field.value, 10))))
			}
		}
		children = append(children, kml.ExtendedData(data...))
	}
	children = append(children, kml.Point(
		kml.Coordinates(kml.Coordinate{
			Lon: rec.Longitude(),
			Lat: rec.Latitude(),
		}),
	))
	return kml.Placemark(children...)
}
