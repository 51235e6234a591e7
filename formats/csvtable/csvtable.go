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

// Package csvtable implements the csv output format: one row of local
// time, latitude and longitude per record.
package csvtable

import (
	"encoding/csv"
	"io"

	"github.com/timelinize/lhconv/history"
	"go.uber.org/zap"
)

func init() {
	err := history.RegisterFormat(history.Format{
		Name:        "csv",
		Title:       "CSV",
		Description: "A Time,Latitude,Longitude table with times in local time",
		NewRenderer: func(opt history.RenderOptions) history.Renderer {
			return Renderer{TimeZone: opt.TimeZone}
		},
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}
}

// TimeLayout is the layout of the Time column.
const TimeLayout = "2006-01-02 15:04:05"

// Renderer writes records as CSV.
type Renderer struct {
	TimeZone history.TimeZone
}

// Render implements history.Renderer.
func (r Renderer) Render(w io.Writer, records []history.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Time", "Latitude", "Longitude"}); err != nil {
		return err
	}
	for _, rec := range records {
		err := cw.Write([]string{
			history.LocalTime(rec, r.TimeZone).Format(TimeLayout),
			history.FormatDegrees(rec.LatitudeE7),
			history.FormatDegrees(rec.LongitudeE7),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
