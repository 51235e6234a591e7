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

// Package gpxdoc implements the gpx and gpxtracks output formats
// (GPS Exchange Format, https://en.wikipedia.org/wiki/GPS_Exchange_Format):
// either one waypoint per record, or the records grouped into tracks.
package gpxdoc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/timelinize/lhconv/history"
	"github.com/tkrajina/gpxgo/gpx"
	"go.uber.org/zap"
)

func init() {
	err := history.RegisterFormat(history.Format{
		Name:        "gpx",
		Title:       "GPS Exchange (waypoints)",
		Description: "A GPX document with one waypoint per location",
		NewRenderer: func(opt history.RenderOptions) history.Renderer {
			return Renderer{TimeZone: opt.TimeZone}
		},
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}

	err = history.RegisterFormat(history.Format{
		Name:        "gpxtracks",
		Title:       "GPS Exchange (tracks)",
		Description: "A GPX document with locations split into tracks at time or distance gaps",
		NewRenderer: func(opt history.RenderOptions) history.Renderer {
			return Renderer{TimeZone: opt.TimeZone, Tracks: true}
		},
	})
	if err != nil {
		history.Log.Fatal("registering format", zap.Error(err))
	}
}

// A new track is started when consecutive points are more than
// TrackMaxGap apart in time or TrackMaxDistanceKm apart in space.
const (
	TrackMaxGap        = 10 * time.Minute
	TrackMaxDistanceKm = 40
)

const (
	creator      = "Location History JSON Converter"
	documentName = "Location History"
	descLayout   = "2006-01-02 15:04:05"
)

// Renderer writes records as GPX. If Tracks is true, records become
// track points split into tracks by SplitTracks; otherwise each record
// is a waypoint.
type Renderer struct {
	TimeZone history.TimeZone
	Tracks   bool
}

// Render implements history.Renderer.
func (r Renderer) Render(w io.Writer, records []history.Record) error {
	doc := &gpx.GPX{
		Version: "1.1",
		Creator: creator,
		Name:    documentName,
	}

	if r.Tracks {
		for _, track := range SplitTracks(records) {
			seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(track))}
			for _, rec := range track {
				seg.Points = append(seg.Points, trackPoint(rec))
			}
			doc.Tracks = append(doc.Tracks, gpx.GPXTrack{Segments: []gpx.GPXTrackSegment{seg}})
		}
	} else {
		doc.Waypoints = make([]gpx.GPXPoint, 0, len(records))
		for _, rec := range records {
			doc.Waypoints = append(doc.Waypoints, r.waypoint(rec))
		}
	}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encoding GPX: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// SplitTracks groups records into tracks. A track ends when the gap to
// the next record is more than TrackMaxGap in time or more than
// TrackMaxDistanceKm in distance.
//
// The records must be in chronological or reverse-chronological order;
// the result for unordered records is unspecified.
func SplitTracks(records []history.Record) [][]history.Record {
	var tracks [][]history.Record
	var current []history.Record
	for i, rec := range records {
		if i > 0 && trackBreak(records[i-1], rec) {
			tracks = append(tracks, current)
			current = nil
		}
		current = append(current, rec)
	}
	if len(current) > 0 {
		tracks = append(tracks, current)
	}
	return tracks
}

func trackBreak(prev, next history.Record) bool {
	gap := next.Time().Sub(prev.Time())
	if gap < 0 {
		gap = -gap
	}
	return gap > TrackMaxGap || history.DistanceKm(prev, next) > TrackMaxDistanceKm
}

func (r Renderer) waypoint(rec history.Record) gpx.GPXPoint {
	pt := point(rec)

	desc := history.LocalTime(rec, r.TimeZone).Format(descLayout)
	var extras []string
	if rec.Accuracy != nil {
		extras = append(extras, fmt.Sprintf("Accuracy: %d", *rec.Accuracy))
	}
	if rec.Speed != nil {
		extras = append(extras, fmt.Sprintf("Speed:%d", *rec.Speed))
	}
	if len(extras) > 0 {
		desc += " (" + strings.Join(extras, ", ") + ")"
	}
	pt.Description = desc

	return pt
}

func trackPoint(rec history.Record) gpx.GPXPoint {
	pt := point(rec)

	var lines []string
	if rec.Accuracy != nil {
		lines = append(lines, fmt.Sprintf("Accuracy: %d", *rec.Accuracy))
	}
	if rec.Speed != nil {
		lines = append(lines, fmt.Sprintf("Speed:%d", *rec.Speed))
	}
	pt.Description = strings.Join(lines, "\n")

	return pt
}

func point(rec history.Record) gpx.GPXPoint {
	pt := gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  rec.Latitude(),
			Longitude: rec.Longitude(),
		},
		Timestamp: rec.Time().UTC(),
	}
	if rec.Altitude != nil {
		pt.Elevation = *gpx.NewNullableFloat64(float64(*rec.Altitude))
	}
	return pt
}
