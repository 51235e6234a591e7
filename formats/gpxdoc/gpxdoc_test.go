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

package gpxdoc

import (
	"bytes"
	"testing"
	"time"

	"github.com/timelinize/lhconv/history"
	"github.com/tkrajina/gpxgo/gpx"
)

var t0 = time.Date(2014, time.January, 1, 12, 0, 0, 0, time.UTC)

// at returns a record the given time after t0, kmEast kilometers east
// of 0,0 along the equator.
func at(after time.Duration, kmEast float64) history.Record {
	const kmPerDegree = 111.19492664455873
	return history.Record{
		TimestampMs: t0.Add(after).UnixMilli(),
		LongitudeE7: history.E7(kmEast / kmPerDegree),
	}
}

func TestSplitTracks(t *testing.T) {
	for i, tc := range []struct {
		records []history.Record
		expect  []int // lengths of tracks
	}{
		{records: nil, expect: nil},
		{records: []history.Record{at(0, 0)}, expect: []int{1}},
		{
			// 5 min and 5 km apart, then a 15 min gap
			records: []history.Record{at(0, 0), at(5*time.Minute, 5), at(20*time.Minute, 10)},
			expect:  []int{2, 1},
		},
		{
			// a 60 km jump within a minute
			records: []history.Record{at(0, 0), at(time.Minute, 1), at(2*time.Minute, 61), at(3*time.Minute, 62)},
			expect:  []int{2, 2},
		},
		{
			// exactly at the limits stays in one track
			records: []history.Record{at(0, 0), at(TrackMaxGap, 39.9)},
			expect:  []int{2},
		},
		{
			// reverse chronological order works too
			records: []history.Record{at(30*time.Minute, 0), at(25*time.Minute, 0), at(0, 0)},
			expect:  []int{2, 1},
		},
	} {
		actual := SplitTracks(tc.records)
		if len(actual) != len(tc.expect) {
			t.Errorf("Test %d: Expected %d tracks, got %d", i, len(tc.expect), len(actual))
			continue
		}
		for j, track := range actual {
			if len(track) != tc.expect[j] {
				t.Errorf("Test %d: Expected track %d to have %d points, got %d", i, j, tc.expect[j], len(track))
			}
		}
	}
}

func TestRenderWaypoints(t *testing.T) {
	records := []history.Record{
		{TimestampMs: t0.UnixMilli(), LatitudeE7: 525200000, LongitudeE7: 134050000,
			Accuracy: int64Ptr(20), Speed: int64Ptr(3), Altitude: int64Ptr(35)},
		{TimestampMs: t0.Add(time.Hour).UnixMilli(), LatitudeE7: -337000000, LongitudeE7: 1512000000},
	}

	var buf bytes.Buffer
	r := Renderer{TimeZone: history.FixedZone{Loc: time.UTC}}
	if err := r.Render(&buf, records); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	doc, err := gpx.ParseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Expected valid GPX, got: %v\n%s", err, buf.String())
	}
	if len(doc.Tracks) != 0 {
		t.Errorf("Expected no tracks, got %d", len(doc.Tracks))
	}
	if len(doc.Waypoints) != len(records) {
		t.Fatalf("Expected %d waypoints, got %d", len(records), len(doc.Waypoints))
	}

	for i, tc := range []struct {
		lat, lon  float64
		timestamp time.Time
		desc      string
		elevation float64
		hasEle    bool
	}{
		{lat: 52.52, lon: 13.405, timestamp: t0, desc: "2014-01-01 12:00:00 (Accuracy: 20, Speed:3)", elevation: 35, hasEle: true},
		{lat: -33.7, lon: 151.2, timestamp: t0.Add(time.Hour), desc: "2014-01-01 13:00:00"},
	} {
		wpt := doc.Waypoints[i]
		if wpt.Latitude != tc.lat || wpt.Longitude != tc.lon {
			t.Errorf("Waypoint %d: Expected %v,%v, got %v,%v", i, tc.lat, tc.lon, wpt.Latitude, wpt.Longitude)
		}
		if !wpt.Timestamp.Equal(tc.timestamp) {
			t.Errorf("Waypoint %d: Expected time %s, got %s", i, tc.timestamp, wpt.Timestamp)
		}
		if wpt.Description != tc.desc {
			t.Errorf("Waypoint %d: Expected desc %q, got %q", i, tc.desc, wpt.Description)
		}
		if wpt.Elevation.NotNull() != tc.hasEle || (tc.hasEle && wpt.Elevation.Value() != tc.elevation) {
			t.Errorf("Waypoint %d: Expected elevation %v (%t), got %+v", i, tc.elevation, tc.hasEle, wpt.Elevation)
		}
	}
}

func TestRenderTracks(t *testing.T) {
	records := []history.Record{
		at(0, 0),
		at(5*time.Minute, 5),
		at(20*time.Minute, 10),
	}
	records[0].Accuracy = int64Ptr(12)
	records[0].Speed = int64Ptr(4)

	var buf bytes.Buffer
	if err := (Renderer{Tracks: true}).Render(&buf, records); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	doc, err := gpx.ParseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Expected valid GPX, got: %v\n%s", err, buf.String())
	}
	if len(doc.Waypoints) != 0 {
		t.Errorf("Expected no waypoints, got %d", len(doc.Waypoints))
	}
	if len(doc.Tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(doc.Tracks))
	}
	first := doc.Tracks[0].Segments[0].Points
	if len(first) != 2 {
		t.Fatalf("Expected 2 points in first track, got %d", len(first))
	}
	if expect := "Accuracy: 12\nSpeed:4"; first[0].Description != expect {
		t.Errorf("Expected desc %q, got %q", expect, first[0].Description)
	}
	if !first[1].Timestamp.Equal(t0.Add(5 * time.Minute)) {
		t.Errorf("Expected second point at %s, got %s", t0.Add(5*time.Minute), first[1].Timestamp)
	}
}

func TestRenderTracksEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Renderer{Tracks: true}).Render(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	doc, err := gpx.ParseBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Expected valid GPX, got: %v", err)
	}
	if len(doc.Tracks) != 0 {
		t.Errorf("Expected no tracks, got %d", len(doc.Tracks))
	}
}

func int64Ptr(v int64) *int64 { return &v }
