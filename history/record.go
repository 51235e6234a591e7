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

// Package history holds the location history model and the conversion
// pipeline: loading a Google Location History export, filtering and
// sorting its records, and handing them to a registered output format.
//
// Unofficial documentation of the export format: https://locationhistoryformat.com/
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Record is a single point from the "locations" array of a location
// history export. Records are never modified after they are loaded.
type Record struct {
	TimestampMs int64 // milliseconds since the Unix epoch
	LatitudeE7  int64 // latitude times 1e7
	LongitudeE7 int64 // longitude times 1e7

	// Optional fields; nil when the source didn't have them.
	Accuracy *int64 // meters
	Speed    *int64 // meters/second
	Altitude *int64 // meters
}

// Time returns the record's timestamp.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.TimestampMs)
}

// Latitude returns the latitude in degrees.
func (r Record) Latitude() float64 { return Degrees(r.LatitudeE7) }

// Longitude returns the longitude in degrees.
func (r Record) Longitude() float64 { return Degrees(r.LongitudeE7) }

// HasExtras returns true if any of the optional accuracy, speed, or
// altitude values are present.
func (r Record) HasExtras() bool {
	return r.Accuracy != nil || r.Speed != nil || r.Altitude != nil
}

// Degrees converts an E7 coordinate into degrees.
func Degrees(e7 int64) float64 {
	return float64(e7) / placesMult
}

// E7 converts degrees into the nearest E7 integer coordinate.
func E7(degrees float64) int64 {
	return int64(math.Round(degrees * placesMult))
}

// FormatDegrees renders an E7 coordinate as the shortest decimal
// string that round-trips.
func FormatDegrees(e7 int64) string {
	return strconv.FormatFloat(Degrees(e7), 'f', -1, 64)
}

// UnmarshalJSON decodes a location element. Older exports quote the
// timestampMs value and newer ones replace it with an RFC 3339
// "timestamp"; both are accepted. "velocity" is read as speed when
// "speed" is absent.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		TimestampMs *flexInt   `json:"timestampMs"`
		Timestamp   *time.Time `json:"timestamp"`
		LatitudeE7  *flexInt   `json:"latitudeE7"`
		LongitudeE7 *flexInt   `json:"longitudeE7"`
		Accuracy    *flexInt   `json:"accuracy"`
		Speed       *flexInt   `json:"speed"`
		Velocity    *flexInt   `json:"velocity"`
		Altitude    *flexInt   `json:"altitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.TimestampMs != nil:
		r.TimestampMs = int64(*raw.TimestampMs)
	case raw.Timestamp != nil:
		r.TimestampMs = raw.Timestamp.UnixMilli()
	default:
		return errMissingTimestamp
	}
	if raw.LatitudeE7 == nil || raw.LongitudeE7 == nil {
		return errMissingCoordinates
	}
	r.LatitudeE7 = int64(*raw.LatitudeE7)
	r.LongitudeE7 = int64(*raw.LongitudeE7)

	r.Accuracy = raw.Accuracy.int64Ptr()
	r.Altitude = raw.Altitude.int64Ptr()
	r.Speed = raw.Speed.int64Ptr()
	if r.Speed == nil {
		r.Speed = raw.Velocity.int64Ptr()
	}

	return nil
}

var (
	errMissingTimestamp   = errors.New("missing timestampMs")
	errMissingCoordinates = errors.New("missing latitudeE7 or longitudeE7")
)

// flexInt is an integer that may be encoded as a JSON number (possibly
// fractional, in which case it is truncated) or as a quoted number.
type flexInt int64

func (fi *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*fi = flexInt(n)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", data)
	}
	*fi = flexInt(math.Trunc(f))
	return nil
}

func (fi *flexInt) int64Ptr() *int64 {
	if fi == nil {
		return nil
	}
	v := int64(*fi)
	return &v
}

const placesMult = 1e7
