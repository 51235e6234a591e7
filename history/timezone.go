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
	"fmt"
	"strings"
	"time"

	"github.com/ringsaturn/tzf"
	"go.uber.org/zap"
)

// TimeZone decides which time zone a record's wall-clock time is
// expressed in, for date filtering and for rendering local times.
type TimeZone interface {
	Location(r Record) *time.Location
}

// FixedZone expresses every record in the same location.
type FixedZone struct {
	Loc *time.Location
}

// Location implements TimeZone.
func (z FixedZone) Location(Record) *time.Location {
	if z.Loc == nil {
		return time.Local
	}
	return z.Loc
}

// GeoZone looks up the time zone at each record's coordinates. Zones
// that can't be resolved fall back to Fallback.
type GeoZone struct {
	Fallback *time.Location

	finder tzf.F
	cache  map[string]*time.Location
}

// NewGeoZone loads the time zone boundary data. It is relatively
// expensive, so it should be done once per run.
func NewGeoZone(fallback *time.Location) (*GeoZone, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("loading time zone finder: %w", err)
	}
	if fallback == nil {
		fallback = time.Local
	}
	return &GeoZone{
		Fallback: fallback,
		finder:   finder,
		cache:    make(map[string]*time.Location),
	}, nil
}

// Location implements TimeZone.
func (z *GeoZone) Location(r Record) *time.Location {
	name := z.finder.GetTimezoneName(r.Longitude(), r.Latitude())
	if name == "" {
		return z.Fallback
	}
	if loc, ok := z.cache[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		Log.Debug("unknown time zone; using fallback",
			zap.String("zone", name),
			zap.Error(err))
		loc = z.Fallback
	}
	z.cache[name] = loc
	return loc
}

// ParseTimeZone interprets a --timezone value: "" or "local" for the
// system zone, "auto" for per-point lookup, or an IANA zone name.
func ParseTimeZone(name string) (TimeZone, error) {
	switch strings.ToLower(name) {
	case "", "local":
		return FixedZone{Loc: time.Local}, nil
	case "auto":
		gz, err := NewGeoZone(time.Local)
		if err != nil {
			return nil, err
		}
		return gz, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, Error{Kind: ArgumentError, Err: err, Log: "unknown time zone " + name}
	}
	return FixedZone{Loc: loc}, nil
}

// LocalTime returns the record's time in the zone chosen by tz.
func LocalTime(r Record, tz TimeZone) time.Time {
	if tz == nil {
		tz = FixedZone{}
	}
	return r.Time().In(tz.Location(r))
}
