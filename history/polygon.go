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
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// LatLon is a coordinate pair in degrees.
type LatLon struct {
	Lat, Lon float64
}

// ParseLatLon parses a "lat,lon" pair such as "52.52,13.405".
func ParseLatLon(s string) (LatLon, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok || strings.Contains(lonStr, ",") {
		return LatLon{}, Argumentf("not a valid point: '%s'", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return LatLon{}, Argumentf("not a valid point: '%s': bad latitude", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return LatLon{}, Argumentf("not a valid point: '%s': bad longitude", s)
	}
	return LatLon{Lat: lat, Lon: lon}, nil
}

// Polygon is a closed ring of vertices that records can be tested
// against. Points on the boundary are considered inside.
type Polygon struct {
	vertices []LatLon
	poly     orb.Polygon
}

// NewPolygon makes a polygon from the given points. Two points are
// taken as the bottom-left and top-right corners of a rectangle; three
// or more are used as the ring, in order.
func NewPolygon(points []LatLon) (Polygon, error) {
	if len(points) < 2 { //nolint:mnd
		return Polygon{}, Argumentf("polygon needs at least 2 points")
	}

	vertices := points
	if len(points) == 2 { //nolint:mnd
		bottomLeft, topRight := points[0], points[1]
		vertices = []LatLon{
			{bottomLeft.Lat, bottomLeft.Lon},
			{bottomLeft.Lat, topRight.Lon},
			{topRight.Lat, topRight.Lon},
			{topRight.Lat, bottomLeft.Lon},
		}
	}

	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v.Lon, v.Lat})
	}
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return Polygon{
		vertices: append([]LatLon(nil), vertices...),
		poly:     orb.Polygon{ring},
	}, nil
}

// Vertices returns the polygon's vertices (without the closing point).
func (p Polygon) Vertices() []LatLon { return p.vertices }

// IsZero returns true if p was not made by NewPolygon.
func (p Polygon) IsZero() bool { return len(p.poly) == 0 }

// Contains returns true if the point (in degrees) is inside the polygon
// or on its boundary.
func (p Polygon) Contains(lat, lon float64) bool {
	if p.IsZero() {
		return false
	}
	return planar.PolygonContains(p.poly, orb.Point{lon, lat})
}

// ContainsRecord is like Contains, but for a record's coordinates.
func (p Polygon) ContainsRecord(r Record) bool {
	return p.Contains(r.Latitude(), r.Longitude())
}

func (p Polygon) String() string {
	pairs := make([]string, 0, len(p.vertices))
	for _, v := range p.vertices {
		pairs = append(pairs, "("+strconv.FormatFloat(v.Lat, 'f', -1, 64)+", "+strconv.FormatFloat(v.Lon, 'f', -1, 64)+")")
	}
	return "[" + strings.Join(pairs, ", ") + "]"
}
