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

// Package testhelpers builds location history exports for tests.
package testhelpers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Location is one element of the "locations" array, written the way
// older Takeout exports have it (timestampMs as a quoted string).
type Location struct {
	TimestampMs int64
	LatitudeE7  int64
	LongitudeE7 int64
	Accuracy    *int64
	Speed       *int64
	Altitude    *int64
}

// MarshalJSON implements json.Marshaler.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TimestampMs string `json:"timestampMs"`
		LatitudeE7  int64  `json:"latitudeE7"`
		LongitudeE7 int64  `json:"longitudeE7"`
		Accuracy    *int64 `json:"accuracy,omitempty"`
		Speed       *int64 `json:"velocity,omitempty"`
		Altitude    *int64 `json:"altitude,omitempty"`
	}{
		TimestampMs: strconv.FormatInt(l.TimestampMs, 10),
		LatitudeE7:  l.LatitudeE7,
		LongitudeE7: l.LongitudeE7,
		Accuracy:    l.Accuracy,
		Speed:       l.Speed,
		Altitude:    l.Altitude,
	})
}

// FakeLocations returns n locations starting at start, step apart,
// with random coordinates and optional fields. The same seed always
// gives the same locations.
func FakeLocations(seed uint64, n int, start time.Time, step time.Duration) []Location {
	faker := gofakeit.New(seed)
	locs := make([]Location, 0, n)
	for i := range n {
		loc := Location{
			TimestampMs: start.Add(time.Duration(i) * step).UnixMilli(),
			LatitudeE7:  int64(faker.Float64Range(-89, 89) * 1e7),
			LongitudeE7: int64(faker.Float64Range(-179, 179) * 1e7),
		}
		if faker.Bool() {
			loc.Accuracy = Int64(int64(faker.IntRange(1, 2000)))
		}
		if faker.Bool() {
			loc.Speed = Int64(int64(faker.IntRange(0, 40)))
		}
		if faker.Bool() {
			loc.Altitude = Int64(int64(faker.IntRange(-20, 3000)))
		}
		locs = append(locs, loc)
	}
	return locs
}

// HistoryJSON returns the export document containing locs.
func HistoryJSON(t *testing.T, locs []Location) []byte {
	t.Helper()
	if locs == nil {
		locs = []Location{}
	}
	data, err := json.Marshal(map[string]any{"locations": locs})
	if err != nil {
		t.Fatalf("encoding location history: %v", err)
	}
	return data
}

// WriteHistory writes the export document containing locs to name
// (which may contain slashes) inside dir and returns its path.
func WriteHistory(t *testing.T, dir, name string, locs []Location) string {
	t.Helper()
	return WriteFile(t, dir, name, HistoryJSON(t, locs))
}

// WriteFile writes data to name inside dir, creating parent folders,
// and returns its path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	fpath := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		t.Fatalf("creating folder for %s: %v", name, err)
	}
	if err := os.WriteFile(fpath, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return fpath
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }
