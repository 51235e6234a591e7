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

package history_test

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/timelinize/lhconv/history"
	"github.com/timelinize/lhconv/internal/testhelpers"
)

var testStart = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	locs := testhelpers.FakeLocations(1, 25, testStart, time.Minute)
	input := testhelpers.WriteHistory(t, dir, "Records.json", locs)

	records, err := history.Load(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expectLocations(t, locs, records)
}

func TestLoadCompressedFile(t *testing.T) {
	dir := t.TempDir()
	locs := testhelpers.FakeLocations(2, 10, testStart, time.Minute)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(testhelpers.HistoryJSON(t, locs)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	input := testhelpers.WriteFile(t, dir, "Records.json.gz", buf.Bytes())

	records, err := history.Load(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expectLocations(t, locs, records)
}

func TestLoadTakeoutFolder(t *testing.T) {
	for i, inner := range []string{
		"Takeout/Location History (Timeline)/Records.json",
		"Takeout/Location History/Records.json",
		"Location History/Records.json",
	} {
		dir := t.TempDir()
		locs := testhelpers.FakeLocations(uint64(i), 5, testStart, time.Minute)
		testhelpers.WriteHistory(t, dir, inner, locs)

		records, err := history.Load(context.Background(), dir)
		if err != nil {
			t.Errorf("Test %d (%s): Expected no error, got: %v", i, inner, err)
			continue
		}
		expectLocations(t, locs, records)
	}
}

func TestLoadTakeoutArchive(t *testing.T) {
	dir := t.TempDir()
	locs := testhelpers.FakeLocations(3, 8, testStart, time.Minute)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("Takeout/Location History (Timeline)/Records.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(testhelpers.HistoryJSON(t, locs)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	input := testhelpers.WriteFile(t, dir, "takeout-20240101T000000Z-001.zip", buf.Bytes())

	records, err := history.Load(context.Background(), input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	expectLocations(t, locs, records)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	for i, tc := range []struct {
		name   string
		data   string // not written if empty
		expect error
	}{
		{name: "missing.json", expect: history.InputReadError},
		{name: "garbage.json", data: "this is not json", expect: history.ParseError},
		{name: "element.json", data: `{"locations":[{"latitudeE7":1,"longitudeE7":2}]}`, expect: history.ParseError},
		{name: "empty.json", data: `{"locations":[]}`, expect: history.ErrNoData},
		{name: "other.json", data: `{"semanticSegments":[]}`, expect: history.ErrNoData},
		{name: "object.json", data: `{"locations":{}}`, expect: history.ErrNoData},
		{name: "null.json", data: `{"locations":null}`, expect: history.ErrNoData},
		{name: "array.json", data: `[{"timestampMs":"1","latitudeE7":1,"longitudeE7":2}]`, expect: history.ErrNoData},
		{name: "truncated.json", data: `{"locations":[{"timestampMs":"1",`, expect: history.ParseError},
	} {
		input := filepath.Join(dir, tc.name)
		if tc.data != "" {
			if err := os.WriteFile(input, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
		}
		_, err := history.Load(context.Background(), input)
		if !errors.Is(err, tc.expect) {
			t.Errorf("Test %d (%s): Expected %v, got: %v", i, tc.name, tc.expect, err)
		}
	}
}

func TestDecodeReportsElementIndex(t *testing.T) {
	doc := `{"locations":[{"timestampMs":"1","latitudeE7":1,"longitudeE7":2},{"timestampMs":"2","latitudeE7":1}]}`
	_, err := history.Decode(strings.NewReader(doc))
	if err == nil || !strings.Contains(err.Error(), "location 1") {
		t.Errorf("Expected error about location 1, got: %v", err)
	}
}

func expectLocations(t *testing.T, expect []testhelpers.Location, actual []history.Record) {
	t.Helper()
	if len(actual) != len(expect) {
		t.Fatalf("Expected %d records, got %d", len(expect), len(actual))
	}
	for i, loc := range expect {
		rec := actual[i]
		if rec.TimestampMs != loc.TimestampMs || rec.LatitudeE7 != loc.LatitudeE7 || rec.LongitudeE7 != loc.LongitudeE7 {
			t.Errorf("Record %d: Expected %+v, got %+v", i, loc, rec)
		}
		if (rec.Accuracy == nil) != (loc.Accuracy == nil) || (rec.Speed == nil) != (loc.Speed == nil) || (rec.Altitude == nil) != (loc.Altitude == nil) {
			t.Errorf("Record %d: Expected optional fields like %+v, got %+v", i, loc, rec)
		}
	}
}
