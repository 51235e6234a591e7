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

package kmldoc

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/timelinize/lhconv/history"
)

type kmlDoc struct {
	Document struct {
		Name       string `xml:"name"`
		Placemarks []struct {
			When         string `xml:"TimeStamp>when"`
			Coordinates  string `xml:"Point>coordinates"`
			ExtendedData []struct {
				Name  string `xml:"name,attr"`
				Value string `xml:"value"`
			} `xml:"ExtendedData>Data"`
		} `xml:"Placemark"`
	} `xml:"Document"`
}

func TestRender(t *testing.T) {
	records := []history.Record{
		{TimestampMs: 1388534400000, LatitudeE7: 525200000, LongitudeE7: 134050000},
		{TimestampMs: 1388534461000, LatitudeE7: -337000000, LongitudeE7: 1512000000,
			Accuracy: int64Ptr(25), Altitude: int64Ptr(112)},
	}

	var buf bytes.Buffer
	if err := (Renderer{}).Render(&buf, records); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var doc kmlDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Expected valid XML, got: %v\n%s", err, buf.String())
	}
	if doc.Document.Name != DocumentName {
		t.Errorf("Expected document name %q, got %q", DocumentName, doc.Document.Name)
	}
	if len(doc.Document.Placemarks) != len(records) {
		t.Fatalf("Expected %d placemarks, got %d", len(records), len(doc.Document.Placemarks))
	}

	for i, tc := range []struct {
		when   string
		coords string
		data   map[string]string
	}{
		{when: "2014-01-01T00:00:00Z", coords: "13.405,52.52"},
		{when: "2014-01-01T00:01:01Z", coords: "151.2,-33.7", data: map[string]string{"accuracy": "25", "altitude": "112"}},
	} {
		pm := doc.Document.Placemarks[i]
		if pm.When != tc.when {
			t.Errorf("Placemark %d: Expected when %q, got %q", i, tc.when, pm.When)
		}
		if !strings.HasPrefix(strings.TrimSpace(pm.Coordinates), tc.coords) {
			t.Errorf("Placemark %d: Expected coordinates %q, got %q", i, tc.coords, pm.Coordinates)
		}
		if len(pm.ExtendedData) != len(tc.data) {
			t.Errorf("Placemark %d: Expected %d data elements, got %+v", i, len(tc.data), pm.ExtendedData)
		}
		for _, d := range pm.ExtendedData {
			if tc.data[d.Name] != d.Value {
				t.Errorf("Placemark %d: Expected %s=%q, got %q", i, d.Name, tc.data[d.Name], d.Value)
			}
		}
	}
}

func TestPlacemarkElementOrder(t *testing.T) {
	records := []history.Record{
		{TimestampMs: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), Speed: int64Ptr(3)},
	}

	var buf bytes.Buffer
	if err := (Renderer{}).Render(&buf, records); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	out := buf.String()

	timeStamp := strings.Index(out, "<TimeStamp>")
	extendedData := strings.Index(out, "<ExtendedData>")
	point := strings.Index(out, "<Point>")
	if timeStamp < 0 || extendedData < 0 || point < 0 {
		t.Fatalf("Expected TimeStamp, ExtendedData, and Point elements, got:\n%s", out)
	}
	if timeStamp >= extendedData || extendedData >= point {
		t.Errorf("Expected TimeStamp < ExtendedData < Point, got %d, %d, %d", timeStamp, extendedData, point)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (Renderer{}).Render(&buf, nil); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	var doc kmlDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Expected valid XML, got: %v", err)
	}
	if len(doc.Document.Placemarks) != 0 {
		t.Errorf("Expected no placemarks, got %d", len(doc.Document.Placemarks))
	}
}

func int64Ptr(v int64) *int64 { return &v }
