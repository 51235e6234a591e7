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
	"slices"
	"time"
)

// DateLayout is the canonical layout of --startdate and --enddate
// values. ParseDate also accepts single-digit months and days.
const DateLayout = "2006-01-02"

const dateParseLayout = "2006-1-2"

// Date is a calendar date without a time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD date; "2014-1-1" is also fine.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateParseLayout, s)
	if err != nil {
		return Date{}, Argumentf("not a valid date: '%s'", s)
	}
	return Date{t.Year(), t.Month(), t.Day()}, nil
}

// Midnight returns the start of the date in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) String() string {
	return d.Midnight(time.UTC).Format(DateLayout)
}

// DateRange keeps records between two optional dates. Both bounds are
// inclusive and fall at midnight in the record's time zone, so an End
// date only admits records at exactly 00:00:00 of that day.
type DateRange struct {
	Start, End *Date
}

// IsZero returns true if neither bound is set.
func (dr DateRange) IsZero() bool { return dr.Start == nil && dr.End == nil }

// Contains returns true if the record is within the range.
func (dr DateRange) Contains(r Record, tz TimeZone) bool {
	if dr.IsZero() {
		return true
	}
	t := LocalTime(r, tz)
	if dr.Start != nil && t.Before(dr.Start.Midnight(t.Location())) {
		return false
	}
	if dr.End != nil && t.After(dr.End.Midnight(t.Location())) {
		return false
	}
	return true
}

// FilterDates returns the records within dr, preserving order.
func FilterDates(records []Record, dr DateRange, tz TimeZone) []Record {
	if dr.IsZero() {
		return records
	}
	return filter(records, func(r Record) bool { return dr.Contains(r, tz) })
}

// FilterPolygon returns the records inside poly, preserving order. A
// zero polygon keeps everything.
func FilterPolygon(records []Record, poly Polygon) []Record {
	if poly.IsZero() {
		return records
	}
	return filter(records, poly.ContainsRecord)
}

// SortChronological returns the records sorted by timestamp, oldest
// first. Records with equal timestamps keep their relative order.
func SortChronological(records []Record) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		switch {
		case a.TimestampMs < b.TimestampMs:
			return -1
		case a.TimestampMs > b.TimestampMs:
			return 1
		}
		return 0
	})
	return sorted
}

func filter(records []Record, keep func(Record) bool) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
