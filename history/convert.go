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
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Options configures a conversion.
type Options struct {
	Input  string // path to the export (file, folder, or archive)
	Output string // path of the file to write; see DefaultOutput
	Format string // name of a registered format

	Dates         DateRange
	Polygon       Polygon
	Chronological bool

	RenderOptions

	// Optional; defaults to Log.
	Log *zap.Logger
}

// Stats summarizes a finished conversion.
type Stats struct {
	Loaded  int // records read from the input
	Written int // records that passed the filters and were rendered
}

// Convert loads, filters, optionally sorts, and renders location
// history according to opt. If the input has no records, ErrNoData is
// returned and no output file is created.
//
// Filters run in this order: date range, then (if enabled) sorting,
// then the polygon.
func Convert(ctx context.Context, opt Options) (Stats, error) {
	logger := opt.Log
	if logger == nil {
		logger = Log
	}

	format, err := GetFormat(opt.Format)
	if err != nil {
		return Stats{}, err
	}
	if opt.Output == "" {
		opt.Output = DefaultOutput(opt.Input, format.Name)
	}
	if SamePath(opt.Input, opt.Output) {
		return Stats{}, Argumentf("input and output have to be different files")
	}
	if opt.TimeZone == nil {
		opt.TimeZone = FixedZone{}
	}

	records, err := Load(ctx, opt.Input)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Loaded: len(records)}
	logger.Debug("loaded location history",
		zap.String("input", opt.Input),
		zap.Int("records", stats.Loaded))

	records = FilterDates(records, opt.Dates, opt.TimeZone)
	if opt.Chronological {
		records = SortChronological(records)
	}
	if !opt.Polygon.IsZero() {
		logger.Info("polygon created", zap.Stringer("polygon", opt.Polygon))
		records = FilterPolygon(records, opt.Polygon)
	}
	stats.Written = len(records)

	renderer := format.NewRenderer(opt.RenderOptions)
	if err := writeOutput(opt.Output, func(w io.Writer) error {
		return renderer.Render(w, records)
	}); err != nil {
		return stats, err
	}

	logger.Info("wrote location history",
		zap.String("format", format.Name),
		zap.String("output", opt.Output),
		zap.Int("loaded", stats.Loaded),
		zap.Int("written", stats.Written))

	return stats, nil
}

// DefaultOutput returns the input path with its extension replaced by
// the format name.
func DefaultOutput(input, format string) string {
	input = filepath.Clean(input)
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
}

// SamePath returns true if a and b refer to the same path.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// writeOutput creates filename and writes it with render. The file is
// always closed; if a write fails partway, the file may be incomplete.
func writeOutput(filename string, render func(io.Writer) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return Error{Kind: OutputWriteError, Err: err, Message: "error creating output file for writing"}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = Error{Kind: OutputWriteError, Err: cerr, Log: filename}
		}
	}()

	bw := bufio.NewWriter(f)
	if err := render(bw); err != nil {
		return Error{Kind: OutputWriteError, Err: err, Log: filename}
	}
	if err := bw.Flush(); err != nil {
		return Error{Kind: OutputWriteError, Err: err, Log: filename}
	}
	return nil
}
