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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/mholt/archives"
)

// Load reads the location records from the file at filename. The file
// may be a JSON export (optionally compressed, like Records.json.gz),
// or a folder or archive with a Google Takeout structure, in which case
// the Records.json file is found within it.
//
// If the input has no records, ErrNoData is returned.
func Load(ctx context.Context, filename string) ([]Record, error) {
	fsys, err := archives.FileSystem(ctx, filename, nil)
	if err != nil {
		return nil, Error{Kind: InputReadError, Err: err, Log: filename}
	}
	var file fs.File
	switch fsys.(type) {
	case archives.FileFS:
		// a single, possibly compressed, file
		file, err = fsys.Open(".")
	default:
		file, err = openRecordsFile(fsys)
	}
	if err != nil {
		return nil, Error{Kind: InputReadError, Err: err, Log: filename}
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a location history document from r.
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Error{Kind: InputReadError, Err: err}
	}

	if !json.Valid(data) {
		return nil, Error{Kind: ParseError, Message: "input is not a valid location history JSON document"}
	}

	// valid JSON without a locations array (another kind of export,
	// or an array at the top level) has nothing to convert
	var doc struct {
		Locations json.RawMessage `json:"locations"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, ErrNoData
	}
	var locations []json.RawMessage
	if err := json.Unmarshal(doc.Locations, &locations); err != nil || len(locations) == 0 {
		return nil, ErrNoData
	}

	records := make([]Record, len(locations))
	for i, raw := range locations {
		if err := json.Unmarshal(raw, &records[i]); err != nil {
			return nil, Error{Kind: ParseError, Err: err, Log: fmt.Sprintf("location %d", i)}
		}
	}

	return records, nil
}

// openRecordsFile finds Records.json in a Takeout-structured file system;
// the user may have given us the archive, the extracted "Takeout" folder,
// the "Location History" folder itself, or anything in between.
func openRecordsFile(fsys fs.FS) (fs.File, error) {
	var err error
	for _, dir := range []string{
		takeoutLocationHistoryPath2024,
		takeoutLocationHistoryPathPre2024,
		path.Join("Takeout", takeoutLocationHistoryPath2024),
		path.Join("Takeout", takeoutLocationHistoryPathPre2024),
		".",
	} {
		var file fs.File
		file, err = archives.TopDirOpen(fsys, path.Join(dir, recordsFilename))
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("locating %s: %w", recordsFilename, err)
}

// The path within the Google Takeout archive of the location history records.
const (
	takeoutLocationHistoryPathPre2024 = "Location History"
	takeoutLocationHistoryPath2024    = "Location History (Timeline)"
	recordsFilename                   = "Records.json"
)
