// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"io"
	"os"
)

// FileKey is the configuration key Files uses to record which input a
// record came from. It can't appear in a report, since keys begin
// with a lower case letter.
const FileKey = ".file"

// Files reads records from a sequence of report files, one after
// another, as if they were one report. Configuration never carries
// over from one file to the next.
type Files struct {
	// Paths is the list of files to read.
	Paths []string

	// AllowStdin treats the path "-" as stdin, and an empty Paths
	// as a single "-".
	AllowStdin bool

	// TagFile sets FileKey on every record to the path of its file,
	// exactly as it appears in Paths.
	TagFile bool

	next   int
	cur    io.ReadCloser
	reader Reader
	err    error
}

// Scan advances to the next record in the sequence of files and
// reports whether there was one. At the end of the last file, or on
// an I/O error, it returns false and the caller should check Err.
func (f *Files) Scan() bool {
	for f.err == nil {
		if f.cur == nil && !f.nextFile() {
			return false
		}
		if f.reader.Scan() {
			return true
		}
		f.err = f.reader.Err()
		f.cur.Close()
		f.cur = nil
	}
	return false
}

func (f *Files) inputs() []string {
	if f.AllowStdin && len(f.Paths) == 0 {
		return []string{"-"}
	}
	return f.Paths
}

// nextFile opens the next input and points the reader at it.
func (f *Files) nextFile() bool {
	paths := f.inputs()
	if f.next >= len(paths) {
		return false
	}
	path := paths[f.next]
	f.next++

	if f.AllowStdin && path == "-" {
		f.cur = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			f.err = err
			return false
		}
		f.cur = file
	}
	var init []string
	if f.TagFile {
		init = []string{FileKey, path}
	}
	f.reader.Reset(f.cur, path, init...)
	return true
}

// Record returns the last record read, or an error if it was
// malformed. Parse errors are not fatal.
func (f *Files) Record() (*Record, error) {
	return f.reader.Record()
}

// Err returns the first non-EOF I/O error.
func (f *Files) Err() error {
	return f.err
}
