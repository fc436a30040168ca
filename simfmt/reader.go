// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// A Reader reads simulation reports.
//
// Its API is modeled on bufio.Scanner. The Reader retains ownership
// of the Record it returns; a caller should Clone anything it needs to
// keep.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error

	record    Record
	recordErr error
}

// SyntaxError is a malformed record line.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRecord = errors.New("Reader.Scan has not been called")

// NewReader returns a Reader that parses the report in r. fileName
// is used only in error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to read from a new input, discarding all
// configuration. initConfig is an optional list of key/value pairs
// that are set before reading.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.recordErr = noRecord

	r.record.Config = r.record.Config[:0]
	r.record.Name = ""
	r.record.N = 0
	r.record.Values = r.record.Values[:0]

	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	for i := 0; i < len(initConfig); i += 2 {
		r.setConfig(initConfig[i], initConfig[i+1])
	}
}

const recordPrefix = "Sim"

// Scan advances to the next record and reports whether there was
// one. At the end of the input, or on an I/O error, it returns false
// and the caller should check Err.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Text()
		if strings.HasPrefix(line, recordPrefix) {
			r.recordErr = r.parseRecordLine(line[len(recordPrefix):])
			return true
		}
		if key, val, ok := parseKeyValueLine(line); ok {
			if val == "" {
				r.deleteConfig(key)
			} else {
				r.setConfig(key, val)
			}
		}
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
	}
	return false
}

func (r *Reader) setConfig(key, val string) {
	for i := range r.record.Config {
		if r.record.Config[i].Key == key {
			r.record.Config[i].Value = val
			return
		}
	}
	r.record.Config = append(r.record.Config, Config{key, val})
}

func (r *Reader) deleteConfig(key string) {
	cfg := r.record.Config
	for i := range cfg {
		if cfg[i].Key == key {
			r.record.Config = append(cfg[:i], cfg[i+1:]...)
			return
		}
	}
}

// parseKeyValueLine parses line as a "key: value" pair. A key begins
// with a lower case letter and contains no spaces or upper case
// letters.
func parseKeyValueLine(line string) (key, val string, ok bool) {
	for i := 0; i < len(line); {
		c, n := utf8.DecodeRuneInString(line[i:])
		if i == 0 && !unicode.IsLower(c) {
			return
		}
		if unicode.IsSpace(c) || unicode.IsUpper(c) {
			return
		}
		if i > 0 && c == ':' {
			key, val = line[:i], line[i+1:]
			break
		}
		i += n
	}
	if key == "" {
		return
	}
	if val == "" {
		return key, "", true
	}
	// A value must be separated from the colon by blanks.
	trimmed := strings.TrimLeft(val, " \t")
	if trimmed == val {
		return "", "", false
	}
	return key, strings.TrimRight(trimmed, " \t"), true
}

func (r *Reader) parseRecordLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return &SyntaxError{r.fileName, r.lineNum, "missing record name"}
	}
	r.record.Name = fields[0]
	fields = fields[1:]

	if len(fields) == 0 {
		return &SyntaxError{r.fileName, r.lineNum, "missing trial count"}
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return &SyntaxError{r.fileName, r.lineNum, "parsing trial count: " + errors.Unwrap(err).Error()}
	}
	r.record.N = n
	fields = fields[1:]

	r.record.Values = r.record.Values[:0]
	if len(fields) == 0 {
		return &SyntaxError{r.fileName, r.lineNum, "missing measurements"}
	}
	for len(fields) > 0 {
		val, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return &SyntaxError{r.fileName, r.lineNum, "parsing measurement: " + errors.Unwrap(err).Error()}
		}
		if len(fields) < 2 {
			return &SyntaxError{r.fileName, r.lineNum, "missing units"}
		}
		r.record.Values = append(r.record.Values, Value{val, fields[1]})
		fields = fields[2:]
	}
	return nil
}

// Record returns the last record read, or an error if it was
// malformed. Parse errors are not fatal; the caller may keep calling
// Scan.
//
// The returned Record is overwritten by the next call to Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recordErr != nil {
		return nil, r.recordErr
	}
	return &r.record, nil
}

// Err returns the first non-EOF I/O error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}
