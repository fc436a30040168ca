// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// A Writer writes simulation reports.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first  bool
	config map[string]string
	order  []string
}

// NewWriter returns a Writer that writes reports to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, config: make(map[string]string)}
}

// Write writes rec to w. If rec's configuration differs from the
// configuration currently in effect, it first emits the configuration
// lines needed to change it.
//
// A configuration value can't be empty, since "key:" deletes key.
// Write rejects such a record without writing anything.
func (w *Writer) Write(rec *Record) error {
	for _, cfg := range rec.Config {
		if cfg.Value == "" {
			return fmt.Errorf("simfmt: record %s: empty value for configuration key %q", rec.Name, cfg.Key)
		}
	}
	if w.configChanged(rec) {
		w.writeConfig(rec)
	}

	w.buf.WriteString("Sim")
	w.buf.WriteString(rec.Name)
	w.buf.WriteByte(' ')
	w.buf.WriteString(strconv.Itoa(rec.N))
	for _, val := range rec.Values {
		w.buf.WriteByte(' ')
		w.buf.WriteString(strconv.FormatFloat(val.Value, 'g', -1, 64))
		w.buf.WriteByte(' ')
		w.buf.WriteString(val.Unit)
	}
	w.buf.WriteByte('\n')

	w.first = false

	// Writes to buf can't fail, so only the flush is checked.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func (w *Writer) configChanged(rec *Record) bool {
	if len(w.config) != len(rec.Config) {
		return true
	}
	for _, cfg := range rec.Config {
		if val, ok := w.config[cfg.Key]; !ok || val != cfg.Value {
			return true
		}
	}
	return false
}

func (w *Writer) writeConfig(rec *Record) {
	if !w.first {
		// Configuration blocks after records get an extra blank.
		w.buf.WriteByte('\n')
		w.first = true
	}

	// Walk known keys to find changes and deletions.
	for i := 0; i < len(w.order); i++ {
		key := w.order[i]
		val, ok := rec.ConfigValue(key)
		if !ok {
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.config, key)
			copy(w.order[i:], w.order[i+1:])
			w.order = w.order[:len(w.order)-1]
			i--
			continue
		}
		if val == w.config[key] {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", key, val)
		w.config[key] = val
	}

	// Add new keys.
	for _, cfg := range rec.Config {
		if _, ok := w.config[cfg.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		w.config[cfg.Key] = cfg.Value
		w.order = append(w.order, cfg.Key)
	}

	w.buf.WriteByte('\n')
}
