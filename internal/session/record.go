// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Failure kinds surfaced by this package. The original otui tooling crashed
// on any of these; callers here can match them with errors.Is.
var (
	ErrDirectoryNotFound   = errors.New("sessions directory not found")
	ErrInvalidRecordFormat = errors.New("invalid session record")
	ErrNotASequence        = errors.New("messages is not a sequence")
	ErrUnwritableFile      = errors.New("session file not writable")
)

// Record is one session document held as raw JSON bytes. Only gjson/sjson
// path operations touch the bytes, so field order and unknown fields are
// preserved across a strip-and-rewrite cycle.
type Record struct {
	Path string
	data []byte
}

// NewRecord validates data as JSON and wraps it. Path is only used for
// diagnostics.
func NewRecord(path string, data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecordFormat, path)
	}
	return &Record{Path: path, data: data}, nil
}

// Bytes returns the document re-indented with two spaces, matching how the
// otui store serializes sessions.
func (r *Record) Bytes() []byte {
	return pretty.Pretty(r.data)
}

// Get resolves a gjson path against the document.
func (r *Record) Get(path string) gjson.Result {
	return gjson.GetBytes(r.data, path)
}

// MessageCount returns the number of entries in messages, or 0 when the
// field is absent.
func (r *Record) MessageCount() int {
	return int(r.Get("messages.#").Int())
}

// CachedCount returns how many message entries carry a rendered field.
func (r *Record) CachedCount() int {
	count := 0
	for _, msg := range r.Get("messages").Array() {
		if msg.Get("rendered").Exists() {
			count++
		}
	}
	return count
}

// UpdatedAt returns the record's updated_at timestamp if present and
// parseable.
func (r *Record) UpdatedAt() (time.Time, bool) {
	v := r.Get("updated_at")
	if !v.Exists() {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v.String())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StripRendered deletes the rendered field from every message entry that has
// one and returns how many entries were touched. A record without a messages
// field is left alone. A messages field that is not an array is an
// ErrNotASequence.
func (r *Record) StripRendered() (int, error) {
	msgs := r.Get("messages")
	if !msgs.Exists() {
		return 0, nil
	}
	if !msgs.IsArray() {
		return 0, fmt.Errorf("%w: %s", ErrNotASequence, r.Path)
	}

	stripped := 0
	for i, msg := range msgs.Array() {
		if !msg.Get("rendered").Exists() {
			continue
		}
		// Deleting a field never reindexes the array, so the snapshot
		// indices stay valid across iterations.
		out, err := sjson.DeleteBytes(r.data, fmt.Sprintf("messages.%d.rendered", i))
		if err != nil {
			return stripped, fmt.Errorf("%w: %s: %v", ErrInvalidRecordFormat, r.Path, err)
		}
		r.data = out
		stripped++
	}

	return stripped, nil
}
