// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/mlfoundry/tensorfile/dtype"
)

const (
	// PrefixSize is the size in bytes of the little-endian length prefix.
	PrefixSize = 8

	// MaxHeaderSize caps the declared header length. A hostile prefix
	// claiming a larger header is rejected before any allocation or
	// parsing takes place.
	MaxHeaderSize = 100_000_000
)

// wrapf returns an error of the given kind with formatted context.
func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Decode reads the length prefix and parses the JSON header from the
// start of buf, which is expected to hold a complete tensorfile stream.
// It returns the decoded header and the declared header length N; the
// data section starts at buf[PrefixSize+N:].
//
// Decode performs no offset validation: the result must pass Validate
// against the data section length before any of its byte ranges is used.
func Decode(buf []byte) (*Header, uint64, error) {
	if len(buf) < PrefixSize {
		return nil, 0, wrapf(ErrTruncatedHeader, "buffer holds %d bytes, need at least %d", len(buf), PrefixSize)
	}
	n := binary.LittleEndian.Uint64(buf)
	if n > MaxHeaderSize {
		return nil, 0, wrapf(ErrHeaderTooLarge, "declared length %d exceeds limit %d", n, MaxHeaderSize)
	}
	if n+PrefixSize > uint64(len(buf)) {
		return nil, 0, wrapf(ErrTruncatedHeader, "declared length %d exceeds buffer end", n)
	}
	h, err := decodeJSON(buf[PrefixSize : PrefixSize+n])
	if err != nil {
		return nil, 0, err
	}
	return h, n, nil
}

// decodeJSON parses the header object token by token so that entry order
// is preserved and duplicate keys are caught (a plain map decode would
// silently keep the last occurrence).
func decodeJSON(raw []byte) (*Header, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return nil, wrapf(ErrMalformedHeader, "%v", err)
	}
	if tok != json.Delim('{') {
		return nil, wrapf(ErrMalformedHeader, "top-level value is not an object")
	}

	var (
		entries  []Entry
		metadata map[string]string
		seen     = make(map[string]struct{})
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, wrapf(ErrMalformedHeader, "%v", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, wrapf(ErrMalformedHeader, "unexpected token %v", keyTok)
		}
		if _, dup := seen[key]; dup {
			return nil, wrapf(ErrDuplicateName, "%q", key)
		}
		seen[key] = struct{}{}

		if key == MetadataKey {
			if err := dec.Decode(&metadata); err != nil {
				return nil, wrapf(ErrMalformedHeader, "%s: %v", MetadataKey, err)
			}
			continue
		}
		entry, err := decodeEntry(dec, key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, wrapf(ErrMalformedHeader, "%v", err)
	}
	// Only whitespace padding may follow the object.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, wrapf(ErrMalformedHeader, "trailing data after header object")
	}
	return New(entries, metadata), nil
}

func decodeEntry(dec *json.Decoder, name string) (Entry, error) {
	var raw struct {
		DType   *string        `json:"dtype"`
		Shape   *[]json.Number `json:"shape"`
		Offsets *[]json.Number `json:"data_offsets"`
	}
	if err := dec.Decode(&raw); err != nil {
		return Entry{}, wrapf(ErrMalformedHeader, "tensor %q: %v", name, err)
	}
	switch {
	case raw.DType == nil:
		return Entry{}, wrapf(ErrMalformedHeader, `tensor %q: missing "dtype"`, name)
	case raw.Shape == nil:
		return Entry{}, wrapf(ErrMalformedHeader, `tensor %q: missing "shape"`, name)
	case raw.Offsets == nil:
		return Entry{}, wrapf(ErrMalformedHeader, `tensor %q: missing "data_offsets"`, name)
	}

	dt, err := dtype.Parse(*raw.DType)
	if err != nil {
		return Entry{}, fmt.Errorf("tensor %q: %w", name, err)
	}

	var shape Shape
	if dims := *raw.Shape; len(dims) > 0 {
		shape = make(Shape, len(dims))
		for i, num := range dims {
			if shape[i], err = parseUint(num); err != nil {
				return Entry{}, wrapf(ErrInvalidShape, "tensor %q: dimension %d: %v", name, i, err)
			}
		}
	}

	if len(*raw.Offsets) != 2 {
		return Entry{}, wrapf(ErrMalformedHeader, `tensor %q: "data_offsets" must hold exactly 2 values, got %d`, name, len(*raw.Offsets))
	}
	var offsets Offsets
	if offsets.Begin, err = parseUint((*raw.Offsets)[0]); err != nil {
		return Entry{}, wrapf(ErrInvalidOffsets, "tensor %q: begin: %v", name, err)
	}
	if offsets.End, err = parseUint((*raw.Offsets)[1]); err != nil {
		return Entry{}, wrapf(ErrInvalidOffsets, "tensor %q: end: %v", name, err)
	}

	return Entry{
		Name:    name,
		DType:   dt,
		Shape:   shape,
		Offsets: offsets,
	}, nil
}

// parseUint converts a JSON number to uint64, rejecting negative and
// fractional values.
func parseUint(num json.Number) (uint64, error) {
	return strconv.ParseUint(num.String(), 10, 64)
}
