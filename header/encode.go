// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"encoding/binary"
	"strconv"

	"github.com/goccy/go-json"
)

// Encode serializes the header to its wire form: an 8-byte little-endian
// length prefix followed by the JSON object, space-padded to an 8-byte
// multiple. Output is deterministic: the metadata block (keys sorted)
// comes first, then the entries in slice order.
func Encode(h *Header) ([]byte, error) {
	body, err := appendJSON(make([]byte, 0, 256), h)
	if err != nil {
		return nil, err
	}
	// Pad so the data section starts 8-byte aligned.
	for len(body)%8 != 0 {
		body = append(body, ' ')
	}
	out := make([]byte, 0, PrefixSize+len(body))
	out = binary.LittleEndian.AppendUint64(out, uint64(len(body)))
	return append(out, body...), nil
}

func appendJSON(buf []byte, h *Header) ([]byte, error) {
	buf = append(buf, '{')
	first := true

	if len(h.Metadata) > 0 {
		meta, err := json.Marshal(h.Metadata)
		if err != nil {
			return nil, wrapf(ErrMalformedHeader, "metadata: %v", err)
		}
		buf = append(buf, `"`+MetadataKey+`":`...)
		buf = append(buf, meta...)
		first = false
	}

	seen := make(map[string]struct{}, len(h.Entries))
	for i := range h.Entries {
		e := &h.Entries[i]
		if e.Name == MetadataKey {
			return nil, wrapf(ErrDuplicateName, "%q is a reserved name", MetadataKey)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, wrapf(ErrDuplicateName, "%q", e.Name)
		}
		seen[e.Name] = struct{}{}

		if !first {
			buf = append(buf, ',')
		}
		first = false

		name, err := json.Marshal(e.Name)
		if err != nil {
			return nil, wrapf(ErrMalformedHeader, "tensor name %q: %v", e.Name, err)
		}
		buf = append(buf, name...)

		dt, err := e.DType.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf = append(buf, `:{"dtype":`...)
		buf = append(buf, dt...)
		buf = append(buf, `,"shape":`...)
		buf = appendShape(buf, e.Shape)
		buf = append(buf, `,"data_offsets":[`...)
		buf = strconv.AppendUint(buf, e.Offsets.Begin, 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, e.Offsets.End, 10)
		buf = append(buf, "]}"...)
	}
	return append(buf, '}'), nil
}

func appendShape(buf []byte, s Shape) []byte {
	buf = append(buf, '[')
	for i, dim := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, dim, 10)
	}
	return append(buf, ']')
}

// marshalUints backs Shape.MarshalJSON.
func marshalUints(vals []uint64) []byte {
	return appendShape(make([]byte, 0, len(vals)*4+2), vals)
}
