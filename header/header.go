// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package header encodes, decodes and validates the metadata prefix of a
// tensorfile byte stream.
//
// The header is untrusted input: Decode is strict about structure, and a
// decoded Header must pass Validate against the data section length before
// any of its byte ranges may be used to slice a buffer.
package header

import (
	"github.com/mlfoundry/tensorfile/dtype"
)

// MetadataKey is the reserved top-level key holding free-form metadata.
// It can never name a real tensor.
const MetadataKey = "__metadata__"

// Offsets is the [Begin, End) byte range of a tensor within the data
// section. Begin is inclusive, End exclusive, both relative to the start
// of the data section.
type Offsets struct {
	Begin uint64
	End   uint64
}

// Shape is the ordered sequence of dimension extents of a tensor.
// The element count is the product of all entries; an empty shape is a
// scalar with element count 1.
type Shape []uint64

// MarshalJSON emits a nil Shape as "[]" rather than "null", as the wire
// format requires.
func (s Shape) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("[]"), nil
	}
	return marshalUints(s), nil
}

// ElemCount returns the number of elements implied by the shape, or an
// error wrapping ErrInvalidShape on multiplication overflow.
func (s Shape) ElemCount() (uint64, error) {
	count := uint64(1)
	for _, dim := range s {
		c, ok := mulNoOverflow(count, dim)
		if !ok {
			return 0, wrapf(ErrInvalidShape, "element count overflows: %v", []uint64(s))
		}
		count = c
	}
	return count, nil
}

// Entry describes one tensor as declared in the header.
type Entry struct {
	Name    string
	DType   dtype.DType
	Shape   Shape
	Offsets Offsets
}

// ByteSize returns the byte length implied by the entry's shape and
// dtype width, with overflow checks.
func (e *Entry) ByteSize() (uint64, error) {
	if err := e.DType.Validate(); err != nil {
		return 0, err
	}
	count, err := e.Shape.ElemCount()
	if err != nil {
		return 0, err
	}
	size, ok := mulNoOverflow(count, uint64(e.DType.Size()))
	if !ok {
		return 0, wrapf(ErrInvalidShape, "byte size overflows: %v x %s", []uint64(e.Shape), e.DType)
	}
	return size, nil
}

// Header is the decoded metadata of a tensorfile stream: every tensor's
// dtype, shape and byte range, plus the free-form metadata block.
// Entries preserve the order in which they appear in the header.
type Header struct {
	Entries  []Entry
	Metadata map[string]string

	index map[string]int
}

// New builds a Header from entries in the given order.
// It does not validate; call Validate before trusting offsets.
func New(entries []Entry, metadata map[string]string) *Header {
	h := &Header{
		Entries:  entries,
		Metadata: metadata,
		index:    make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if _, ok := h.index[e.Name]; !ok {
			h.index[e.Name] = i
		}
	}
	return h
}

// Lookup returns the entry for the given tensor name, if present.
func (h *Header) Lookup(name string) (*Entry, bool) {
	i, ok := h.index[name]
	if !ok {
		return nil, false
	}
	return &h.Entries[i], true
}

// Names returns all tensor names in header order.
func (h *Header) Names() []string {
	if len(h.Entries) == 0 {
		return nil
	}
	names := make([]string, len(h.Entries))
	for i := range h.Entries {
		names[i] = h.Entries[i].Name
	}
	return names
}

// mulNoOverflow multiplies a and b, reporting whether the product fits
// in a uint64.
func mulNoOverflow(a, b uint64) (uint64, bool) {
	c := a * b
	if a > 1 && b > 1 && c/a != b {
		return 0, false
	}
	return c, true
}
