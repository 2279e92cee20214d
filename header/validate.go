// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
	"sort"
)

// Validate certifies that the header is a safe index into a data section
// of dataLen bytes. It must succeed before any entry's byte range is used
// to slice a buffer: an unvalidated offset is an out-of-bounds read
// waiting to happen.
//
// The rules, checked in order and failing fast:
//
//   - no two entries may share a name
//   - each entry's dtype must be in the registered set
//   - each entry's byte size (element count times dtype width, empty
//     shape counting as one scalar) must be computable without overflow
//   - each entry's range must satisfy Begin <= End <= dataLen
//   - each entry's range length must equal its computed byte size
//   - sorted by Begin, the ranges must tile [0, dataLen] exactly:
//     no overlap, no gap, and no trailing bytes. An empty entry set
//     therefore requires an empty data section.
func (h *Header) Validate(dataLen uint64) error {
	seen := make(map[string]struct{}, len(h.Entries))
	for i := range h.Entries {
		name := h.Entries[i].Name
		if _, dup := seen[name]; dup {
			return wrapf(ErrDuplicateName, "%q", name)
		}
		seen[name] = struct{}{}
	}

	for i := range h.Entries {
		if err := validateEntry(&h.Entries[i], dataLen); err != nil {
			return err
		}
	}
	return h.validateContiguity(dataLen)
}

func validateEntry(e *Entry, dataLen uint64) error {
	size, err := e.ByteSize()
	if err != nil {
		return fmt.Errorf("tensor %q: %w", e.Name, err)
	}
	if e.Offsets.Begin > e.Offsets.End || e.Offsets.End > dataLen {
		return wrapf(ErrInvalidOffsets, "tensor %q: range [%d, %d) outside data section of %d bytes",
			e.Name, e.Offsets.Begin, e.Offsets.End, dataLen)
	}
	if got := e.Offsets.End - e.Offsets.Begin; got != size {
		return wrapf(ErrSizeMismatch, "tensor %q: range holds %d bytes, shape and dtype imply %d",
			e.Name, got, size)
	}
	return nil
}

func (h *Header) validateContiguity(dataLen uint64) error {
	ranges := make([]Offsets, len(h.Entries))
	for i := range h.Entries {
		ranges[i] = h.Entries[i].Offsets
	}
	sort.Slice(ranges, func(i, j int) bool {
		a, b := ranges[i], ranges[j]
		return a.Begin < b.Begin || (a.Begin == b.Begin && a.End < b.End)
	})

	next := uint64(0)
	for _, r := range ranges {
		if r.Begin != next {
			return wrapf(ErrOffsetsNotContiguous, "range starting at %d, expected %d", r.Begin, next)
		}
		next = r.End
	}
	if next != dataLen {
		return wrapf(ErrOffsetsNotContiguous, "ranges end at %d, data section holds %d bytes", next, dataLen)
	}
	return nil
}
