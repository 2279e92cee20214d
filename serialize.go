// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"fmt"
	"io"

	"github.com/mlfoundry/tensorfile/header"
)

// Serialize encodes the container into the tensorfile wire format and
// returns the complete byte stream. Output is deterministic for identical
// logical input.
func Serialize(c *Container) ([]byte, error) {
	hdr, dataLen, err := layout(c)
	if err != nil {
		return nil, err
	}
	enc, err := header.Encode(hdr)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, uint64(len(enc))+dataLen)
	buf = append(buf, enc...)
	for i := range c.tensors {
		buf = append(buf, c.tensors[i].data...)
	}
	return buf, nil
}

// SerializeTo streams the container to w in the tensorfile wire format,
// bounding peak memory to the header size when tensors are large.
// The data pass iterates tensors in the exact order used to compute the
// header offsets; any other order would silently corrupt the file.
func SerializeTo(c *Container, w io.Writer) error {
	hdr, _, err := layout(c)
	if err != nil {
		return err
	}
	enc, err := header.Encode(hdr)
	if err != nil {
		return err
	}
	if _, err := w.Write(enc); err != nil {
		return err
	}
	for i := range c.tensors {
		if _, err := w.Write(c.tensors[i].data); err != nil {
			return fmt.Errorf("failed to write data of tensor %q: %w", c.tensors[i].name, err)
		}
	}
	return nil
}

// layout assigns each tensor a contiguous byte range in insertion order:
// the first starts at 0, each next starts where the previous ended.
func layout(c *Container) (*header.Header, uint64, error) {
	entries := make([]header.Entry, len(c.tensors))
	offset := uint64(0)
	for i := range c.tensors {
		t := &c.tensors[i]
		if err := t.dt.Validate(); err != nil {
			return nil, 0, fmt.Errorf("tensor %q: %w", t.name, err)
		}
		n := uint64(len(t.data))
		entries[i] = header.Entry{
			Name:    t.name,
			DType:   t.dt,
			Shape:   t.shape,
			Offsets: header.Offsets{Begin: offset, End: offset + n},
		}
		offset += n
	}
	return header.New(entries, c.meta), offset, nil
}
