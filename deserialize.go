// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"github.com/mlfoundry/tensorfile/dtype"
	"github.com/mlfoundry/tensorfile/header"
)

// View is the borrowed-mode result of deserialization: a validated index
// over a complete tensorfile byte buffer. Every TensorView it hands out
// aliases that buffer, so the buffer must outlive the View and all views
// derived from it, and must not be modified while they are in use.
type View struct {
	hdr  *header.Header
	data []byte
}

// Deserialize parses and validates the header of buf, which must hold a
// complete tensorfile stream, and returns a zero-copy View over it.
// No tensor bytes are copied or even touched; with a memory-mapped buffer
// only the pages actually read later are faulted in.
//
// Malformed or hostile input is rejected with an error wrapping one of
// the package's error kinds; no byte range is ever exposed before the
// whole header validates.
func Deserialize(buf []byte) (*View, error) {
	hdr, n, err := header.Decode(buf)
	if err != nil {
		return nil, err
	}
	data := buf[header.PrefixSize+int(n):]
	if err := hdr.Validate(uint64(len(data))); err != nil {
		return nil, err
	}
	return &View{hdr: hdr, data: data}, nil
}

// DeserializeOwned parses and validates buf exactly like Deserialize,
// then copies every tensor's bytes into freshly owned buffers. The result
// is fully independent of buf and safe to retain after buf is gone.
func DeserializeOwned(buf []byte) (*Container, error) {
	v, err := Deserialize(buf)
	if err != nil {
		return nil, err
	}
	c := NewContainer()
	for i := range v.hdr.Entries {
		if err := c.Add(v.entryView(&v.hdr.Entries[i]).Owned()); err != nil {
			return nil, err
		}
	}
	for k, val := range v.hdr.Metadata {
		c.SetMetadata(k, val)
	}
	return c, nil
}

// Names returns all tensor names in header order.
func (v *View) Names() []string { return v.hdr.Names() }

// Len returns the number of tensors in the view.
func (v *View) Len() int { return len(v.hdr.Entries) }

// Metadata returns the free-form metadata block read from the header.
// It can be nil.
func (v *View) Metadata() map[string]string { return v.hdr.Metadata }

// Get returns a zero-copy view of the named tensor, if present.
func (v *View) Get(name string) (TensorView, bool) {
	e, ok := v.hdr.Lookup(name)
	if !ok {
		return TensorView{}, false
	}
	return v.entryView(e), true
}

// Tensors returns zero-copy views of all tensors in header order.
func (v *View) Tensors() []TensorView {
	if len(v.hdr.Entries) == 0 {
		return nil
	}
	out := make([]TensorView, len(v.hdr.Entries))
	for i := range v.hdr.Entries {
		out[i] = v.entryView(&v.hdr.Entries[i])
	}
	return out
}

// entryView slices the data section with offsets certified by Validate.
func (v *View) entryView(e *header.Entry) TensorView {
	return TensorView{
		name:  e.Name,
		dt:    e.DType,
		shape: e.Shape,
		data:  v.data[e.Offsets.Begin:e.Offsets.End],
	}
}

// TensorView is a borrowed tensor descriptor whose data aliases the
// buffer the parent View was built from. It is read-only: modifying the
// backing buffer while views exist is the caller's responsibility to
// avoid.
type TensorView struct {
	name  string
	dt    dtype.DType
	shape header.Shape
	data  []byte
}

// Name of the tensor.
func (tv TensorView) Name() string { return tv.name }

// DType of the tensor's elements.
func (tv TensorView) DType() dtype.DType { return tv.dt }

// Shape returns a copy of the tensor's shape.
func (tv TensorView) Shape() []uint64 { return copyShape(tv.shape) }

// Data returns the tensor's bytes without copying. The slice aliases the
// parent buffer and is only valid as long as that buffer is.
func (tv TensorView) Data() []byte { return tv.data }

// ByteLen returns the length of the tensor's data in bytes.
func (tv TensorView) ByteLen() uint64 { return uint64(len(tv.data)) }

// Owned copies the view into an independent Tensor that no longer
// references the parent buffer.
func (tv TensorView) Owned() Tensor {
	data := make([]byte, len(tv.data))
	copy(data, tv.data)
	return Tensor{
		name:  tv.name,
		dt:    tv.dt,
		shape: copyShape(tv.shape),
		data:  data,
	}
}
