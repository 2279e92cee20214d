// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"fmt"

	"github.com/mlfoundry/tensorfile/dtype"
	"github.com/mlfoundry/tensorfile/header"
)

// Tensor is an owned tensor descriptor: a name, dtype, shape and the raw
// little-endian, row-major data bytes. The data buffer belongs to the
// Tensor and is independent of any source it was read from.
type Tensor struct {
	name  string
	dt    dtype.DType
	shape header.Shape
	data  []byte
}

// NewTensor builds a Tensor after checking that dt is a registered dtype
// and that len(data) equals the element count implied by shape times the
// dtype width (an empty or nil shape means a scalar, one element).
//
// The shape is copied; data is NOT copied, so the caller must not modify
// it afterwards.
func NewTensor(name string, dt dtype.DType, shape []uint64, data []byte) (Tensor, error) {
	e := header.Entry{Name: name, DType: dt, Shape: shape}
	size, err := e.ByteSize()
	if err != nil {
		return Tensor{}, err
	}
	if uint64(len(data)) != size {
		return Tensor{}, fmt.Errorf("%w: tensor %q: %d data bytes, shape %v of %s implies %d",
			ErrSizeMismatch, name, len(data), shape, dt, size)
	}
	return Tensor{
		name:  name,
		dt:    dt,
		shape: copyShape(shape),
		data:  data,
	}, nil
}

// Name of the tensor.
func (t Tensor) Name() string { return t.name }

// DType of the tensor's elements.
func (t Tensor) DType() dtype.DType { return t.dt }

// Shape returns a copy of the tensor's shape.
func (t Tensor) Shape() []uint64 { return copyShape(t.shape) }

// Data returns the raw bytes of the tensor, without copying.
func (t Tensor) Data() []byte { return t.data }

// ByteLen returns the length of the tensor's data in bytes.
func (t Tensor) ByteLen() uint64 { return uint64(len(t.data)) }

func copyShape(shape []uint64) header.Shape {
	if len(shape) == 0 {
		return nil
	}
	s := make(header.Shape, len(shape))
	copy(s, shape)
	return s
}
