// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"fmt"

	"github.com/mlfoundry/tensorfile/header"
)

// Container is a named set of tensors plus an optional free-form
// string-to-string metadata block. It preserves insertion order, and
// serialization follows that order, so identical logical input yields
// byte-identical output.
type Container struct {
	tensors []Tensor
	index   map[string]int
	meta    map[string]string
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{index: make(map[string]int)}
}

// Add appends a tensor to the container. It fails wrapping
// ErrDuplicateName if the name is already present or is the reserved
// metadata key.
func (c *Container) Add(t Tensor) error {
	if t.name == header.MetadataKey {
		return fmt.Errorf("%w: %q is a reserved name", ErrDuplicateName, t.name)
	}
	if _, ok := c.index[t.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, t.name)
	}
	c.index[t.name] = len(c.tensors)
	c.tensors = append(c.tensors, t)
	return nil
}

// Get returns the tensor with the given name, if present.
func (c *Container) Get(name string) (Tensor, bool) {
	i, ok := c.index[name]
	if !ok {
		return Tensor{}, false
	}
	return c.tensors[i], true
}

// Names returns all tensor names in insertion order.
func (c *Container) Names() []string {
	if len(c.tensors) == 0 {
		return nil
	}
	names := make([]string, len(c.tensors))
	for i := range c.tensors {
		names[i] = c.tensors[i].name
	}
	return names
}

// Tensors returns the tensors in insertion order. The slice is a copy,
// the tensors' data buffers are not.
func (c *Container) Tensors() []Tensor {
	if len(c.tensors) == 0 {
		return nil
	}
	out := make([]Tensor, len(c.tensors))
	copy(out, c.tensors)
	return out
}

// Len returns the number of tensors in the container.
func (c *Container) Len() int { return len(c.tensors) }

// Metadata returns the metadata block. It can be nil. The map is the one
// held internally, without copy.
func (c *Container) Metadata() map[string]string { return c.meta }

// SetMetadata stores a free-form metadata key/value pair. The block is
// not interpreted; it survives serialization round trips unchanged.
func (c *Container) SetMetadata(key, value string) {
	if c.meta == nil {
		c.meta = make(map[string]string)
	}
	c.meta[key] = value
}
