// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlfoundry/tensorfile/dtype"
	"github.com/mlfoundry/tensorfile/header"
)

func mustTensor(t *testing.T, name string, dt dtype.DType, shape []uint64, data []byte) Tensor {
	t.Helper()
	tensor, err := NewTensor(name, dt, shape, data)
	require.NoError(t, err)
	return tensor
}

func mustContainer(t *testing.T, tensors ...Tensor) *Container {
	t.Helper()
	c := NewContainer()
	for _, tensor := range tensors {
		require.NoError(t, c.Add(tensor))
	}
	return c
}

func TestSerialize_ConcreteLayout(t *testing.T) {
	data := []byte{
		0, 1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
	}
	c := mustContainer(t, mustTensor(t, "weight", dtype.F32, []uint64{2, 2}, data))

	out, err := Serialize(c)
	require.NoError(t, err)

	n := binary.LittleEndian.Uint64(out[:8])
	require.Equal(t, uint64(len(out)-8-16), n)
	assert.Zero(t, n%8)

	body := string(out[8 : 8+n])
	assert.Equal(t,
		`{"weight":{"dtype":"F32","shape":[2,2],"data_offsets":[0,16]}}`,
		strings.TrimRight(body, " "))
	assert.Equal(t, data, out[8+n:])
}

func TestSerialize_Deterministic(t *testing.T) {
	build := func() *Container {
		c := mustContainer(t,
			mustTensor(t, "b", dtype.U16, []uint64{3}, []byte{1, 2, 3, 4, 5, 6}),
			mustTensor(t, "a", dtype.U8, []uint64{2}, []byte{9, 8}),
		)
		c.SetMetadata("format", "pt")
		c.SetMetadata("source", "test")
		return c
	}

	first, err := Serialize(build())
	require.NoError(t, err)
	second, err := Serialize(build())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	again, err := Serialize(build())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestSerialize_InsertionOrderLayout(t *testing.T) {
	c := mustContainer(t,
		mustTensor(t, "z", dtype.U8, []uint64{2}, []byte{1, 2}),
		mustTensor(t, "a", dtype.U8, []uint64{3}, []byte{3, 4, 5}),
	)

	out, err := Serialize(c)
	require.NoError(t, err)

	v, err := Deserialize(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a"}, v.Names())

	z, _ := v.Get("z")
	a, _ := v.Get("a")
	assert.Equal(t, []byte{1, 2}, z.Data())
	assert.Equal(t, []byte{3, 4, 5}, a.Data())
}

func TestSerializeTo_MatchesSerialize(t *testing.T) {
	c := mustContainer(t,
		mustTensor(t, "x", dtype.F64, nil, make([]byte, 8)),
		mustTensor(t, "y", dtype.I32, []uint64{2}, []byte{1, 0, 0, 0, 2, 0, 0, 0}),
	)
	c.SetMetadata("k", "v")

	direct, err := Serialize(c)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SerializeTo(c, &buf))
	assert.Equal(t, direct, buf.Bytes())
}

func TestSerializeTo_WriterError(t *testing.T) {
	c := mustContainer(t, mustTensor(t, "x", dtype.U8, []uint64{1}, []byte{1}))
	err := SerializeTo(c, failingWriter{})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestSerialize_EmptyContainer(t *testing.T) {
	out, err := Serialize(NewContainer())
	require.NoError(t, err)

	v, err := Deserialize(out)
	require.NoError(t, err)
	assert.Zero(t, v.Len())
	assert.Nil(t, v.Names())
}

func TestSerialize_InvalidDType(t *testing.T) {
	c := NewContainer()
	// Bypass NewTensor to simulate a caller smuggling in a bad value.
	c.index["bad"] = 0
	c.tensors = append(c.tensors, Tensor{name: "bad", dt: 0, data: []byte{1}})

	_, err := Serialize(c)
	assert.ErrorIs(t, err, ErrUnsupportedDType)

	err = SerializeTo(c, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedDType)
}

func TestSerialize_HeaderAlignment(t *testing.T) {
	// Names of varying length exercise different padding amounts.
	for _, name := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		c := mustContainer(t, mustTensor(t, name, dtype.U8, []uint64{1}, []byte{7}))
		out, err := Serialize(c)
		require.NoError(t, err)

		n := binary.LittleEndian.Uint64(out[:header.PrefixSize])
		assert.Zero(t, n%8, "name %q", name)
	}
}
