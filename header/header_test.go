// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlfoundry/tensorfile/dtype"
)

func TestShape_ElemCount(t *testing.T) {
	testCases := []struct {
		name  string
		shape Shape
		want  uint64
	}{
		{"nil shape is a scalar", nil, 1},
		{"empty shape is a scalar", Shape{}, 1},
		{"vector", Shape{7}, 7},
		{"matrix", Shape{3, 4}, 12},
		{"zero dimension", Shape{5, 0, 2}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tc.shape.ElemCount()
			require.NoError(t, err)
			assert.Equal(t, tc.want, count)
		})
	}

	_, err := Shape{math.MaxUint64, 2}.ElemCount()
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestShape_MarshalJSON(t *testing.T) {
	for _, tc := range []struct {
		shape Shape
		want  string
	}{
		{nil, "[]"},
		{Shape{}, "[]"},
		{Shape{2, 3}, "[2,3]"},
	} {
		b, err := tc.shape.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(b))
	}
}

func TestEntry_ByteSize(t *testing.T) {
	e := Entry{Name: "a", DType: dtype.F32, Shape: Shape{2, 2}}
	size, err := e.ByteSize()
	require.NoError(t, err)
	assert.Equal(t, uint64(16), size)

	scalar := Entry{Name: "s", DType: dtype.F64}
	size, err = scalar.ByteSize()
	require.NoError(t, err)
	assert.Equal(t, uint64(8), size)

	_, err = (&Entry{Name: "bad", DType: 0, Shape: Shape{1}}).ByteSize()
	assert.ErrorIs(t, err, dtype.ErrUnsupported)
}

func TestHeader_NamesAndLookup(t *testing.T) {
	h := New([]Entry{
		{Name: "b", DType: dtype.U8, Shape: Shape{1}, Offsets: Offsets{0, 1}},
		{Name: "a", DType: dtype.U8, Shape: Shape{1}, Offsets: Offsets{1, 2}},
	}, nil)

	assert.Equal(t, []string{"b", "a"}, h.Names())

	e, ok := h.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Offsets{1, 2}, e.Offsets)

	_, ok = h.Lookup("c")
	assert.False(t, ok)

	assert.Nil(t, New(nil, nil).Names())
}
