// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlfoundry/tensorfile/dtype"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.tensors")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenMapped(t *testing.T) {
	c := mustContainer(t,
		mustTensor(t, "w", dtype.F32, []uint64{2, 2}, []byte{
			1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		}),
		mustTensor(t, "b", dtype.U8, []uint64{3}, []byte{7, 8, 9}),
	)
	c.SetMetadata("format", "pt")
	out, err := Serialize(c)
	require.NoError(t, err)

	f, err := OpenMapped(writeTempFile(t, out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"w", "b"}, f.Names())
	assert.Equal(t, map[string]string{"format": "pt"}, f.Metadata())

	w, ok := f.Get("w")
	require.True(t, ok)
	assert.Equal(t, dtype.F32, w.DType())
	assert.Equal(t, []uint64{2, 2}, w.Shape())
	assert.Equal(t, out[len(out)-19:len(out)-3], w.Data())

	b, ok := f.Get("b")
	require.True(t, ok)
	assert.Equal(t, []byte{7, 8, 9}, b.Data())

	require.NoError(t, f.Close())
	assert.NoError(t, f.Close(), "Close must be idempotent")
}

func TestOpenMapped_OwnedSurvivesClose(t *testing.T) {
	out, err := Serialize(mustContainer(t,
		mustTensor(t, "w", dtype.U8, []uint64{4}, []byte{1, 2, 3, 4}),
	))
	require.NoError(t, err)

	f, err := OpenMapped(writeTempFile(t, out))
	require.NoError(t, err)

	w, ok := f.Get("w")
	require.True(t, ok)
	owned := w.Owned()

	require.NoError(t, f.Close())
	assert.Equal(t, []byte{1, 2, 3, 4}, owned.Data())
}

func TestOpenMapped_Missing(t *testing.T) {
	_, err := OpenMapped(filepath.Join(t.TempDir(), "nope.tensors"))
	assert.Error(t, err)
}

func TestOpenMapped_Corrupted(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{"empty file", nil, ErrTruncatedHeader},
		{"short file", []byte{1, 2, 3}, ErrTruncatedHeader},
		{"garbage header", rawStream(`not json`, nil), ErrMalformedHeader},
		{
			"hostile offsets",
			rawStream(`{"w":{"dtype":"U8","shape":[4],"data_offsets":[0,4096]}}`, []byte{1}),
			ErrInvalidOffsets,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OpenMapped(writeTempFile(t, tc.data))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
