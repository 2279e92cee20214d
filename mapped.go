// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorfile

import (
	"fmt"
	"io"
	"os"
)

// File is a tensorfile opened from disk and deserialized in borrowed
// mode over a read-only memory mapping (or, where mapping is
// unavailable, over a plain in-memory copy of the file).
//
// Close releases the mapping: the embedded View and every TensorView
// obtained from it must not be used afterwards. Concurrent external
// modification of the underlying file while the mapping is alive is
// undefined behavior and must be avoided by the caller.
type File struct {
	*View
	data   []byte
	mapped bool
	closed bool
}

// OpenMapped opens the file at path, maps it into memory read-only, and
// runs borrowed-mode deserialization over the mapping. Only the header
// is read eagerly; tensor pages are faulted in by the OS as they are
// touched, so opening a very large file is cheap.
func OpenMapped(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("file %q too large to map: %d bytes", path, size64)
	}

	data, mapped, err := mapFile(f, int(size64))
	if err != nil {
		return nil, err
	}
	v, err := Deserialize(data)
	if err != nil {
		if mapped {
			_ = unmapFile(data)
		}
		return nil, err
	}
	return &File{View: v, data: data, mapped: mapped}, nil
}

// Close releases the mapping or buffer backing the file. It is
// idempotent and must not be called concurrently with reads of any view.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.View = nil
	data := f.data
	f.data = nil
	if f.mapped {
		return unmapFile(data)
	}
	return nil
}

// readFull loads the whole file via ReadAt. Fallback path used when
// mapping is unavailable.
func readFull(r io.ReaderAt, size int) ([]byte, error) {
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}
