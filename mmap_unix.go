// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package tensorfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps f read-only. On mapping failure it falls back to reading
// the whole file into memory; the second result reports whether the
// returned bytes are a real mapping that must be released with unmapFile.
func mapFile(f *os.File, size int) ([]byte, bool, error) {
	if size == 0 {
		// mmap of length zero is an error on most platforms.
		return []byte{}, false, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return data, true, nil
	}
	data, err = readFull(f, size)
	return data, false, err
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
