// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package tensorfile

import "os"

// mapFile on platforms without mmap support reads the whole file.
func mapFile(f *os.File, size int) ([]byte, bool, error) {
	data, err := readFull(f, size)
	return data, false, err
}

func unmapFile([]byte) error { return nil }
