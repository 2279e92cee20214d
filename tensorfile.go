// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensorfile stores and retrieves named multi-dimensional numeric
// arrays in a flat binary container with O(1) random access and zero-copy
// reads.
//
// A file is an 8-byte little-endian header length, a JSON header mapping
// tensor names to dtype, shape and byte ranges, and a data section of
// concatenated raw little-endian tensor bytes. The header is treated as
// untrusted input: it is fully validated before any byte range is used to
// slice a buffer, so a corrupted or hostile file is rejected with a
// structured error and can never cause an out-of-bounds read.
//
// Deserialization comes in two modes sharing one validation pipeline:
// Deserialize returns a View whose tensors alias the input buffer
// (zero-copy, suitable for memory-mapped files), while DeserializeOwned
// copies every tensor out so the result is independent of the input.
// All functions are pure and reentrant; independent calls are safe from
// concurrent goroutines.
package tensorfile

import (
	"github.com/mlfoundry/tensorfile/dtype"
	"github.com/mlfoundry/tensorfile/header"
)

// Error kinds surfaced by this package. They are the sentinels of the
// header and dtype packages re-exported for convenience; match them with
// errors.Is.
var (
	ErrTruncatedHeader      = header.ErrTruncatedHeader
	ErrHeaderTooLarge       = header.ErrHeaderTooLarge
	ErrMalformedHeader      = header.ErrMalformedHeader
	ErrInvalidShape         = header.ErrInvalidShape
	ErrInvalidOffsets       = header.ErrInvalidOffsets
	ErrSizeMismatch         = header.ErrSizeMismatch
	ErrOffsetsNotContiguous = header.ErrOffsetsNotContiguous
	ErrDuplicateName        = header.ErrDuplicateName
	ErrUnsupportedDType     = dtype.ErrUnsupported
)
