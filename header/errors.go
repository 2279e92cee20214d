// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package header

import "errors"

// Error kinds reported while decoding or validating a header.
// They are matched with errors.Is; concrete errors wrap one of these
// with additional context.
var (
	// ErrTruncatedHeader reports a buffer shorter than the 8-byte size
	// prefix, or a declared header length running past the end of the
	// buffer.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrHeaderTooLarge reports a declared header length above the
	// sanity ceiling MaxHeaderSize.
	ErrHeaderTooLarge = errors.New("header too large")

	// ErrMalformedHeader reports header bytes that are not the expected
	// JSON structure: not an object, wrong value kinds, missing or
	// unknown fields, or trailing garbage.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrInvalidShape reports a negative, fractional or overflowing
	// shape dimension.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrInvalidOffsets reports a byte range outside the data section
	// or with begin greater than end.
	ErrInvalidOffsets = errors.New("invalid data offsets")

	// ErrSizeMismatch reports a byte range whose length differs from
	// the element count implied by shape and dtype width.
	ErrSizeMismatch = errors.New("tensor size mismatch")

	// ErrOffsetsNotContiguous reports byte ranges that overlap or leave
	// gaps instead of tiling the data section exactly.
	ErrOffsetsNotContiguous = errors.New("data offsets not contiguous")

	// ErrDuplicateName reports two header entries sharing a tensor name.
	ErrDuplicateName = errors.New("duplicate tensor name")
)
