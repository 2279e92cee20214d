// Copyright 2025 The Tensorfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype enumerates the element types a tensor container can hold.
//
// The set is closed and its wire names are part of the on-disk format:
// new types may only ever be appended, existing names are never renamed
// or removed.
package dtype

import (
	"errors"
	"fmt"
)

// ErrUnsupported reports a data type outside the registered set.
var ErrUnsupported = errors.New("unsupported dtype")

// DType identifies the element type of a tensor.
// The zero value is invalid.
type DType uint8

const (
	// Bool is an 8-bit boolean.
	Bool DType = iota + 1
	// U8 is an 8-bit unsigned integer.
	U8
	// I8 is an 8-bit signed integer.
	I8
	// F8E5M2 is an 8-bit floating point number with 5 exponent bits.
	F8E5M2
	// F8E4M3 is an 8-bit floating point number with 4 exponent bits.
	F8E4M3
	// U16 is a 16-bit unsigned integer.
	U16
	// I16 is a 16-bit signed integer.
	I16
	// F16 is a 16-bit half-precision floating point number.
	F16
	// BF16 is a 16-bit brain floating point number.
	BF16
	// U32 is a 32-bit unsigned integer.
	U32
	// I32 is a 32-bit signed integer.
	I32
	// F32 is a 32-bit floating point number.
	F32
	// U64 is a 64-bit unsigned integer.
	U64
	// I64 is a 64-bit signed integer.
	I64
	// F64 is a 64-bit floating point number.
	F64
)

// properties is indexed by DType. Wire names and widths are frozen.
var properties = [...]struct {
	name string
	size int
}{
	Bool:   {"BOOL", 1},
	U8:     {"U8", 1},
	I8:     {"I8", 1},
	F8E5M2: {"F8_E5M2", 1},
	F8E4M3: {"F8_E4M3", 1},
	U16:    {"U16", 2},
	I16:    {"I16", 2},
	F16:    {"F16", 2},
	BF16:   {"BF16", 2},
	U32:    {"U32", 4},
	I32:    {"I32", 4},
	F32:    {"F32", 4},
	U64:    {"U64", 8},
	I64:    {"I64", 8},
	F64:    {"F64", 8},
}

var nameToDType = func() map[string]DType {
	m := make(map[string]DType, len(properties))
	for dt := Bool; dt <= F64; dt++ {
		m[properties[dt].name] = dt
	}
	return m
}()

// Parse resolves a wire name to its DType.
// It fails wrapping ErrUnsupported when the name is not in the
// registered set.
func Parse(s string) (DType, error) {
	dt, ok := nameToDType[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return dt, nil
}

// Validate returns an error wrapping ErrUnsupported if the DType value
// is outside the registered set, otherwise nil.
func (dt DType) Validate() error {
	if dt == 0 || dt > F64 {
		return fmt.Errorf("%w: DType(%d)", ErrUnsupported, uint8(dt))
	}
	return nil
}

// Size returns the width in bytes of one element of this data type,
// or -1 if the DType value is invalid.
func (dt DType) Size() int {
	if dt.Validate() != nil {
		return -1
	}
	return properties[dt].size
}

// String returns the canonical wire name of the DType.
func (dt DType) String() string {
	if err := dt.Validate(); err != nil {
		return err.Error()
	}
	return properties[dt].name
}

// MarshalText satisfies encoding.TextMarshaler.
func (dt DType) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(properties[dt].name), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler.
func (dt *DType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*dt = parsed
	return nil
}

// MarshalJSON satisfies json.Marshaler.
func (dt DType) MarshalJSON() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + properties[dt].name + `"`), nil
}

// UnmarshalJSON satisfies json.Unmarshaler.
func (dt *DType) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: invalid JSON value %s", ErrUnsupported, b)
	}
	return dt.UnmarshalText(b[1 : len(b)-1])
}
