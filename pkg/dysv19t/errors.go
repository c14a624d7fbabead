// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import "errors"

// Frame decoding errors. Decode and the streaming Decoder wrap these with
// detail; match with errors.Is.
var (
	ErrFrameTooShort    = errors.New("frame too short")
	ErrBadStartByte     = errors.New("bad start byte")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Encoding and validation errors
var (
	ErrDataTooLong      = errors.New("frame data exceeds maximum size")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrInvalidValue     = errors.New("invalid value")
	ErrInvalidPath      = errors.New("invalid path")
	ErrIncompatibleMode = errors.New("play mode does not support loop counts")
)

// ErrNoReply reports that a receive deadline passed without a matching frame.
// A quiet line is the normal case for most commands, not a malfunction;
// callers that only care about presence should treat it like io.EOF.
var ErrNoReply = errors.New("no reply before deadline")
