// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"fmt"
	"time"
)

// Decode parses a complete raw frame. It fails with ErrFrameTooShort for
// fewer than 4 bytes, ErrBadStartByte if the sentinel is wrong,
// ErrLengthMismatch if the declared data length disagrees with the frame
// size, and ErrChecksumMismatch if the trailing byte does not match the sum
// of everything before it. On success the returned frame owns copies of the
// input; the input slice is never retained.
func Decode(raw []byte) (*Frame, error) {
	if len(raw) < FrameOverhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(raw))
	}
	if raw[0] != StartByte {
		return nil, fmt.Errorf("%w: 0x%02X", ErrBadStartByte, raw[0])
	}

	n := int(raw[2])
	if len(raw) != FrameOverhead+n {
		return nil, fmt.Errorf("%w: declared %d data bytes, frame is %d bytes",
			ErrLengthMismatch, n, len(raw))
	}

	want := Checksum(raw[:len(raw)-1])
	if got := raw[len(raw)-1]; got != want {
		return nil, fmt.Errorf("%w: computed 0x%02X, received 0x%02X",
			ErrChecksumMismatch, want, got)
	}

	f := &Frame{
		command:   Command(raw[1]),
		raw:       append([]byte(nil), raw...),
		timestamp: time.Now(),
	}
	if n > 0 {
		f.data = append([]byte(nil), raw[3:3+n]...)
	}
	return f, nil
}

// Decoder implements the byte-at-a-time frame decoder state machine.
//
// Bytes before a start sentinel are discarded while seeking. A checksum
// failure drops the buffered frame and returns to seeking without rescanning
// the dropped bytes, so a sentinel inside a corrupted frame's span is lost;
// the caller's read deadline bounds how long that can hurt.
type Decoder struct {
	state     int
	command   Command
	length    int
	data      []byte
	rawBuffer []byte
}

// NewDecoder creates a new frame decoder
func NewDecoder() *Decoder {
	return &Decoder{
		state:     stateSeek,
		data:      make([]byte, 0, MaxDataSize),
		rawBuffer: make([]byte, 0, MaxFrameSize),
	}
}

// Reset returns the decoder to seeking and drops any buffered bytes
func (d *Decoder) Reset() {
	d.state = stateSeek
	d.command = 0
	d.length = 0
	d.data = d.data[:0]
	d.rawBuffer = d.rawBuffer[:0]
}

// RawBytes returns the raw bytes of the frame in progress
func (d *Decoder) RawBytes() []byte {
	return d.rawBuffer
}

// DecodeByte processes a single byte through the decoder state machine.
// Returns a completed frame, or nil while a frame is incomplete.
// Returns an error when a buffered frame fails validation; the decoder has
// already reset itself and the next byte starts a fresh scan.
func (d *Decoder) DecodeByte(b byte) (*Frame, error) {
	switch d.state {
	case stateSeek:
		if b != StartByte {
			return nil, nil
		}
		d.rawBuffer = append(d.rawBuffer[:0], b)
		d.state = stateCommand
		return nil, nil

	case stateCommand:
		d.rawBuffer = append(d.rawBuffer, b)
		d.command = Command(b)
		d.state = stateLength
		return nil, nil

	case stateLength:
		d.rawBuffer = append(d.rawBuffer, b)
		d.length = int(b)
		d.data = d.data[:0]
		if d.length == 0 {
			d.state = stateChecksum
		} else {
			d.state = stateData
		}
		return nil, nil

	case stateData:
		d.rawBuffer = append(d.rawBuffer, b)
		d.data = append(d.data, b)
		if len(d.data) >= d.length {
			d.state = stateChecksum
		}
		return nil, nil

	case stateChecksum:
		d.rawBuffer = append(d.rawBuffer, b)
		want := Checksum(d.rawBuffer[:len(d.rawBuffer)-1])
		if b != want {
			err := fmt.Errorf("%w: computed 0x%02X, received 0x%02X",
				ErrChecksumMismatch, want, b)
			d.Reset()
			return nil, err
		}

		frame := &Frame{
			command:   d.command,
			raw:       append([]byte(nil), d.rawBuffer...),
			timestamp: time.Now(),
		}
		if len(d.data) > 0 {
			frame.data = append([]byte(nil), d.data...)
		}

		d.Reset()
		return frame, nil

	default:
		d.Reset()
		return nil, fmt.Errorf("invalid state: %d", d.state)
	}
}
