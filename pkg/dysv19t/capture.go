// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Direction tags which side of the wire a capture record came from
type Direction byte

// Capture directions
const (
	DirRx Direction = 0 // module to host
	DirTx Direction = 1 // host to module
)

// String returns the conventional two-letter direction tag
func (d Direction) String() string {
	switch d {
	case DirRx:
		return "RX"
	case DirTx:
		return "TX"
	}
	return "??"
}

// CaptureRecord is one timed event in a capture stream: raw wire bytes,
// or a marker note with no bytes
type CaptureRecord struct {
	Time time.Time `cbor:"1,keyasint"`
	Dir  Direction `cbor:"2,keyasint"`
	Raw  []byte    `cbor:"3,keyasint,omitempty"`
	Note string    `cbor:"4,keyasint,omitempty"`
}

// Microsecond timestamps keep replay pacing accurate; the CBOR default
// truncates to whole seconds.
func newCaptureEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{Time: cbor.TimeUnixMicro}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("dysv19t: capture encoder options: %v", err))
	}
	return em
}

var captureEncMode = newCaptureEncMode()

// CaptureWriter appends capture records to a stream as back-to-back CBOR
// maps with integer keys
type CaptureWriter struct {
	enc *cbor.Encoder
}

// NewCaptureWriter wraps a stream for capture writing
func NewCaptureWriter(w io.Writer) *CaptureWriter {
	return &CaptureWriter{enc: captureEncMode.NewEncoder(w)}
}

// Write appends one record
func (cw *CaptureWriter) Write(rec CaptureRecord) error {
	if err := cw.enc.Encode(rec); err != nil {
		return fmt.Errorf("capture write: %w", err)
	}
	return nil
}

// Record appends raw wire bytes stamped with the current time
func (cw *CaptureWriter) Record(dir Direction, raw []byte) error {
	return cw.Write(CaptureRecord{Time: time.Now(), Dir: dir, Raw: raw})
}

// Note appends a marker record carrying no wire bytes
func (cw *CaptureWriter) Note(dir Direction, note string) error {
	return cw.Write(CaptureRecord{Time: time.Now(), Dir: dir, Note: note})
}

// CaptureReader reads capture records back from a stream
type CaptureReader struct {
	dec *cbor.Decoder
}

// NewCaptureReader wraps a stream for capture reading
func NewCaptureReader(r io.Reader) *CaptureReader {
	return &CaptureReader{dec: cbor.NewDecoder(r)}
}

// Read returns the next record, or io.EOF at the end of the stream
func (cr *CaptureReader) Read() (CaptureRecord, error) {
	var rec CaptureRecord
	if err := cr.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return CaptureRecord{}, io.EOF
		}
		return CaptureRecord{}, fmt.Errorf("capture read: %w", err)
	}
	return rec, nil
}
