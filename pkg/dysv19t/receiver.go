// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import (
	"fmt"
	"io"
	"time"
)

// DefaultTimeout is the stock wait for a response frame
const DefaultTimeout = 500 * time.Millisecond

// Receiver reads frames from an unreliable byte stream, scanning past
// garbage and bounding each wait with a deadline.
//
// Reads are one byte at a time so a delivered frame never consumes stream
// bytes past its own checksum. The reader should return promptly when no
// data is pending (serial ports are opened with a short read timeout);
// empty reads are retried after a 1ms sleep until the deadline passes.
type Receiver struct {
	r       io.Reader
	timeout time.Duration
}

// NewReceiver creates a receiver with the given per-call timeout.
// A non-positive timeout makes every call report no reply.
func NewReceiver(r io.Reader, timeout time.Duration) *Receiver {
	return &Receiver{r: r, timeout: timeout}
}

// Receive waits for a valid frame carrying the expected command code.
// Corrupt frames and frames with other command codes are discarded.
// Returns ErrNoReply once the deadline passes. Scan state never carries
// over between calls.
func (rx *Receiver) Receive(expect Command) (*Frame, error) {
	return rx.receive(&expect)
}

// ReceiveAny waits for the next valid frame regardless of command code
func (rx *Receiver) ReceiveAny() (*Frame, error) {
	return rx.receive(nil)
}

func (rx *Receiver) receive(expect *Command) (*Frame, error) {
	dec := NewDecoder()
	deadline := time.Now().Add(rx.timeout)
	var buf [1]byte

	for time.Now().Before(deadline) {
		n, err := rx.r.Read(buf[:])
		if n > 0 {
			// Corrupt frames reset the decoder and the scan goes on.
			if frame, decErr := dec.DecodeByte(buf[0]); decErr == nil && frame != nil {
				if expect == nil || frame.Command() == *expect {
					return frame, nil
				}
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("transport read: %w", err)
		}
		time.Sleep(time.Millisecond)
	}
	return nil, ErrNoReply
}
