// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

import "time"

// Frame represents one protocol unit: a command code plus its data payload
type Frame struct {
	command   Command
	data      []byte
	raw       []byte
	timestamp time.Time
}

// NewFrame creates a frame from a command code and payload data.
// The data slice is copied. Size limits are enforced at encode time.
func NewFrame(cmd Command, data []byte) *Frame {
	f := &Frame{
		command:   cmd,
		timestamp: time.Now(),
	}
	if len(data) > 0 {
		f.data = append([]byte(nil), data...)
	}
	return f
}

// Command returns the frame's command code
func (f *Frame) Command() Command {
	return f.command
}

// Data returns the frame's payload data
func (f *Frame) Data() []byte {
	return f.data
}

// Raw returns the wire bytes the frame was decoded from.
// Built frames carry no raw bytes until encoded.
func (f *Frame) Raw() []byte {
	return f.raw
}

// Timestamp returns the frame's creation or decode timestamp
func (f *Frame) Timestamp() time.Time {
	return f.timestamp
}

// IsTimeReport returns true for play-time report frames, the one category
// the module sends unsolicited. The empty enable request shares the code
// and does not count.
func (f *Frame) IsTimeReport() bool {
	return f.command == CmdTimeReportOn && len(f.data) == 3
}

// IsQueryResponse returns true for a frame answering a query. Requests
// share the code but carry no data.
func (f *Frame) IsQueryResponse() bool {
	if len(f.data) == 0 {
		return false
	}
	switch f.command {
	case CmdQueryPlayState, CmdQueryOnlineDisks, CmdQueryCurrentDisk,
		CmdQueryTrackCount, CmdQueryCurrentTrack,
		CmdQueryFolderFirstTrack, CmdQueryFolderTrackCount,
		CmdQueryShortName, CmdQueryPlayTime:
		return true
	}
	return false
}
