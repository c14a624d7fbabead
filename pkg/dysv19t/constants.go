// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package dysv19t provides a Go driver for the DY-SV19T serial audio playback module.
//
// The module speaks a framed binary protocol over UART (9600 8N1):
// [0xAA][CMD][LEN][DATA...][SM], where SM is the low byte of the sum of all
// preceding bytes. This package provides frame encoding/decoding, value and
// path validation, a resynchronizing receiver, and a command/query facade
// that mirrors the module's state.
package dysv19t

// Protocol framing
const (
	StartByte = 0xAA

	// START + CMD + LEN + SM
	FrameOverhead = 4

	MaxDataSize  = 255
	MaxFrameSize = FrameOverhead + MaxDataSize
)

// Transport defaults. The serial line itself is configured by the caller;
// these are the module's fixed factory settings.
const (
	DefaultBaudRate = 9600
)

// Volume limits
const (
	VolumeMin = 0
	VolumeMax = 30
)

// Command identifies a protocol operation or report category. Responses echo
// the command code of the request that solicited them.
type Command byte

// Command codes - playback control
const (
	CmdPlay      Command = 0x02
	CmdPause     Command = 0x03
	CmdStop      Command = 0x04
	CmdPrevTrack Command = 0x05
	CmdNextTrack Command = 0x06
)

// Command codes - track and path selection
const (
	CmdPlayTrack    Command = 0x07 // select and play, u16 track
	CmdPlayDiskPath Command = 0x08 // disk byte + path bytes
	CmdSelectTrack  Command = 0x1F // preselect only, u16 track
)

// Command codes - insertion (interrupt current playback, resume after)
const (
	CmdEndInsert   Command = 0x10
	CmdInsertTrack Command = 0x16 // disk byte + u16 track
	CmdInsertPath  Command = 0x17 // disk byte + path bytes
)

// Command codes - volume, EQ, channel, mode
const (
	CmdSetVolume    Command = 0x13
	CmdVolumeUp     Command = 0x14
	CmdVolumeDown   Command = 0x15
	CmdSetPlayMode  Command = 0x18
	CmdSetLoopCount Command = 0x19 // u16 count
	CmdSetEQ        Command = 0x1A
	CmdSetChannel   Command = 0x1D
)

// Command codes - combination playback (two-character short names)
const (
	CmdCombinationStart Command = 0x1B
	CmdCombinationEnd   Command = 0x1C
)

// Command codes - A-B repeat and seek
const (
	CmdRepeatRange  Command = 0x20 // start min, start sec, end min, end sec
	CmdRepeatEnd    Command = 0x21
	CmdSeekBackward Command = 0x22 // u16 seconds
	CmdSeekForward  Command = 0x23 // u16 seconds
)

// Command codes - queries (response data layout noted per code)
const (
	CmdQueryPlayState        Command = 0x01 // 1 byte: play state
	CmdQueryOnlineDisks      Command = 0x09 // 1 byte: disk bitmap
	CmdQueryCurrentDisk      Command = 0x0A // 1 byte: disk
	CmdQueryTrackCount       Command = 0x0C // u16
	CmdQueryCurrentTrack     Command = 0x0D // u16
	CmdQueryFolderFirstTrack Command = 0x11 // u16
	CmdQueryFolderTrackCount Command = 0x12 // u16
	CmdQueryShortName        Command = 0x1E // ASCII 8.3 name
	CmdQueryPlayTime         Command = 0x24 // 3 bytes: h, m, s
)

// Command codes - play-time auto reporting. Once enabled the module sends an
// unsolicited 0x25 frame with the elapsed time about once per second.
const (
	CmdTimeReportOn  Command = 0x25
	CmdTimeReportOff Command = 0x26
)

// Decoder states (internal)
const (
	stateSeek = iota
	stateCommand
	stateLength
	stateData
	stateChecksum
)

// Disk identifies a storage volume on the module
type Disk int

// Disk values. DiskNone is reported by the module when no volume is mounted
// and is accepted as an initial cache value, never as a command argument.
const (
	DiskUSB   Disk = 0x00
	DiskSD    Disk = 0x01
	DiskFlash Disk = 0x02
	DiskNone  Disk = 0xFF
)

// DiskSet is the online-disk bitmap returned by the online-disks query
type DiskSet byte

// Online-disk bitmap bits
const (
	DiskSetUSB   DiskSet = 1 << 0
	DiskSetSD    DiskSet = 1 << 1
	DiskSetFlash DiskSet = 1 << 2
)

// Has reports whether the bitmap marks the given disk online
func (s DiskSet) Has(d Disk) bool {
	switch d {
	case DiskUSB:
		return s&DiskSetUSB != 0
	case DiskSD:
		return s&DiskSetSD != 0
	case DiskFlash:
		return s&DiskSetFlash != 0
	}
	return false
}

// PlayState represents the module's playback state
type PlayState int

// Play state values
const (
	PlayStateStopped PlayState = 0x00
	PlayStatePlaying PlayState = 0x01
	PlayStatePaused  PlayState = 0x02
)

// PlayMode represents the loop/play mode
type PlayMode int

// Play mode values
const (
	PlayModeFullLoop    PlayMode = 0x00
	PlayModeSingleLoop  PlayMode = 0x01
	PlayModeSingleStop  PlayMode = 0x02 // factory default
	PlayModeFullRandom  PlayMode = 0x03
	PlayModeDirLoop     PlayMode = 0x04
	PlayModeDirRandom   PlayMode = 0x05
	PlayModeDirSequence PlayMode = 0x06
	PlayModeSequence    PlayMode = 0x07
)

// EQ represents the equalizer preset
type EQ int

// Equalizer preset values
const (
	EQNormal  EQ = 0x00
	EQPop     EQ = 0x01
	EQRock    EQ = 0x02
	EQJazz    EQ = 0x03
	EQClassic EQ = 0x04
)

// Channel represents the DAC output channel
type Channel int

// DAC channel values
const (
	ChannelMP3    Channel = 0x00
	ChannelAUX    Channel = 0x01
	ChannelMP3AUX Channel = 0x02
)
