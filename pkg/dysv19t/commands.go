// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package dysv19t

// Builders for every outbound frame the module understands. They do no
// range checking beyond what the payload types force; callers validate
// values first (the Device does this for its own operations).

// ---- Playback transport ----

// NewPlayCommand creates a frame starting playback of the selected track
func NewPlayCommand() *Frame {
	return NewFrame(CmdPlay, nil)
}

// NewPauseCommand creates a frame toggling pause
func NewPauseCommand() *Frame {
	return NewFrame(CmdPause, nil)
}

// NewStopCommand creates a frame stopping playback
func NewStopCommand() *Frame {
	return NewFrame(CmdStop, nil)
}

// NewPrevTrackCommand creates a frame skipping to the previous track
func NewPrevTrackCommand() *Frame {
	return NewFrame(CmdPrevTrack, nil)
}

// NewNextTrackCommand creates a frame skipping to the next track
func NewNextTrackCommand() *Frame {
	return NewFrame(CmdNextTrack, nil)
}

// ---- Track and path selection ----

// NewPlayTrackCommand creates a frame selecting a track number and
// starting playback immediately
func NewPlayTrackCommand(track uint16) *Frame {
	hi, lo := u16Bytes(track)
	return NewFrame(CmdPlayTrack, []byte{hi, lo})
}

// NewSelectTrackCommand creates a frame selecting a track number without
// starting playback
func NewSelectTrackCommand(track uint16) *Frame {
	hi, lo := u16Bytes(track)
	return NewFrame(CmdSelectTrack, []byte{hi, lo})
}

// NewPlayPathCommand creates a frame playing a file addressed by disk and
// path. The path bytes must already be in wire form.
func NewPlayPathCommand(disk Disk, path []byte) *Frame {
	data := make([]byte, 0, 1+len(path))
	data = append(data, byte(disk))
	data = append(data, path...)
	return NewFrame(CmdPlayDiskPath, data)
}

// ---- Interjection ----

// NewInsertTrackCommand creates a frame interrupting the current track
// with another track; the interrupted track resumes afterwards
func NewInsertTrackCommand(disk Disk, track uint16) *Frame {
	hi, lo := u16Bytes(track)
	return NewFrame(CmdInsertTrack, []byte{byte(disk), hi, lo})
}

// NewInsertPathCommand creates a frame interrupting the current track
// with a file addressed by disk and path
func NewInsertPathCommand(disk Disk, path []byte) *Frame {
	data := make([]byte, 0, 1+len(path))
	data = append(data, byte(disk))
	data = append(data, path...)
	return NewFrame(CmdInsertPath, data)
}

// NewEndInsertCommand creates a frame cutting an interjection short
func NewEndInsertCommand() *Frame {
	return NewFrame(CmdEndInsert, nil)
}

// ---- Volume, equalizer, channel, mode ----

// NewVolumeCommand creates a frame setting the volume level
func NewVolumeCommand(level byte) *Frame {
	return NewFrame(CmdSetVolume, []byte{level})
}

// NewVolumeUpCommand creates a frame stepping the volume up one level
func NewVolumeUpCommand() *Frame {
	return NewFrame(CmdVolumeUp, nil)
}

// NewVolumeDownCommand creates a frame stepping the volume down one level
func NewVolumeDownCommand() *Frame {
	return NewFrame(CmdVolumeDown, nil)
}

// NewPlayModeCommand creates a frame setting the play mode
func NewPlayModeCommand(mode PlayMode) *Frame {
	return NewFrame(CmdSetPlayMode, []byte{byte(mode)})
}

// NewLoopCountCommand creates a frame setting how many times the looping
// play modes repeat
func NewLoopCountCommand(count uint16) *Frame {
	hi, lo := u16Bytes(count)
	return NewFrame(CmdSetLoopCount, []byte{hi, lo})
}

// NewEQCommand creates a frame selecting an equalizer preset
func NewEQCommand(eq EQ) *Frame {
	return NewFrame(CmdSetEQ, []byte{byte(eq)})
}

// NewChannelCommand creates a frame selecting the DAC output channel
func NewChannelCommand(ch Channel) *Frame {
	return NewFrame(CmdSetChannel, []byte{byte(ch)})
}

// ---- Combination playlists ----

// NewCombinationStartCommand creates a frame starting combination play.
// The payload is the concatenated two-character track names.
func NewCombinationStartCommand(names []byte) *Frame {
	return NewFrame(CmdCombinationStart, names)
}

// NewCombinationEndCommand creates a frame ending combination play
func NewCombinationEndCommand() *Frame {
	return NewFrame(CmdCombinationEnd, nil)
}

// ---- Repeat ranges and seeking ----

// NewRepeatRangeCommand creates a frame looping the stretch between two
// minute/second marks in the current track
func NewRepeatRangeCommand(startMin, startSec, endMin, endSec byte) *Frame {
	return NewFrame(CmdRepeatRange, []byte{startMin, startSec, endMin, endSec})
}

// NewRepeatEndCommand creates a frame ending repeat play
func NewRepeatEndCommand() *Frame {
	return NewFrame(CmdRepeatEnd, nil)
}

// NewSeekBackwardCommand creates a frame rewinding by a number of seconds
func NewSeekBackwardCommand(seconds uint16) *Frame {
	hi, lo := u16Bytes(seconds)
	return NewFrame(CmdSeekBackward, []byte{hi, lo})
}

// NewSeekForwardCommand creates a frame fast-forwarding by a number of
// seconds
func NewSeekForwardCommand(seconds uint16) *Frame {
	hi, lo := u16Bytes(seconds)
	return NewFrame(CmdSeekForward, []byte{hi, lo})
}

// ---- Queries ----

// NewPlayStateQuery creates a frame asking for the current play state
func NewPlayStateQuery() *Frame {
	return NewFrame(CmdQueryPlayState, nil)
}

// NewOnlineDisksQuery creates a frame asking which disks are attached
func NewOnlineDisksQuery() *Frame {
	return NewFrame(CmdQueryOnlineDisks, nil)
}

// NewCurrentDiskQuery creates a frame asking which disk is selected
func NewCurrentDiskQuery() *Frame {
	return NewFrame(CmdQueryCurrentDisk, nil)
}

// NewTrackCountQuery creates a frame asking how many tracks the current
// disk holds
func NewTrackCountQuery() *Frame {
	return NewFrame(CmdQueryTrackCount, nil)
}

// NewCurrentTrackQuery creates a frame asking for the current track number
func NewCurrentTrackQuery() *Frame {
	return NewFrame(CmdQueryCurrentTrack, nil)
}

// NewFolderFirstTrackQuery creates a frame asking for the first track
// number in the current folder
func NewFolderFirstTrackQuery() *Frame {
	return NewFrame(CmdQueryFolderFirstTrack, nil)
}

// NewFolderTrackCountQuery creates a frame asking how many tracks the
// current folder holds
func NewFolderTrackCountQuery() *Frame {
	return NewFrame(CmdQueryFolderTrackCount, nil)
}

// NewShortNameQuery creates a frame asking for the current file's 8.3
// short name
func NewShortNameQuery() *Frame {
	return NewFrame(CmdQueryShortName, nil)
}

// NewPlayTimeQuery creates a frame asking for the elapsed play time
func NewPlayTimeQuery() *Frame {
	return NewFrame(CmdQueryPlayTime, nil)
}

// ---- Time reports ----

// NewTimeReportOnCommand creates a frame enabling once-a-second elapsed
// time reports
func NewTimeReportOnCommand() *Frame {
	return NewFrame(CmdTimeReportOn, nil)
}

// NewTimeReportOffCommand creates a frame disabling elapsed time reports
func NewTimeReportOffCommand() *Frame {
	return NewFrame(CmdTimeReportOff, nil)
}
